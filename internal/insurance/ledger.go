// Package insurance owns the authoritative list of active insurance
// cards and everything derived from it: the aggregate burden, renewal
// scheduling and per-turn expiration.
package insurance

import (
	"errors"
	"fmt"
	"math"

	"lifedeck/internal/card"
	"lifedeck/internal/config"
)

var (
	// ErrNotFound reports an unknown card id. Callers decide whether
	// to surface it or ignore it (e.g. a stale renewal prompt).
	ErrNotFound = errors.New("insurance: card not found")
	// ErrDuplicate reports an exact-id duplicate, which would
	// double-count burden.
	ErrDuplicate = errors.New("insurance: duplicate card id")
	// ErrNotInsurance reports a card of the wrong kind.
	ErrNotInsurance = errors.New("insurance: not an insurance card")
	// ErrNotTerm reports a renewal attempt on whole-life insurance.
	ErrNotTerm = errors.New("insurance: whole-life insurance never renews")
)

// Ledger tracks active and expired insurance cards. Not safe for
// concurrent use; the owning game serializes access.
type Ledger struct {
	bal     config.Balance
	active  []card.Card
	expired []card.Card
}

func NewLedger(bal config.Balance) *Ledger {
	return &Ledger{bal: bal}
}

// Add appends a card to the active list. Exact-id duplicates are
// rejected so burden can never double-count a policy.
func (l *Ledger) Add(c card.Card) error {
	if c.Kind != card.KindInsurance || c.Insurance == nil {
		return fmt.Errorf("%w: %s", ErrNotInsurance, c.ID)
	}
	for _, a := range l.active {
		if a.ID == c.ID {
			return fmt.Errorf("%w: %s", ErrDuplicate, c.ID)
		}
	}
	l.active = append(l.active, c.Copy())
	return nil
}

// Active returns a defensive copy of the active cards.
func (l *Ledger) Active() []card.Card {
	out := make([]card.Card, len(l.active))
	for i, c := range l.active {
		out[i] = c.Copy()
	}
	return out
}

// Expired returns a defensive copy of the expired cards.
func (l *Ledger) Expired() []card.Card {
	out := make([]card.Card, len(l.expired))
	for i, c := range l.expired {
		out[i] = c.Copy()
	}
	return out
}

func (l *Ledger) ActiveCount() int { return len(l.active) }

// Burden is the aggregate cost of holding insurance:
// -floor(sum(baseCost*typeMultiplier) * surcharge), where the
// surcharge kicks in once the active count reaches the configured
// threshold. Always <= 0, and independent of the life stage (unlike
// renewal costs).
func (l *Ledger) Burden() int {
	if len(l.active) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range l.active {
		mult, ok := l.bal.BurdenTypeMultiplier[c.Insurance.Kind]
		if !ok {
			mult = 1.0
		}
		total += float64(c.Cost.Int()) * mult
	}
	if l.bal.BurdenSurchargeCount > 0 && len(l.active) >= l.bal.BurdenSurchargeCount {
		total *= 1.0 + float64(l.bal.BurdenSurchargePct)/100.0
	}
	return -int(math.Floor(total))
}

// Renewal is a term insurance approaching expiry.
type Renewal struct {
	Card           card.Card `json:"card"`
	RemainingTurns int       `json:"remaining_turns"`
	Cost           int       `json:"cost"`
}

// PendingRenewals returns term insurances with 0 < remainingTurns <=
// threshold, i.e. the renew-or-let-expire decisions due soon.
func (l *Ledger) PendingRenewals(stage card.Stage, threshold int) []Renewal {
	out := []Renewal{}
	for _, c := range l.active {
		if !c.IsTermInsurance() {
			continue
		}
		rt := c.Insurance.RemainingTurns
		if rt > 0 && rt <= threshold {
			out = append(out, Renewal{
				Card:           c.Copy(),
				RemainingTurns: rt,
				Cost:           l.renewalCost(c, stage),
			})
		}
	}
	return out
}

func (l *Ledger) renewalCost(c card.Card, stage card.Stage) int {
	return c.Cost.Int() + l.bal.RenewalStageIncrement[stage]
}

// RenewalAction is the outcome of a renewal decision.
type RenewalAction string

const (
	ActionRenewed RenewalAction = "renewed"
	ActionExpired RenewalAction = "expired"
)

// RenewalResult reports what happened to a policy at renewal time.
type RenewalResult struct {
	Action   RenewalAction `json:"action"`
	CardID   string        `json:"card_id"`
	CostPaid int           `json:"cost_paid,omitempty"`
	Message  string        `json:"message"`
}

// Renew extends a term insurance when the available vitality covers
// the stage-adjusted cost, and expires it otherwise. The caller pays
// the returned CostPaid out of vitality.
func (l *Ledger) Renew(cardID string, stage card.Stage, available int) (RenewalResult, error) {
	idx := l.indexOf(cardID)
	if idx < 0 {
		return RenewalResult{}, fmt.Errorf("%w: %s", ErrNotFound, cardID)
	}
	c := &l.active[idx]
	if !c.IsTermInsurance() {
		return RenewalResult{}, fmt.Errorf("%w: %s", ErrNotTerm, cardID)
	}

	cost := l.renewalCost(*c, stage)
	if available < cost {
		expired := l.removeActive(idx)
		l.expired = append(l.expired, expired)
		return RenewalResult{
			Action:  ActionExpired,
			CardID:  cardID,
			Message: fmt.Sprintf("%s expired: renewal needs %d vitality, %d available", expired.Name, cost, available),
		}, nil
	}

	c.Insurance.RemainingTurns += l.bal.RenewalExtensionTurns
	return RenewalResult{
		Action:   ActionRenewed,
		CardID:   cardID,
		CostPaid: cost,
		Message:  fmt.Sprintf("%s renewed for %d turns", c.Name, l.bal.RenewalExtensionTurns),
	}, nil
}

// Expire moves a card from active to expired. Idempotent: expiring an
// already-expired or unknown card is a no-op reporting false.
func (l *Ledger) Expire(cardID string) bool {
	idx := l.indexOf(cardID)
	if idx < 0 {
		return false
	}
	c := l.removeActive(idx)
	l.expired = append(l.expired, c)
	return true
}

// TickResult summarizes one per-turn sweep.
type TickResult struct {
	NewlyExpired int      `json:"newly_expired"`
	ExpiredIDs   []string `json:"expired_ids,omitempty"`
}

// Tick runs the per-turn sweep: every active term insurance loses one
// remaining turn, and any card reaching zero moves to expired.
func (l *Ledger) Tick() TickResult {
	res := TickResult{}
	kept := l.active[:0]
	for i := range l.active {
		c := &l.active[i]
		if !c.IsTermInsurance() {
			kept = append(kept, *c)
			continue
		}
		c.DecrementTurn()
		if c.Insurance.RemainingTurns == 0 {
			l.expired = append(l.expired, *c)
			res.NewlyExpired++
			res.ExpiredIDs = append(res.ExpiredIDs, c.ID)
			continue
		}
		kept = append(kept, *c)
	}
	l.active = kept
	return res
}

func (l *Ledger) indexOf(cardID string) int {
	for i, c := range l.active {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func (l *Ledger) removeActive(idx int) card.Card {
	c := l.active[idx]
	l.active = append(l.active[:idx], l.active[idx+1:]...)
	return c
}
