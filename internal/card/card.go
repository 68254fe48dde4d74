package card

// Kind is the card variant tag.
type Kind string

const (
	KindLife      Kind = "life"
	KindChallenge Kind = "challenge"
	KindInsurance Kind = "insurance"
	KindDream     Kind = "dream"
	KindSkill     Kind = "skill"
	KindEvent     Kind = "event"
	KindCombo     Kind = "combo"
	KindLegendary Kind = "legendary"
)

// Stage is the coarse life phase the player is in. Each stage rescales
// the vitality ceiling.
type Stage string

const (
	StageYouth       Stage = "youth"
	StageMiddle      Stage = "middle"
	StageFulfillment Stage = "fulfillment"
)

// Next returns the following stage and false once there is none.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case StageYouth:
		return StageMiddle, true
	case StageMiddle:
		return StageFulfillment, true
	default:
		return s, false
	}
}

// EffectKind is a card effect tag.
type EffectKind string

const (
	EffectShield         EffectKind = "shield"
	EffectTurnHeal       EffectKind = "turn_heal"
	EffectChallengeBonus EffectKind = "challenge_bonus"
)

// Effect is a typed key/value pair attached to a card.
type Effect struct {
	Kind  EffectKind `json:"kind"`
	Value int        `json:"value"`
}

// InsuranceKind is the insurance category (drives the burden multiplier).
type InsuranceKind string

const (
	InsuranceLife     InsuranceKind = "life"
	InsuranceMedical  InsuranceKind = "medical"
	InsuranceAccident InsuranceKind = "accident"
	InsuranceIncome   InsuranceKind = "income"
)

// DurationKind distinguishes term from whole-life insurance.
type DurationKind string

const (
	DurationTerm      DurationKind = "term"
	DurationWholeLife DurationKind = "whole_life"
)

// InsuranceEffectKind is the closed set of ways an insurance card acts
// during play. Matched exhaustively wherever it matters.
type InsuranceEffectKind string

const (
	InsuranceOffensive   InsuranceEffectKind = "offensive"
	InsuranceDefensive   InsuranceEffectKind = "defensive"
	InsuranceRecovery    InsuranceEffectKind = "recovery"
	InsuranceSpecialized InsuranceEffectKind = "specialized"
)

// RiskLevel classifies a challenge card's risk/reward scaling.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskExtreme RiskLevel = "extreme"
)

// DreamCategory tags dream cards.
type DreamCategory string

const (
	DreamCareer    DreamCategory = "career"
	DreamFamily    DreamCategory = "family"
	DreamAdventure DreamCategory = "adventure"
)

// Insurance holds the fields only insurance cards carry.
type Insurance struct {
	Kind           InsuranceKind       `json:"kind"`
	Coverage       int                 `json:"coverage"`
	Duration       DurationKind        `json:"duration"`
	RemainingTurns int                 `json:"remaining_turns,omitempty"` // term only
	AgeBonus       Power               `json:"age_bonus"`
	Effect         InsuranceEffectKind `json:"effect"`
}

// Card is a playable unit. Value-like: mutation helpers return copies,
// except DecrementTurn which the insurance ledger uses for its per-turn
// sweep on cards it exclusively owns.
type Card struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Kind        Kind           `json:"kind"`
	Power       Power          `json:"power"`
	Cost        Premium        `json:"cost"`
	Effects     []Effect       `json:"effects,omitempty"`
	Insurance   *Insurance     `json:"insurance,omitempty"` // insurance cards only
	Dream       DreamCategory  `json:"dream,omitempty"`     // dream cards only
	Risk        RiskLevel      `json:"risk,omitempty"`      // challenge cards only
}

// Copy returns a deep, independent copy.
func (c Card) Copy() Card {
	out := c
	if len(c.Effects) > 0 {
		out.Effects = make([]Effect, len(c.Effects))
		copy(out.Effects, c.Effects)
	}
	if c.Insurance != nil {
		ins := *c.Insurance
		out.Insurance = &ins
	}
	return out
}

// IsTermInsurance reports whether the card is term insurance with a
// finite remaining duration.
func (c Card) IsTermInsurance() bool {
	return c.Kind == KindInsurance && c.Insurance != nil && c.Insurance.Duration == DurationTerm
}

// InsuranceImmune reports whether a challenge bypasses defensive
// insurance entirely. Extreme risk always does.
func (c Card) InsuranceImmune() bool {
	return c.Kind == KindChallenge && c.Risk == RiskExtreme
}

// WithDecrementedTurns returns a copy with one fewer remaining turn,
// floored at zero. Non-term cards are returned unchanged.
func (c Card) WithDecrementedTurns() Card {
	out := c.Copy()
	out.DecrementTurn()
	return out
}

// DecrementTurn decrements the remaining turns in place. Only the
// insurance ledger's per-turn sweep may call this.
func (c *Card) DecrementTurn() {
	if !c.IsTermInsurance() {
		return
	}
	if c.Insurance.RemainingTurns > 0 {
		c.Insurance.RemainingTurns--
	}
}

// EffectBonus sums the values of effects of the given kind.
func (c Card) EffectBonus(kind EffectKind) int {
	total := 0
	for _, e := range c.Effects {
		if e.Kind == kind {
			total += e.Value
		}
	}
	return total
}

// EffectivePower is the power the card contributes in a challenge at
// the given stage. Only offensive insurance contributes power (base
// plus the age bonus past youth). Defensive, recovery and specialized
// insurance add nothing here; their effects apply at damage time,
// upkeep time and reward time respectively.
func (c Card) EffectivePower(stage Stage) Power {
	if c.Kind != KindInsurance {
		p := c.Power
		if bonus := c.EffectBonus(EffectChallengeBonus); bonus > 0 {
			p = p.Add(Power(bonus))
		}
		return p
	}
	ins := c.Insurance
	if ins == nil {
		return 0
	}
	switch ins.Effect {
	case InsuranceOffensive:
		ageBonus := Power(0)
		if stage != StageYouth {
			ageBonus = ins.AgeBonus
		}
		return c.Power.Add(ageBonus)
	case InsuranceDefensive, InsuranceRecovery, InsuranceSpecialized:
		return 0
	default:
		return 0
	}
}
