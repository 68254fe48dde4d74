package game

import (
	"fmt"
	"sort"
	"time"

	"lifedeck/internal/card"
	"lifedeck/internal/config"
	"lifedeck/internal/deck"
	"lifedeck/internal/insurance"
)

// Accessors. Every slice and pointer returned here is a defensive
// copy; collaborators never hold a reference into game internals.

func (g *Game) ID() string        { return g.id }
func (g *Game) Status() Status    { return g.status }
func (g *Game) Phase() Phase      { return g.phase }
func (g *Game) Stage() card.Stage { return g.stage }
func (g *Game) Turn() int         { return g.turn }
func (g *Game) Vitality() int     { return g.vit.Current() }
func (g *Game) MaxVitality() int  { return g.vit.Max() }
func (g *Game) Stats() Stats      { return g.stats }

func (g *Game) IsGameOver() bool { return g.status == StatusGameOver }

// IsCompleted reports whether the game reached either terminal state.
func (g *Game) IsCompleted() bool {
	return g.status == StatusGameOver || g.status == StatusVictory
}

func (g *Game) Hand() []card.Card {
	return copyCards(g.hand)
}

func (g *Game) DiscardPile() []card.Card {
	return copyCards(g.discardPile)
}

func (g *Game) PlayerDeckSize() int    { return g.playerDeck.Size() }
func (g *Game) ChallengeDeckSize() int { return g.challengeDeck.Size() }

func (g *Game) CurrentChallenge() *card.Card {
	if g.current == nil {
		return nil
	}
	c := g.current.Copy()
	return &c
}

// SelectedCardIDs returns the current selection in stable order.
func (g *Game) SelectedCardIDs() []string {
	out := make([]string, 0, len(g.selectedIDs))
	for id := range g.selectedIDs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (g *Game) CardChoices() []card.Card {
	return copyCards(g.cardChoices)
}

func (g *Game) InsuranceTypeChoices() []card.TypeChoice {
	out := make([]card.TypeChoice, len(g.insuranceOptions))
	copy(out, g.insuranceOptions)
	return out
}

func (g *Game) ActiveInsurances() []card.Card  { return g.ledger.Active() }
func (g *Game) ExpiredInsurances() []card.Card { return g.ledger.Expired() }

func (g *Game) PendingRenewals() []insurance.Renewal {
	return g.ledger.PendingRenewals(g.stage, g.bal.RenewalPromptThreshold)
}

// InsuranceBurden is the aggregate holding cost, always <= 0.
func (g *Game) InsuranceBurden() int {
	return g.ledger.Burden()
}

// AvailableVitality is vitality minus the absolute burden, floored at
// zero. This is the budget renewal decisions are made against.
func (g *Game) AvailableVitality() int {
	v := g.vit.Current() + g.InsuranceBurden()
	if v < 0 {
		return 0
	}
	return v
}

func copyCards(cards []card.Card) []card.Card {
	out := make([]card.Card, len(cards))
	for i, c := range cards {
		out[i] = c.Copy()
	}
	return out
}

// Snapshot is a deep, independent copy of the full game state for
// external consumption (UI, statistics, persistence). Mutating a
// snapshot never affects the game.
type Snapshot struct {
	ID          string     `json:"id"`
	Status      Status     `json:"status"`
	Phase       Phase      `json:"phase"`
	Stage       card.Stage `json:"stage"`
	Turn        int        `json:"turn"`
	Vitality    int        `json:"vitality"`
	MaxVitality int        `json:"max_vitality"`

	PlayerDeck    []card.Card `json:"player_deck"`
	Hand          []card.Card `json:"hand"`
	DiscardPile   []card.Card `json:"discard_pile"`
	ChallengeDeck []card.Card `json:"challenge_deck"`

	CurrentChallenge     *card.Card        `json:"current_challenge,omitempty"`
	SelectedCardIDs      []string          `json:"selected_card_ids,omitempty"`
	CardChoices          []card.Card       `json:"card_choices,omitempty"`
	InsuranceTypeChoices []card.TypeChoice `json:"insurance_type_choices,omitempty"`

	InsuranceCards    []card.Card `json:"insurance_cards"`
	ExpiredInsurances []card.Card `json:"expired_insurances"`
	Burden            int         `json:"burden"`

	Stats       Stats         `json:"stats"`
	Config      config.Config `json:"config"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Snapshot captures the full state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		ID:                   g.id,
		Status:               g.status,
		Phase:                g.phase,
		Stage:                g.stage,
		Turn:                 g.turn,
		Vitality:             g.vit.Current(),
		MaxVitality:          g.vit.Max(),
		PlayerDeck:           g.playerDeck.Cards(),
		Hand:                 g.Hand(),
		DiscardPile:          g.DiscardPile(),
		ChallengeDeck:        g.challengeDeck.Cards(),
		CurrentChallenge:     g.CurrentChallenge(),
		SelectedCardIDs:      g.SelectedCardIDs(),
		CardChoices:          g.CardChoices(),
		InsuranceTypeChoices: g.InsuranceTypeChoices(),
		InsuranceCards:       g.ActiveInsurances(),
		ExpiredInsurances:    g.ExpiredInsurances(),
		Burden:               g.InsuranceBurden(),
		Stats:                g.stats,
		Config:               g.cfg,
	}
	if !g.startedAt.IsZero() {
		t := g.startedAt
		s.StartedAt = &t
	}
	if !g.completedAt.IsZero() {
		t := g.completedAt
		s.CompletedAt = &t
	}
	return s
}

// Restore rebuilds a game from a snapshot, reattaching fresh
// collaborators. The save/load collaborator uses this on top of
// Snapshot. Snapshots that violate the game's own invariants (a
// tampered or corrupted save file) are rejected.
func Restore(s Snapshot, opts Options) (*Game, error) {
	cfg := s.Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	vit, err := card.NewVitality(s.Vitality, s.MaxVitality)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	if s.Status == StatusInProgress && vit.Depleted() {
		return nil, fmt.Errorf("restore: zero vitality with status %s", s.Status)
	}
	if s.Turn < 0 {
		return nil, fmt.Errorf("restore: negative turn %d", s.Turn)
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.IDs == nil {
		opts.IDs = card.UUIDSource{}
	}
	if opts.RNG == nil {
		opts.RNG = randDefault()
	}

	bal := cfg.ResolveBalance()
	playerDeck, err := deck.New("player", s.PlayerDeck)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	challengeDeck, err := deck.New("challenge", s.ChallengeDeck)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	ledger := insurance.NewLedger(bal)
	for _, c := range s.InsuranceCards {
		if err := ledger.Add(c); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
	}
	for _, c := range s.ExpiredInsurances {
		if err := ledger.Add(c); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		ledger.Expire(c.ID)
	}

	g := &Game{
		id:            s.ID,
		cfg:           cfg,
		bal:           bal,
		clock:         opts.Clock,
		ids:           opts.IDs,
		rng:           opts.RNG,
		factory:       card.NewFactory(opts.IDs, opts.RNG),
		rec:           opts.Recorder,
		status:        s.Status,
		phase:         s.Phase,
		stage:         s.Stage,
		turn:          s.Turn,
		vit:           vit,
		playerDeck:    playerDeck,
		hand:          copyCards(s.Hand),
		discardPile:   copyCards(s.DiscardPile),
		challengeDeck: challengeDeck,
		selectedIDs:   map[string]bool{},
		cardChoices:   copyCards(s.CardChoices),
		ledger:        ledger,
		stats:         s.Stats,
	}
	if s.CurrentChallenge != nil {
		c := s.CurrentChallenge.Copy()
		g.current = &c
	}
	for _, id := range s.SelectedCardIDs {
		g.selectedIDs[id] = true
	}
	g.insuranceOptions = append(g.insuranceOptions, s.InsuranceTypeChoices...)
	if s.StartedAt != nil {
		g.startedAt = *s.StartedAt
	}
	if s.CompletedAt != nil {
		g.completedAt = *s.CompletedAt
	}
	return g, nil
}
