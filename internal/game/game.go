// Package game holds the aggregate root of the simulation: the phase
// state machine, the vitality model, and every player-facing command.
// A Game is logically single-threaded; callers that share one across
// goroutines must serialize commands (see internal/session).
package game

import (
	"fmt"
	"math/rand"
	"time"

	"lifedeck/internal/card"
	"lifedeck/internal/challenge"
	"lifedeck/internal/config"
	"lifedeck/internal/deck"
	"lifedeck/internal/insurance"
)

// Status is the orthogonal game lifecycle axis. GameOver and Victory
// are terminal: every later command fails with ErrGameNotInProgress.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusGameOver   Status = "game_over"
	StatusVictory    Status = "victory"
)

// Phase is the position in the turn state machine.
type Phase string

const (
	PhaseSetup                  Phase = "setup"
	PhaseDraw                   Phase = "draw"
	PhaseChallenge              Phase = "challenge"
	PhaseCardSelection          Phase = "card_selection"
	PhaseInsuranceTypeSelection Phase = "insurance_type_selection"
	PhaseResolution             Phase = "resolution"
)

func randDefault() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Options carries the injected collaborators. Everything random,
// unique, or time-based flows through them so a fixed seed replays a
// fixed game.
type Options struct {
	Config   *config.Config
	Clock    Clock
	IDs      card.IDSource
	RNG      *rand.Rand
	Recorder Recorder
}

// Game is the aggregate root. All mutation goes through its command
// methods; queries return defensive copies.
type Game struct {
	id  string
	cfg config.Config
	bal config.Balance

	clock   Clock
	ids     card.IDSource
	rng     *rand.Rand
	factory *card.Factory
	rec     Recorder

	status Status
	phase  Phase
	stage  card.Stage
	turn   int

	vit card.Vitality

	playerDeck    *deck.Deck
	hand          []card.Card
	discardPile   []card.Card
	challengeDeck *deck.Deck

	current     *card.Card
	selectedIDs map[string]bool

	cardChoices      []card.Card
	insuranceOptions []card.TypeChoice

	ledger *insurance.Ledger

	stats       Stats
	startedAt   time.Time
	completedAt time.Time
}

// New builds a game in the setup phase. Invalid configuration is
// rejected here with a descriptive error, never clamped.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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
	factory := card.NewFactory(opts.IDs, opts.RNG)

	starter := factory.StarterLifeCards()
	starter = append(starter, factory.DreamCards(bal.DreamCardCount)...)
	playerDeck, err := deck.New("player", starter)
	if err != nil {
		return nil, err
	}
	playerDeck.Shuffle(opts.RNG)

	challengeDeck, err := deck.New("challenge", factory.ChallengeCards(card.StageYouth, bal.ChallengesPerStage))
	if err != nil {
		return nil, err
	}
	challengeDeck.Shuffle(opts.RNG)

	limit := bal.StageVitalityCap[card.StageYouth]
	start := bal.StartingVitality
	if start > limit {
		start = limit
	}
	vit, err := card.NewVitality(start, limit)
	if err != nil {
		return nil, err
	}

	g := &Game{
		id:            opts.IDs.NewID("game"),
		cfg:           *cfg,
		bal:           bal,
		clock:         opts.Clock,
		ids:           opts.IDs,
		rng:           opts.RNG,
		factory:       factory,
		rec:           opts.Recorder,
		status:        StatusNotStarted,
		phase:         PhaseSetup,
		stage:         card.StageYouth,
		vit:           vit,
		playerDeck:    playerDeck,
		challengeDeck: challengeDeck,
		selectedIDs:   map[string]bool{},
		ledger:        insurance.NewLedger(bal),
	}
	g.stats.HighestVitality = g.vit.Current()
	return g, nil
}

func (g *Game) record(event string, meta map[string]any) {
	if g.rec == nil {
		return
	}
	if meta == nil {
		meta = map[string]any{}
	}
	meta["game_id"] = g.id
	meta["turn"] = g.turn
	g.rec.Record(event, meta)
}

// guard checks the status/phase preconditions shared by every command.
func (g *Game) guard(phases ...Phase) error {
	if g.status != StatusInProgress {
		return fmt.Errorf("%w: status is %s", ErrGameNotInProgress, g.status)
	}
	if len(phases) == 0 {
		return nil
	}
	for _, p := range phases {
		if g.phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWrongPhase, g.phase)
}

// Start begins the playthrough: turn 1, draw phase, opening hand.
func (g *Game) Start() error {
	if g.status != StatusNotStarted {
		return fmt.Errorf("%w: status is %s", ErrAlreadyStarted, g.status)
	}
	g.status = StatusInProgress
	g.phase = PhaseDraw
	g.turn = 1
	g.startedAt = g.clock.Now()
	g.drawUpTo(g.bal.StartingHandSize)
	g.record(EventGameStarted, map[string]any{"difficulty": g.cfg.Difficulty})
	return nil
}

// DrawCards draws up to n cards into the hand. An exhausted deck first
// reshuffles the discard pile back in; drawing fewer than n (possibly
// zero) cards is normal play, not an error.
func (g *Game) DrawCards(n int) ([]card.Card, error) {
	if err := g.guard(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative draw count %d", ErrInvalidArgument, n)
	}
	drawn := g.drawUpTo(len(g.hand) + n)
	if len(drawn) > 0 {
		g.record(EventCardsDrawn, map[string]any{"count": len(drawn)})
	}
	return drawn, nil
}

func (g *Game) drawUpTo(handTarget int) []card.Card {
	if handTarget > g.bal.MaxHandSize {
		handTarget = g.bal.MaxHandSize
	}
	drawn := []card.Card{}
	for len(g.hand) < handTarget {
		c, ok := g.playerDeck.Draw()
		if !ok {
			if len(g.discardPile) == 0 {
				break
			}
			g.playerDeck.AddAll(g.discardPile)
			g.discardPile = g.discardPile[:0]
			g.playerDeck.Shuffle(g.rng)
			continue
		}
		g.hand = append(g.hand, c)
		drawn = append(drawn, c.Copy())
		g.stats.CardsDrawn++
	}
	return drawn
}

// StartChallenge draws the next challenge card and enters the
// challenge phase. A nil card with nil error means the stage's
// challenges are exhausted; the caller decides what that means
// (usually AdvanceStage).
func (g *Game) StartChallenge() (*card.Card, error) {
	if err := g.guard(PhaseDraw); err != nil {
		return nil, err
	}
	c, ok := g.challengeDeck.Draw()
	if !ok {
		return nil, nil
	}
	g.current = &c
	g.selectedIDs = map[string]bool{}
	g.phase = PhaseChallenge
	g.record(EventChallengeStarted, map[string]any{"challenge": c.Name, "power": c.Power.Int(), "risk": string(c.Risk)})
	out := c.Copy()
	return &out, nil
}

// ToggleCardSelection toggles a hand card in or out of the selection
// for the current challenge.
func (g *Game) ToggleCardSelection(cardID string) error {
	if err := g.guard(PhaseChallenge); err != nil {
		return err
	}
	if cardID == "" {
		return fmt.Errorf("%w: empty card id", ErrInvalidArgument)
	}
	if !g.inHand(cardID) {
		return fmt.Errorf("%w: %s not in hand", ErrUnknownCard, cardID)
	}
	if g.selectedIDs[cardID] {
		delete(g.selectedIDs, cardID)
	} else {
		g.selectedIDs[cardID] = true
	}
	return nil
}

func (g *Game) inHand(cardID string) bool {
	for _, c := range g.hand {
		if c.ID == cardID {
			return true
		}
	}
	return false
}

// ResolveChallenge resolves the current challenge against the selected
// cards. Used cards always move from hand to discard regardless of
// outcome. Success enters a reward sub-phase; failure (or a lethal
// outcome) enters resolution directly.
func (g *Game) ResolveChallenge() (challenge.Result, error) {
	if err := g.guard(PhaseChallenge); err != nil {
		return challenge.Result{}, err
	}
	if g.current == nil {
		return challenge.Result{}, ErrNoChallenge
	}

	selected := g.takeSelected()
	res := challenge.Resolve(selected, *g.current, g.ledger.Active(), g.stage, g.bal)

	g.stats.ChallengesAttempted++
	if res.Success {
		g.stats.ChallengesSucceeded++
	} else {
		g.stats.ChallengesFailed++
	}

	g.discardPile = append(g.discardPile, selected...)
	ch := *g.current
	g.current = nil

	g.updateVitality(res.VitalityChange)
	g.record(EventChallengeResolved, map[string]any{
		"challenge": ch.Name,
		"success":   res.Success,
		"delta":     res.VitalityChange,
	})

	if g.status != StatusInProgress {
		// Lethal failure: resolution already ended the game.
		return res, nil
	}

	if !res.Success {
		g.phase = PhaseResolution
		return res, nil
	}

	// Reward sub-phase: every Nth success offers insurance, the rest
	// offer cards.
	if g.bal.InsuranceChoiceEvery > 0 &&
		g.stats.ChallengesSucceeded%g.bal.InsuranceChoiceEvery == 0 &&
		g.ledger.ActiveCount() < g.bal.MaxInsuranceCards {
		g.insuranceOptions = g.factory.InsuranceTypeChoices(g.stage)
		g.phase = PhaseInsuranceTypeSelection
	} else {
		g.cardChoices = g.factory.RewardCards(g.stage, g.bal.RewardChoiceCount)
		g.phase = PhaseCardSelection
	}
	return res, nil
}

// takeSelected removes the selected cards from the hand and returns
// them, clearing the selection.
func (g *Game) takeSelected() []card.Card {
	out := []card.Card{}
	kept := g.hand[:0]
	for _, c := range g.hand {
		if g.selectedIDs[c.ID] {
			out = append(out, c)
			continue
		}
		kept = append(kept, c)
	}
	g.hand = kept
	g.selectedIDs = map[string]bool{}
	return out
}

// SelectCard commits a reward choice: the chosen card joins the player
// deck and the game moves to resolution.
func (g *Game) SelectCard(cardID string) (card.Card, error) {
	if err := g.guard(PhaseCardSelection); err != nil {
		return card.Card{}, err
	}
	for _, c := range g.cardChoices {
		if c.ID == cardID {
			g.playerDeck.Add(c)
			g.cardChoices = nil
			g.phase = PhaseResolution
			g.stats.CardsAcquired++
			g.record(EventCardSelected, map[string]any{"card": c.Name, "kind": string(c.Kind)})
			return c.Copy(), nil
		}
	}
	return card.Card{}, fmt.Errorf("%w: %s not among offered cards", ErrInvalidChoice, cardID)
}

// SelectInsuranceType commits an insurance purchase: the chosen
// category is materialized for the requested duration, added to the
// ledger, and the game moves to resolution.
func (g *Game) SelectInsuranceType(kind card.InsuranceKind, duration card.DurationKind) (card.Card, error) {
	if err := g.guard(PhaseInsuranceTypeSelection); err != nil {
		return card.Card{}, err
	}
	if g.ledger.ActiveCount() >= g.bal.MaxInsuranceCards {
		return card.Card{}, fmt.Errorf("%w: %d active", ErrInsuranceLimit, g.ledger.ActiveCount())
	}
	for _, choice := range g.insuranceOptions {
		if choice.Kind != kind {
			continue
		}
		c, err := g.factory.Materialize(choice, duration)
		if err != nil {
			return card.Card{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		if err := g.ledger.Add(c); err != nil {
			return card.Card{}, err
		}
		g.insuranceOptions = nil
		g.phase = PhaseResolution
		g.stats.InsurancePurchased++
		g.record(EventInsuranceAcquired, map[string]any{
			"kind":     string(kind),
			"duration": string(duration),
			"cost":     c.Cost.Int(),
		})
		return c, nil
	}
	return card.Card{}, fmt.Errorf("%w: insurance kind %s not offered", ErrInvalidChoice, kind)
}

// TurnResult summarizes the upkeep that runs between turns.
type TurnResult struct {
	Turn            int                 `json:"turn"`
	Drawn           []card.Card         `json:"drawn,omitempty"`
	NewlyExpired    int                 `json:"newly_expired"`
	ExpiredIDs      []string            `json:"expired_ids,omitempty"`
	BurdenPaid      int                 `json:"burden_paid"`
	Healed          int                 `json:"healed"`
	PendingRenewals []insurance.Renewal `json:"pending_renewals,omitempty"`
}

// NextTurn advances to the next turn: per-turn draw, the insurance
// ledger sweep, burden upkeep (when configured), recovery healing, and
// renewal prompts. A lethal burden payment ends the game before any
// healing is applied.
func (g *Game) NextTurn() (TurnResult, error) {
	if err := g.guard(PhaseResolution, PhaseDraw); err != nil {
		return TurnResult{}, err
	}

	g.turn++
	g.stats.TurnsPlayed++
	g.phase = PhaseDraw

	res := TurnResult{Turn: g.turn}
	res.Drawn = g.drawUpTo(len(g.hand) + g.bal.CardsPerTurn)

	tick := g.ledger.Tick()
	res.NewlyExpired = tick.NewlyExpired
	res.ExpiredIDs = tick.ExpiredIDs
	g.stats.InsuranceExpired += tick.NewlyExpired
	for _, id := range tick.ExpiredIDs {
		g.record(EventInsuranceExpired, map[string]any{"card_id": id})
	}

	if g.bal.BurdenUpkeep {
		if burden := g.ledger.Burden(); burden < 0 {
			res.BurdenPaid = -burden
			g.updateVitality(burden)
		}
	}

	// Post-mortem effects are skipped: a lethal burden payment above
	// must not be undone by healing scheduled in the same turn.
	if g.status == StatusInProgress {
		if heal := g.upkeepHeal(); heal > 0 {
			res.Healed = heal
			g.updateVitality(heal)
		}
	}

	res.PendingRenewals = g.ledger.PendingRenewals(g.stage, g.bal.RenewalPromptThreshold)
	g.record(EventTurnEnded, map[string]any{
		"expired": res.NewlyExpired,
		"healed":  res.Healed,
		"burden":  res.BurdenPaid,
	})
	return res, nil
}

// upkeepHeal sums recovery-insurance healing and turn-heal effects on
// cards in hand.
func (g *Game) upkeepHeal() int {
	divisor := g.bal.RecoveryHealDivisor
	if divisor <= 0 {
		divisor = 20
	}
	heal := 0
	for _, c := range g.ledger.Active() {
		if c.Insurance.Effect == card.InsuranceRecovery {
			heal += c.Insurance.Coverage / divisor
		}
	}
	for _, c := range g.hand {
		heal += c.EffectBonus(card.EffectTurnHeal)
	}
	return heal
}

// AdvanceStage moves to the next life stage, recomputing the vitality
// ceiling (clamping down, never up) and refilling the challenge deck.
// Advancing past the final stage is victory.
func (g *Game) AdvanceStage() error {
	if err := g.guard(); err != nil {
		return err
	}
	next, ok := g.stage.Next()
	if !ok {
		g.status = StatusVictory
		g.completedAt = g.clock.Now()
		g.stats.StagesCompleted++
		g.record(EventVictory, nil)
		return nil
	}

	g.stage = next
	g.stats.StagesCompleted++
	// Validation guarantees a positive cap for every stage.
	g.vit = g.vit.WithMax(g.bal.StageVitalityCap[next])
	g.challengeDeck.AddAll(g.factory.ChallengeCards(next, g.bal.ChallengesPerStage))
	g.challengeDeck.Shuffle(g.rng)
	g.record(EventStageAdvanced, map[string]any{"stage": string(next), "max_vitality": g.vit.Max()})
	return nil
}

// AddInsurance adds an externally built insurance card (e.g. restored
// from persisted data) to the ledger.
func (g *Game) AddInsurance(c card.Card) error {
	if err := g.guard(); err != nil {
		return err
	}
	if g.ledger.ActiveCount() >= g.bal.MaxInsuranceCards {
		return fmt.Errorf("%w: %d active", ErrInsuranceLimit, g.ledger.ActiveCount())
	}
	if err := g.ledger.Add(c); err != nil {
		return err
	}
	g.stats.InsurancePurchased++
	g.record(EventInsuranceAcquired, map[string]any{"card_id": c.ID})
	return nil
}

// RenewInsurance renews a term policy if the available vitality covers
// the stage-adjusted cost, paying the cost out of vitality; otherwise
// the policy expires.
func (g *Game) RenewInsurance(cardID string) (insurance.RenewalResult, error) {
	if err := g.guard(); err != nil {
		return insurance.RenewalResult{}, err
	}
	res, err := g.ledger.Renew(cardID, g.stage, g.AvailableVitality())
	if err != nil {
		return insurance.RenewalResult{}, err
	}
	switch res.Action {
	case insurance.ActionRenewed:
		g.stats.InsuranceRenewed++
		g.updateVitality(-res.CostPaid)
		g.record(EventInsuranceRenewed, map[string]any{"card_id": cardID, "cost": res.CostPaid})
	case insurance.ActionExpired:
		g.stats.InsuranceExpired++
		g.record(EventInsuranceExpired, map[string]any{"card_id": cardID})
	}
	return res, nil
}

// ExpireInsurance unconditionally expires a policy. Unknown or
// already-expired ids are a no-op.
func (g *Game) ExpireInsurance(cardID string) error {
	if err := g.guard(); err != nil {
		return err
	}
	if g.ledger.Expire(cardID) {
		g.stats.InsuranceExpired++
		g.record(EventInsuranceExpired, map[string]any{"card_id": cardID})
	}
	return nil
}

// ApplyDamage subtracts n vitality through the single update path.
func (g *Game) ApplyDamage(n int) error {
	if err := g.guard(); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: negative damage %d", ErrInvalidArgument, n)
	}
	g.updateVitality(-n)
	return nil
}

// Heal adds n vitality through the single update path.
func (g *Game) Heal(n int) error {
	if err := g.guard(); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: negative heal %d", ErrInvalidArgument, n)
	}
	g.updateVitality(n)
	return nil
}

// updateVitality is the only mutation path for vitality. The value
// object clamps to its bounds; this tracks the high-water mark and
// makes the zero floor terminal: once the game is over no further
// change applies.
func (g *Game) updateVitality(delta int) {
	if g.status != StatusInProgress {
		return
	}
	g.vit = g.vit.Apply(delta)
	if cur := g.vit.Current(); cur > g.stats.HighestVitality {
		g.stats.HighestVitality = cur
	}
	if g.vit.Depleted() {
		g.status = StatusGameOver
		g.phase = PhaseResolution
		g.completedAt = g.clock.Now()
		g.record(EventGameOver, map[string]any{"turns": g.stats.TurnsPlayed})
	}
}
