package card

import (
	"fmt"
	"math/rand"
)

// Factory generates cards. Stateless aside from the injected id source
// and RNG, so a fixed seed yields a fixed sequence.
type Factory struct {
	IDs IDSource
	RNG *rand.Rand
}

func NewFactory(ids IDSource, rng *rand.Rand) *Factory {
	return &Factory{IDs: ids, RNG: rng}
}

type lifeCardSpec struct {
	Name        string
	Description string
	Power       Power
	Cost        Premium
	Effects     []Effect
}

var starterLifeSpecs = []lifeCardSpec{
	{Name: "Morning Routine", Description: "A steady start to the day", Power: 4, Cost: 1},
	{Name: "Part-time Job", Description: "Modest but reliable income", Power: 5, Cost: 2},
	{Name: "Close Friends", Description: "People you can count on", Power: 6, Cost: 2, Effects: []Effect{{Kind: EffectTurnHeal, Value: 1}}},
	{Name: "Exercise Habit", Description: "Keeps the body working", Power: 5, Cost: 1, Effects: []Effect{{Kind: EffectShield, Value: 1}}},
	{Name: "Night Study", Description: "Slow compounding knowledge", Power: 7, Cost: 3},
	{Name: "Family Support", Description: "A safety net at home", Power: 6, Cost: 2},
	{Name: "Side Project", Description: "Might turn into something", Power: 8, Cost: 4, Effects: []Effect{{Kind: EffectChallengeBonus, Value: 2}}},
	{Name: "Savings Account", Description: "Rainy day money", Power: 4, Cost: 1},
}

// StarterLifeCards builds the fixed opening catalog. Every call mints
// fresh ids, so two decks never share a card identity.
func (f *Factory) StarterLifeCards() []Card {
	cards := make([]Card, 0, len(starterLifeSpecs))
	for _, spec := range starterLifeSpecs {
		effects := make([]Effect, len(spec.Effects))
		copy(effects, spec.Effects)
		cards = append(cards, Card{
			ID:          f.IDs.NewID("life"),
			Name:        spec.Name,
			Description: spec.Description,
			Kind:        KindLife,
			Power:       spec.Power,
			Cost:        spec.Cost,
			Effects:     effects,
		})
	}
	return cards
}

type insuranceCardSpec struct {
	Name     string
	Kind     InsuranceKind
	Coverage int
	Power    Power
	Cost     Premium
	AgeBonus Power
	Effect   InsuranceEffectKind
}

var extendedInsuranceSpecs = []insuranceCardSpec{
	{Name: "Basic Life Cover", Kind: InsuranceLife, Coverage: 50, Power: 3, Cost: 4, AgeBonus: 2, Effect: InsuranceDefensive},
	{Name: "Accident Rider", Kind: InsuranceAccident, Coverage: 30, Power: 5, Cost: 2, AgeBonus: 1, Effect: InsuranceOffensive},
	{Name: "Hospital Plan", Kind: InsuranceMedical, Coverage: 40, Power: 2, Cost: 3, AgeBonus: 2, Effect: InsuranceRecovery},
	{Name: "Income Shield", Kind: InsuranceIncome, Coverage: 35, Power: 3, Cost: 3, AgeBonus: 3, Effect: InsuranceSpecialized},
	{Name: "Premium Life Cover", Kind: InsuranceLife, Coverage: 80, Power: 4, Cost: 6, AgeBonus: 3, Effect: InsuranceDefensive},
	{Name: "Critical Care", Kind: InsuranceMedical, Coverage: 60, Power: 3, Cost: 5, AgeBonus: 2, Effect: InsuranceRecovery},
}

// ExtendedInsuranceCards builds the whole-life insurance catalog used
// to seed random pools.
func (f *Factory) ExtendedInsuranceCards() []Card {
	cards := make([]Card, 0, len(extendedInsuranceSpecs))
	for _, spec := range extendedInsuranceSpecs {
		cards = append(cards, Card{
			ID:    f.IDs.NewID("ins"),
			Name:  spec.Name,
			Kind:  KindInsurance,
			Power: spec.Power,
			Cost:  spec.Cost,
			Insurance: &Insurance{
				Kind:     spec.Kind,
				Coverage: spec.Coverage,
				Duration: DurationWholeLife,
				AgeBonus: spec.AgeBonus,
				Effect:   spec.Effect,
			},
		})
	}
	return cards
}

type challengeSpec struct {
	Name   string
	Power  Power
	Risk   RiskLevel
	Weight int
}

var challengeSpecsByStage = map[Stage][]challengeSpec{
	StageYouth: {
		{Name: "Job Interview", Power: 8, Risk: RiskLow, Weight: 30},
		{Name: "Final Exams", Power: 10, Risk: RiskLow, Weight: 25},
		{Name: "First Apartment", Power: 12, Risk: RiskMedium, Weight: 20},
		{Name: "Startup Offer", Power: 15, Risk: RiskHigh, Weight: 15},
		{Name: "Move Abroad", Power: 20, Risk: RiskExtreme, Weight: 10},
	},
	StageMiddle: {
		{Name: "Career Change", Power: 14, Risk: RiskMedium, Weight: 30},
		{Name: "Mortgage", Power: 16, Risk: RiskMedium, Weight: 25},
		{Name: "Health Scare", Power: 18, Risk: RiskHigh, Weight: 20},
		{Name: "Business Venture", Power: 22, Risk: RiskHigh, Weight: 15},
		{Name: "Market Crash", Power: 26, Risk: RiskExtreme, Weight: 10},
	},
	StageFulfillment: {
		{Name: "Retirement Planning", Power: 18, Risk: RiskMedium, Weight: 30},
		{Name: "Second Career", Power: 20, Risk: RiskMedium, Weight: 25},
		{Name: "Major Surgery", Power: 24, Risk: RiskHigh, Weight: 20},
		{Name: "Legacy Project", Power: 28, Risk: RiskHigh, Weight: 15},
		{Name: "World Voyage", Power: 32, Risk: RiskExtreme, Weight: 10},
	},
}

// ChallengeCards rolls n challenge cards for the stage from its
// weighted pool.
func (f *Factory) ChallengeCards(stage Stage, n int) []Card {
	specs, ok := challengeSpecsByStage[stage]
	if !ok || n <= 0 {
		return []Card{}
	}

	totalWeight := 0
	for _, s := range specs {
		totalWeight += s.Weight
	}

	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		roll := f.RNG.Intn(totalWeight)
		current := 0
		for _, s := range specs {
			current += s.Weight
			if roll < current {
				cards = append(cards, Card{
					ID:    f.IDs.NewID("chal"),
					Name:  s.Name,
					Kind:  KindChallenge,
					Power: s.Power,
					Risk:  s.Risk,
				})
				break
			}
		}
	}
	return cards
}

var dreamSpecs = []struct {
	Name     string
	Category DreamCategory
	Power    Power
}{
	{Name: "Own a Business", Category: DreamCareer, Power: 10},
	{Name: "Raise a Family", Category: DreamFamily, Power: 10},
	{Name: "See the World", Category: DreamAdventure, Power: 10},
}

// DreamCards picks n dream cards, cycling through the catalog.
func (f *Factory) DreamCards(n int) []Card {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		spec := dreamSpecs[i%len(dreamSpecs)]
		cards = append(cards, Card{
			ID:    f.IDs.NewID("dream"),
			Name:  spec.Name,
			Kind:  KindDream,
			Power: spec.Power,
			Dream: spec.Category,
		})
	}
	return cards
}

type rewardSpec struct {
	Name    string
	Kind    Kind
	Power   Power
	Cost    Premium
	Effects []Effect
	Weight  int
}

var rewardSpecs = []rewardSpec{
	{Name: "New Hobby", Kind: KindLife, Power: 6, Cost: 2, Weight: 25},
	{Name: "Promotion", Kind: KindLife, Power: 8, Cost: 3, Weight: 20},
	{Name: "Public Speaking", Kind: KindSkill, Power: 7, Cost: 2, Effects: []Effect{{Kind: EffectChallengeBonus, Value: 2}}, Weight: 18},
	{Name: "Negotiation", Kind: KindSkill, Power: 9, Cost: 3, Effects: []Effect{{Kind: EffectChallengeBonus, Value: 3}}, Weight: 14},
	{Name: "Windfall", Kind: KindEvent, Power: 5, Cost: 0, Effects: []Effect{{Kind: EffectTurnHeal, Value: 2}}, Weight: 10},
	{Name: "Mentor and Network", Kind: KindCombo, Power: 11, Cost: 4, Effects: []Effect{{Kind: EffectChallengeBonus, Value: 2}, {Kind: EffectShield, Value: 1}}, Weight: 8},
	{Name: "Once in a Lifetime", Kind: KindLegendary, Power: 15, Cost: 5, Effects: []Effect{{Kind: EffectChallengeBonus, Value: 5}}, Weight: 5},
}

// RewardCards rolls n reward choices from the weighted pool. Later
// stages add a small power bump so rewards keep pace with challenges.
func (f *Factory) RewardCards(stage Stage, n int) []Card {
	if n <= 0 {
		return []Card{}
	}
	bump := Power(0)
	switch stage {
	case StageMiddle:
		bump = 2
	case StageFulfillment:
		bump = 4
	}

	totalWeight := 0
	for _, s := range rewardSpecs {
		totalWeight += s.Weight
	}

	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		roll := f.RNG.Intn(totalWeight)
		current := 0
		for _, s := range rewardSpecs {
			current += s.Weight
			if roll < current {
				effects := make([]Effect, len(s.Effects))
				copy(effects, s.Effects)
				cards = append(cards, Card{
					ID:      f.IDs.NewID("card"),
					Name:    s.Name,
					Kind:    s.Kind,
					Power:   s.Power.Add(bump),
					Cost:    s.Cost,
					Effects: effects,
				})
				break
			}
		}
	}
	return cards
}

// TypeChoice is a purchasable pair of insurance variants for one
// category: a cheaper term option with a finite duration and a dearer
// whole-life option. Both share power and coverage.
type TypeChoice struct {
	Kind          InsuranceKind       `json:"kind"`
	Name          string              `json:"name"`
	Power         Power               `json:"power"`
	Coverage      int                 `json:"coverage"`
	AgeBonus      Power               `json:"age_bonus"`
	Effect        InsuranceEffectKind `json:"effect"`
	TermCost      Premium             `json:"term_cost"`
	TermTurns     int                 `json:"term_turns"`
	WholeLifeCost Premium             `json:"whole_life_cost"`
}

type choiceSpec struct {
	Kind     InsuranceKind
	Name     string
	Coverage int
	Power    Power
	BaseCost Premium
	AgeBonus Power
	Effect   InsuranceEffectKind
}

var choiceSpecs = []choiceSpec{
	{Kind: InsuranceLife, Name: "Life Insurance", Coverage: 60, Power: 4, BaseCost: 3, AgeBonus: 2, Effect: InsuranceDefensive},
	{Kind: InsuranceMedical, Name: "Medical Insurance", Coverage: 45, Power: 3, BaseCost: 2, AgeBonus: 2, Effect: InsuranceRecovery},
	{Kind: InsuranceAccident, Name: "Accident Insurance", Coverage: 30, Power: 5, BaseCost: 2, AgeBonus: 1, Effect: InsuranceOffensive},
	{Kind: InsuranceIncome, Name: "Income Insurance", Coverage: 40, Power: 3, BaseCost: 3, AgeBonus: 3, Effect: InsuranceSpecialized},
}

const choiceTermTurns = 10

// InsuranceTypeChoices returns three distinct categories, each with a
// term and a whole-life variant. Later stages cost more; the term cost
// is always strictly below the whole-life cost.
func (f *Factory) InsuranceTypeChoices(stage Stage) []TypeChoice {
	stageLoad := Premium(0)
	switch stage {
	case StageMiddle:
		stageLoad = 1
	case StageFulfillment:
		stageLoad = 2
	}

	// Pick 3 of the 4 categories at random without repeats.
	idx := f.RNG.Perm(len(choiceSpecs))[:3]

	choices := make([]TypeChoice, 0, 3)
	for _, i := range idx {
		s := choiceSpecs[i]
		termCost := s.BaseCost.Add(stageLoad)
		choices = append(choices, TypeChoice{
			Kind:          s.Kind,
			Name:          s.Name,
			Power:         s.Power,
			Coverage:      s.Coverage,
			AgeBonus:      s.AgeBonus,
			Effect:        s.Effect,
			TermCost:      termCost,
			TermTurns:     choiceTermTurns,
			WholeLifeCost: termCost.Add(termCost/2 + 1),
		})
	}
	return choices
}

// TermInsuranceCard materializes the term variant of a choice.
func (f *Factory) TermInsuranceCard(choice TypeChoice) Card {
	return Card{
		ID:    f.IDs.NewID("ins"),
		Name:  choice.Name + " (Term)",
		Kind:  KindInsurance,
		Power: choice.Power,
		Cost:  choice.TermCost,
		Insurance: &Insurance{
			Kind:           choice.Kind,
			Coverage:       choice.Coverage,
			Duration:       DurationTerm,
			RemainingTurns: choice.TermTurns,
			AgeBonus:       choice.AgeBonus,
			Effect:         choice.Effect,
		},
	}
}

// WholeLifeInsuranceCard materializes the whole-life variant of a choice.
func (f *Factory) WholeLifeInsuranceCard(choice TypeChoice) Card {
	return Card{
		ID:    f.IDs.NewID("ins"),
		Name:  choice.Name + " (Whole Life)",
		Kind:  KindInsurance,
		Power: choice.Power,
		Cost:  choice.WholeLifeCost,
		Insurance: &Insurance{
			Kind:     choice.Kind,
			Coverage: choice.Coverage,
			Duration: DurationWholeLife,
			AgeBonus: choice.AgeBonus,
			Effect:   choice.Effect,
		},
	}
}

// Materialize builds the concrete card for the requested duration kind.
func (f *Factory) Materialize(choice TypeChoice, duration DurationKind) (Card, error) {
	switch duration {
	case DurationTerm:
		return f.TermInsuranceCard(choice), nil
	case DurationWholeLife:
		return f.WholeLifeInsuranceCard(choice), nil
	default:
		return Card{}, fmt.Errorf("unknown duration kind: %s", duration)
	}
}
