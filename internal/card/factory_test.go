package card

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFactory(seed int64) *Factory {
	return NewFactory(&SeqSource{}, rand.New(rand.NewSource(seed)))
}

func TestStarterLifeCards_FreshIDsPerCall(t *testing.T) {
	f := testFactory(1)

	first := f.StarterLifeCards()
	second := f.StarterLifeCards()
	require.Len(t, first, len(second))

	seen := map[string]bool{}
	for _, c := range append(first, second...) {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		assert.Equal(t, KindLife, c.Kind)
		assert.NotEmpty(t, c.Name)
	}
}

func TestStarterLifeCards_EffectsNotShared(t *testing.T) {
	f := testFactory(1)

	a := f.StarterLifeCards()
	b := f.StarterLifeCards()

	for i := range a {
		if len(a[i].Effects) == 0 {
			continue
		}
		a[i].Effects[0].Value = 999
		assert.NotEqual(t, 999, b[i].Effects[0].Value, "catalog effects must not alias")
	}
}

func TestChallengeCards_CountAndStage(t *testing.T) {
	f := testFactory(7)

	cards := f.ChallengeCards(StageYouth, 10)
	require.Len(t, cards, 10)
	for _, c := range cards {
		assert.Equal(t, KindChallenge, c.Kind)
		assert.NotEmpty(t, c.ID)
		assert.Contains(t, []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskExtreme}, c.Risk)
	}

	assert.Empty(t, f.ChallengeCards(StageYouth, 0))
	assert.Empty(t, f.ChallengeCards(Stage("unknown"), 5))
}

func TestChallengeCards_DeterministicUnderSeed(t *testing.T) {
	a := testFactory(42).ChallengeCards(StageMiddle, 10)
	b := testFactory(42).ChallengeCards(StageMiddle, 10)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Risk, b[i].Risk)
	}
}

func TestDreamCards_CyclesCatalog(t *testing.T) {
	f := testFactory(1)

	cards := f.DreamCards(5)
	require.Len(t, cards, 5)
	assert.Equal(t, cards[0].Name, cards[3].Name)
	assert.Equal(t, cards[1].Name, cards[4].Name)
	for _, c := range cards {
		assert.Equal(t, KindDream, c.Kind)
		assert.NotEmpty(t, c.Dream)
	}
}

func TestRewardCards_StagePowerBump(t *testing.T) {
	youth := testFactory(9).RewardCards(StageYouth, 20)
	later := testFactory(9).RewardCards(StageFulfillment, 20)

	require.Len(t, later, len(youth))
	for i := range youth {
		assert.Equal(t, youth[i].Name, later[i].Name, "same seed rolls the same specs")
		assert.Equal(t, youth[i].Power.Add(4), later[i].Power)
	}
}

func TestInsuranceTypeChoices_TermAlwaysCheaper(t *testing.T) {
	for _, stage := range []Stage{StageYouth, StageMiddle, StageFulfillment} {
		for seed := int64(0); seed < 20; seed++ {
			choices := testFactory(seed).InsuranceTypeChoices(stage)
			require.Len(t, choices, 3)

			kinds := map[InsuranceKind]bool{}
			for _, choice := range choices {
				assert.False(t, kinds[choice.Kind], "kinds must be distinct")
				kinds[choice.Kind] = true
				assert.Less(t, choice.TermCost.Int(), choice.WholeLifeCost.Int(),
					"stage %s seed %d: term must cost less than whole life", stage, seed)
				assert.Positive(t, choice.TermTurns)
			}
		}
	}
}

func TestInsuranceTypeChoices_LaterStagesCostMore(t *testing.T) {
	youth := testFactory(3).InsuranceTypeChoices(StageYouth)
	middle := testFactory(3).InsuranceTypeChoices(StageMiddle)

	// Same seed picks the same categories in the same order.
	for i := range youth {
		require.Equal(t, youth[i].Kind, middle[i].Kind)
		assert.Equal(t, youth[i].TermCost.Int()+1, middle[i].TermCost.Int())
	}
}

func TestMaterialize(t *testing.T) {
	f := testFactory(1)
	choice := f.InsuranceTypeChoices(StageYouth)[0]

	term, err := f.Materialize(choice, DurationTerm)
	require.NoError(t, err)
	assert.Equal(t, KindInsurance, term.Kind)
	assert.Equal(t, DurationTerm, term.Insurance.Duration)
	assert.Equal(t, choice.TermTurns, term.Insurance.RemainingTurns)
	assert.Equal(t, choice.TermCost, term.Cost)

	whole, err := f.Materialize(choice, DurationWholeLife)
	require.NoError(t, err)
	assert.Equal(t, DurationWholeLife, whole.Insurance.Duration)
	assert.Zero(t, whole.Insurance.RemainingTurns)
	assert.Equal(t, choice.WholeLifeCost, whole.Cost)

	// Same choice, same protection.
	assert.Equal(t, term.Insurance.Coverage, whole.Insurance.Coverage)
	assert.Equal(t, term.Power, whole.Power)

	_, err = f.Materialize(choice, DurationKind("forever"))
	assert.Error(t, err)
}
