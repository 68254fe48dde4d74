package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termCard(id string, turns int) Card {
	return Card{
		ID:    id,
		Name:  "Test Term",
		Kind:  KindInsurance,
		Power: 3,
		Cost:  2,
		Insurance: &Insurance{
			Kind:           InsuranceMedical,
			Coverage:       40,
			Duration:       DurationTerm,
			RemainingTurns: turns,
			AgeBonus:       2,
			Effect:         InsuranceRecovery,
		},
	}
}

func TestCardCopy_Independent(t *testing.T) {
	c := termCard("ins_1", 5)
	c.Effects = []Effect{{Kind: EffectTurnHeal, Value: 1}}

	cp := c.Copy()
	cp.Insurance.RemainingTurns = 99
	cp.Effects[0].Value = 42

	assert.Equal(t, 5, c.Insurance.RemainingTurns)
	assert.Equal(t, 1, c.Effects[0].Value)
}

func TestIsTermInsurance(t *testing.T) {
	assert.True(t, termCard("ins_1", 5).IsTermInsurance())

	whole := termCard("ins_2", 0)
	whole.Insurance.Duration = DurationWholeLife
	assert.False(t, whole.IsTermInsurance())

	assert.False(t, Card{ID: "c1", Kind: KindLife}.IsTermInsurance())
	assert.False(t, Card{ID: "c2", Kind: KindInsurance}.IsTermInsurance())
}

func TestInsuranceImmune_ExtremeChallengesOnly(t *testing.T) {
	assert.True(t, Card{ID: "ch", Kind: KindChallenge, Risk: RiskExtreme}.InsuranceImmune())
	assert.False(t, Card{ID: "ch", Kind: KindChallenge, Risk: RiskHigh}.InsuranceImmune())
	assert.False(t, Card{ID: "c", Kind: KindLife, Risk: RiskExtreme}.InsuranceImmune())
}

func TestWithDecrementedTurns(t *testing.T) {
	c := termCard("ins_1", 2)

	next := c.WithDecrementedTurns()
	assert.Equal(t, 1, next.Insurance.RemainingTurns)
	assert.Equal(t, 2, c.Insurance.RemainingTurns, "original unchanged")

	zero := termCard("ins_2", 0)
	assert.Equal(t, 0, zero.WithDecrementedTurns().Insurance.RemainingTurns, "floors at zero")

	life := Card{ID: "c1", Kind: KindLife}
	assert.NotPanics(t, func() { life.WithDecrementedTurns() })
}

func TestEffectBonus_SumsMatchingKind(t *testing.T) {
	c := Card{
		ID:   "c1",
		Kind: KindCombo,
		Effects: []Effect{
			{Kind: EffectChallengeBonus, Value: 2},
			{Kind: EffectShield, Value: 1},
			{Kind: EffectChallengeBonus, Value: 3},
		},
	}
	assert.Equal(t, 5, c.EffectBonus(EffectChallengeBonus))
	assert.Equal(t, 1, c.EffectBonus(EffectShield))
	assert.Equal(t, 0, c.EffectBonus(EffectTurnHeal))
}

func TestEffectivePower_RegularCards(t *testing.T) {
	c := Card{ID: "c1", Kind: KindSkill, Power: 7, Effects: []Effect{{Kind: EffectChallengeBonus, Value: 2}}}
	assert.Equal(t, Power(9), c.EffectivePower(StageYouth))

	plain := Card{ID: "c2", Kind: KindLife, Power: 4}
	assert.Equal(t, Power(4), plain.EffectivePower(StageMiddle))
}

func TestEffectivePower_InsuranceByEffectKind(t *testing.T) {
	offensive := Card{
		ID: "i1", Kind: KindInsurance, Power: 5,
		Insurance: &Insurance{Kind: InsuranceAccident, AgeBonus: 1, Effect: InsuranceOffensive},
	}
	// Age bonus only applies past youth.
	assert.Equal(t, Power(5), offensive.EffectivePower(StageYouth))
	assert.Equal(t, Power(6), offensive.EffectivePower(StageMiddle))

	// Specialized insurance boosts challenge rewards, never power.
	specialized := Card{
		ID: "i2", Kind: KindInsurance, Power: 3,
		Insurance: &Insurance{Kind: InsuranceIncome, AgeBonus: 3, Effect: InsuranceSpecialized},
	}
	assert.Equal(t, Power(0), specialized.EffectivePower(StageYouth))
	assert.Equal(t, Power(0), specialized.EffectivePower(StageFulfillment))

	defensive := Card{
		ID: "i3", Kind: KindInsurance, Power: 4,
		Insurance: &Insurance{Kind: InsuranceLife, AgeBonus: 2, Effect: InsuranceDefensive},
	}
	assert.Equal(t, Power(0), defensive.EffectivePower(StageMiddle))
}

func TestStageNext(t *testing.T) {
	next, ok := StageYouth.Next()
	require.True(t, ok)
	assert.Equal(t, StageMiddle, next)

	next, ok = StageMiddle.Next()
	require.True(t, ok)
	assert.Equal(t, StageFulfillment, next)

	_, ok = StageFulfillment.Next()
	assert.False(t, ok)
}
