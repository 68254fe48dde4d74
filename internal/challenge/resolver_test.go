package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifedeck/internal/card"
	"lifedeck/internal/config"
)

func lifeCard(id string, power int) card.Card {
	return card.Card{ID: id, Name: "card " + id, Kind: card.KindLife, Power: card.MustPower(power)}
}

func challengeCard(power int, risk card.RiskLevel) card.Card {
	return card.Card{ID: "ch", Name: "Test Challenge", Kind: card.KindChallenge, Power: card.MustPower(power), Risk: risk}
}

func defensivePolicy(coverage int) card.Card {
	return card.Card{
		ID:   "ins_def",
		Kind: card.KindInsurance,
		Insurance: &card.Insurance{
			Kind:     card.InsuranceLife,
			Coverage: coverage,
			Duration: card.DurationWholeLife,
			Effect:   card.InsuranceDefensive,
		},
	}
}

func TestPlayerPower_SelectedCardsOnly(t *testing.T) {
	selected := []card.Card{lifeCard("a", 5), lifeCard("b", 7)}
	assert.Equal(t, 12, PlayerPower(selected, card.StageYouth))
	assert.Equal(t, 0, PlayerPower(nil, card.StageYouth))
}

func TestPlayerPower_ChallengeBonusCounts(t *testing.T) {
	c := lifeCard("a", 5)
	c.Effects = []card.Effect{{Kind: card.EffectChallengeBonus, Value: 3}}
	assert.Equal(t, 8, PlayerPower([]card.Card{c}, card.StageYouth))
}

func TestResolve_SuccessRewardsHalfMargin(t *testing.T) {
	selected := []card.Card{lifeCard("a", 15)}
	ch := challengeCard(10, "")

	res := Resolve(selected, ch, nil, card.StageYouth, config.DefaultBalance())
	require.True(t, res.Success)
	assert.Equal(t, 15, res.PlayerPower)
	assert.Equal(t, 10, res.ChallengePower)
	// floor((15-10)/2) = 2 with no risk multiplier.
	assert.Equal(t, 2, res.VitalityChange)
	assert.Equal(t, OutcomeReward, res.Next)
}

func TestResolve_TieIsSuccess(t *testing.T) {
	res := Resolve([]card.Card{lifeCard("a", 10)}, challengeCard(10, ""), nil, card.StageYouth, config.DefaultBalance())
	assert.True(t, res.Success)
	assert.Zero(t, res.VitalityChange)
}

func TestResolve_RiskScalesReward(t *testing.T) {
	bal := config.DefaultBalance()
	selected := []card.Card{lifeCard("a", 20)}

	// margin 10, halved to 5, then scaled.
	res := Resolve(selected, challengeCard(10, card.RiskLow), nil, card.StageYouth, bal)
	assert.Equal(t, 6, res.VitalityChange) // floor(5*1.2)

	res = Resolve(selected, challengeCard(10, card.RiskHigh), nil, card.StageYouth, bal)
	assert.Equal(t, 10, res.VitalityChange) // floor(5*2.0)
}

func TestResolve_FailureScalesDamage(t *testing.T) {
	bal := config.DefaultBalance()
	selected := []card.Card{lifeCard("a", 5)}

	res := Resolve(selected, challengeCard(15, card.RiskMedium), nil, card.StageYouth, bal)
	require.False(t, res.Success)
	// floor((15-5)*1.5) = 15 damage.
	assert.Equal(t, -15, res.VitalityChange)
	assert.Equal(t, OutcomeResolution, res.Next)
}

func TestResolve_DefensiveInsuranceSoaksDamage(t *testing.T) {
	bal := config.DefaultBalance()
	selected := []card.Card{lifeCard("a", 5)}
	active := []card.Card{defensivePolicy(60)} // soaks 60/10 = 6

	res := Resolve(selected, challengeCard(15, ""), active, card.StageYouth, bal)
	require.False(t, res.Success)
	assert.Equal(t, -4, res.VitalityChange)
}

func TestResolve_DamageNeverHeals(t *testing.T) {
	bal := config.DefaultBalance()
	active := []card.Card{defensivePolicy(500)} // would soak 50

	res := Resolve([]card.Card{lifeCard("a", 9)}, challengeCard(10, ""), active, card.StageYouth, bal)
	require.False(t, res.Success)
	assert.Zero(t, res.VitalityChange, "reduction floors at zero damage, never a heal")
}

func TestResolve_ExtremeBypassesInsurance(t *testing.T) {
	bal := config.DefaultBalance()
	selected := []card.Card{lifeCard("a", 5)}
	active := []card.Card{defensivePolicy(200)}

	res := Resolve(selected, challengeCard(15, card.RiskExtreme), active, card.StageYouth, bal)
	require.False(t, res.Success)
	// floor((15-5)*3.0) with no defensive reduction.
	assert.Equal(t, -30, res.VitalityChange)
	assert.Contains(t, res.Message, "no protection")
}

func TestResolve_InsurancePowerByEffect(t *testing.T) {
	offensive := card.Card{
		ID: "ins_off", Kind: card.KindInsurance, Power: 5,
		Insurance: &card.Insurance{Kind: card.InsuranceAccident, AgeBonus: 1, Effect: card.InsuranceOffensive},
	}
	selected := []card.Card{lifeCard("a", 5), offensive}

	// Youth: no age bonus, offensive contributes base power.
	assert.Equal(t, 10, PlayerPower(selected, card.StageYouth))
	// Middle age: +1 age bonus.
	assert.Equal(t, 11, PlayerPower(selected, card.StageMiddle))
}

func TestResolve_SpecializedInsuranceBoostsRewardNotPower(t *testing.T) {
	bal := config.DefaultBalance()
	specialized := card.Card{
		ID: "ins_spec", Kind: card.KindInsurance, Power: 3,
		Insurance: &card.Insurance{Kind: card.InsuranceIncome, AgeBonus: 3, Effect: card.InsuranceSpecialized},
	}

	// Selecting it adds no power, even past youth.
	assert.Equal(t, 5, PlayerPower([]card.Card{lifeCard("a", 5), specialized}, card.StageMiddle))

	// Held in the portfolio, it adds twice the age bonus to a success
	// reward once past youth.
	selected := []card.Card{lifeCard("a", 15)}
	active := []card.Card{specialized}

	res := Resolve(selected, challengeCard(11, ""), active, card.StageMiddle, bal)
	require.True(t, res.Success)
	// floor((15-11)/2) + 2*3 age bonus.
	assert.Equal(t, 8, res.VitalityChange)

	res = Resolve(selected, challengeCard(11, ""), active, card.StageYouth, bal)
	require.True(t, res.Success)
	assert.Equal(t, 2, res.VitalityChange, "no bonus during youth")

	// Failures get no specialized bonus.
	res = Resolve(nil, challengeCard(11, ""), active, card.StageMiddle, bal)
	require.False(t, res.Success)
	assert.Equal(t, -11, res.VitalityChange)
}

func TestRiskValues(t *testing.T) {
	bal := config.DefaultBalance()

	reward, penalty := RiskValues(card.RiskHigh, 10, 8, 1, 2, bal)
	assert.Equal(t, 21, reward)  // floor(10*2.0)+1
	assert.Equal(t, 18, penalty) // floor(8*2.0)+2

	reward, penalty = RiskValues(card.RiskLevel("unknown"), 10, 8, 0, 0, bal)
	assert.Equal(t, 10, reward)
	assert.Equal(t, 8, penalty)
}
