// Package challenge resolves risk/reward challenges. Resolution is a
// pure function of the selected cards, the challenge card, and the
// active insurance portfolio; all state mutation stays in the game.
package challenge

import (
	"fmt"
	"math"

	"lifedeck/internal/card"
	"lifedeck/internal/config"
)

// Outcome tells the caller which sub-phase follows resolution.
type Outcome string

const (
	// OutcomeReward signals entry to a reward selection sub-phase.
	OutcomeReward Outcome = "reward"
	// OutcomeResolution signals direct entry to the resolution phase.
	OutcomeResolution Outcome = "resolution"
)

// Result is the outcome of one resolved challenge.
type Result struct {
	Success        bool    `json:"success"`
	PlayerPower    int     `json:"player_power"`
	ChallengePower int     `json:"challenge_power"`
	VitalityChange int     `json:"vitality_change"`
	Message        string  `json:"message"`
	Next           Outcome `json:"next"`
}

// PlayerPower sums the effective power of the selected cards. Insurance
// cards among them contribute per their effect kind (only offensive
// adds direct power).
func PlayerPower(selected []card.Card, stage card.Stage) int {
	total := card.Power(0)
	for _, c := range selected {
		total = total.Add(c.EffectivePower(stage))
	}
	return total.Int()
}

// defensiveReduction is the damage soaked by defensive insurance:
// coverage divided by the configured divisor, summed over defensive
// policies. Zero when the challenge is insurance-immune.
func defensiveReduction(ch card.Card, active []card.Card, bal config.Balance) int {
	if ch.InsuranceImmune() {
		return 0
	}
	divisor := bal.DefensiveReductionDivisor
	if divisor <= 0 {
		divisor = 10
	}
	total := 0
	for _, c := range active {
		if c.Kind == card.KindInsurance && c.Insurance != nil && c.Insurance.Effect == card.InsuranceDefensive {
			total += c.Insurance.Coverage / divisor
		}
	}
	return total
}

// specializedBonus is the extra success reward from specialized
// insurance: twice the age bonus per policy, nothing during youth.
func specializedBonus(active []card.Card, stage card.Stage) int {
	if stage == card.StageYouth {
		return 0
	}
	total := 0
	for _, c := range active {
		if c.Kind == card.KindInsurance && c.Insurance != nil && c.Insurance.Effect == card.InsuranceSpecialized {
			total += 2 * c.Insurance.AgeBonus.Int()
		}
	}
	return total
}

// Resolve compares player power against the challenge and derives the
// vitality delta. Success rewards half the margin plus any specialized
// insurance bonus; failure costs the full margin less any defensive
// reduction, scaled by the challenge's risk multiplier when it carries
// one.
func Resolve(selected []card.Card, ch card.Card, active []card.Card, stage card.Stage, bal config.Balance) Result {
	pp := PlayerPower(selected, stage)
	cp := ch.Power.Int()

	mult := 1.0
	if ch.Risk != "" {
		if m, ok := bal.RiskMultiplier[ch.Risk]; ok {
			mult = m
		}
	}

	if pp >= cp {
		reward := int(math.Floor(float64((pp-cp)/2)*mult)) + specializedBonus(active, stage)
		return Result{
			Success:        true,
			PlayerPower:    pp,
			ChallengePower: cp,
			VitalityChange: reward,
			Message:        fmt.Sprintf("overcame %s (%d vs %d)", ch.Name, pp, cp),
			Next:           OutcomeReward,
		}
	}

	damage := int(math.Floor(float64(cp-pp) * mult))
	damage -= defensiveReduction(ch, active, bal)
	if damage < 0 {
		damage = 0
	}
	msg := fmt.Sprintf("failed %s (%d vs %d)", ch.Name, pp, cp)
	if ch.InsuranceImmune() {
		msg += ", insurance offered no protection"
	}
	return Result{
		Success:        false,
		PlayerPower:    pp,
		ChallengePower: cp,
		VitalityChange: -damage,
		Message:        msg,
		Next:           OutcomeResolution,
	}
}

// RiskValues computes the scaled reward and penalty for a risk level:
// actualReward = floor(baseReward*multiplier) + successBonus and
// actualPenalty = floor(basePenalty*multiplier) + failurePenalty.
func RiskValues(level card.RiskLevel, baseReward, basePenalty, successBonus, failurePenalty int, bal config.Balance) (actualReward, actualPenalty int) {
	mult, ok := bal.RiskMultiplier[level]
	if !ok {
		mult = 1.0
	}
	actualReward = int(math.Floor(float64(baseReward)*mult)) + successBonus
	actualPenalty = int(math.Floor(float64(basePenalty)*mult)) + failurePenalty
	return actualReward, actualPenalty
}
