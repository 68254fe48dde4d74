package config

import "lifedeck/internal/card"

// Balance holds gameplay balance configuration. Every constant the
// simulation consumes lives here so difficulty presets and tests can
// tune them without touching engine code.
type Balance struct {
	// Vitality
	StartingVitality int                `yaml:"starting_vitality" json:"starting_vitality"`
	StageVitalityCap map[card.Stage]int `yaml:"stage_vitality_cap" json:"stage_vitality_cap"`

	// Hand and decks
	StartingHandSize   int `yaml:"starting_hand_size" json:"starting_hand_size"`
	MaxHandSize        int `yaml:"max_hand_size" json:"max_hand_size"`
	CardsPerTurn       int `yaml:"cards_per_turn" json:"cards_per_turn"`
	DreamCardCount     int `yaml:"dream_card_count" json:"dream_card_count"`
	ChallengesPerStage int `yaml:"challenges_per_stage" json:"challenges_per_stage"`
	RewardChoiceCount  int `yaml:"reward_choice_count" json:"reward_choice_count"`

	// Insurance
	MaxInsuranceCards      int                           `yaml:"max_insurance_cards" json:"max_insurance_cards"`
	InsuranceChoiceEvery   int                           `yaml:"insurance_choice_every" json:"insurance_choice_every"`
	RenewalStageIncrement  map[card.Stage]int            `yaml:"renewal_stage_increment" json:"renewal_stage_increment"`
	RenewalExtensionTurns  int                           `yaml:"renewal_extension_turns" json:"renewal_extension_turns"`
	RenewalPromptThreshold int                           `yaml:"renewal_prompt_threshold" json:"renewal_prompt_threshold"`
	BurdenTypeMultiplier   map[card.InsuranceKind]float64 `yaml:"burden_type_multiplier" json:"burden_type_multiplier"`
	BurdenSurchargeCount   int                           `yaml:"burden_surcharge_count" json:"burden_surcharge_count"`
	BurdenSurchargePct     int                           `yaml:"burden_surcharge_pct" json:"burden_surcharge_pct"`
	BurdenUpkeep           bool                          `yaml:"burden_upkeep" json:"burden_upkeep"`

	// Challenges
	RiskMultiplier            map[card.RiskLevel]float64 `yaml:"risk_multiplier" json:"risk_multiplier"`
	DefensiveReductionDivisor int                        `yaml:"defensive_reduction_divisor" json:"defensive_reduction_divisor"`
	RecoveryHealDivisor       int                        `yaml:"recovery_heal_divisor" json:"recovery_heal_divisor"`
}

// DefaultBalance returns the standard balance configuration.
func DefaultBalance() Balance {
	return Balance{
		StartingVitality: 100,
		StageVitalityCap: map[card.Stage]int{
			card.StageYouth:       100,
			card.StageMiddle:      80,
			card.StageFulfillment: 60,
		},
		StartingHandSize:   5,
		MaxHandSize:        7,
		CardsPerTurn:       1,
		DreamCardCount:     3,
		ChallengesPerStage: 10,
		RewardChoiceCount:  3,

		MaxInsuranceCards:      6,
		InsuranceChoiceEvery:   5,
		RenewalStageIncrement:  map[card.Stage]int{card.StageYouth: 1, card.StageMiddle: 2, card.StageFulfillment: 3},
		RenewalExtensionTurns:  10,
		RenewalPromptThreshold: 2,
		BurdenTypeMultiplier: map[card.InsuranceKind]float64{
			card.InsuranceLife:     1.2,
			card.InsuranceMedical:  1.0,
			card.InsuranceIncome:   0.9,
			card.InsuranceAccident: 0.6,
		},
		BurdenSurchargeCount: 3,
		BurdenSurchargePct:   10,
		BurdenUpkeep:         false,

		RiskMultiplier: map[card.RiskLevel]float64{
			card.RiskLow:     1.2,
			card.RiskMedium:  1.5,
			card.RiskHigh:    2.0,
			card.RiskExtreme: 3.0,
		},
		DefensiveReductionDivisor: 10,
		RecoveryHealDivisor:       20,
	}
}

// CasualBalance returns easier balance for casual difficulty.
func CasualBalance() Balance {
	b := DefaultBalance()
	b.StartingVitality = 120
	b.StageVitalityCap[card.StageYouth] = 120
	b.StageVitalityCap[card.StageMiddle] = 100
	b.StageVitalityCap[card.StageFulfillment] = 80
	b.MaxInsuranceCards = 8
	b.BurdenSurchargePct = 5
	b.RenewalExtensionTurns = 12
	return b
}

// HardBalance returns harder balance for experienced players.
func HardBalance() Balance {
	b := DefaultBalance()
	b.StartingVitality = 80
	b.StageVitalityCap[card.StageYouth] = 80
	b.StageVitalityCap[card.StageMiddle] = 60
	b.StageVitalityCap[card.StageFulfillment] = 50
	b.MaxInsuranceCards = 4
	b.BurdenSurchargePct = 15
	b.BurdenUpkeep = true
	b.RenewalExtensionTurns = 8
	return b
}

// BalanceFor maps a difficulty name to its preset.
func BalanceFor(difficulty string) Balance {
	switch difficulty {
	case "casual":
		return CasualBalance()
	case "hard":
		return HardBalance()
	default:
		return DefaultBalance()
	}
}
