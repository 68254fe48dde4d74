package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lifedeck/internal/card"
)

// Config is the immutable tuning surface fixed at game construction.
// Zero fields fall back to the difficulty preset via ApplyDefaults.
type Config struct {
	Difficulty         string             `yaml:"difficulty" json:"difficulty"`
	StartingVitality   int                `yaml:"starting_vitality" json:"starting_vitality"`
	StartingHandSize   int                `yaml:"starting_hand_size" json:"starting_hand_size"`
	MaxHandSize        int                `yaml:"max_hand_size" json:"max_hand_size"`
	DreamCardCount     int                `yaml:"dream_card_count" json:"dream_card_count"`
	ChallengesPerStage int                `yaml:"challenges_per_stage" json:"challenges_per_stage"`
	MaxInsuranceCards  int                `yaml:"max_insurance_cards" json:"max_insurance_cards"`
	StageVitalityCap   map[card.Stage]int `yaml:"stage_vitality_cap" json:"stage_vitality_cap"`
	Balance            *Balance           `yaml:"balance" json:"balance,omitempty"`
}

// ApplyDefaults fills unset fields from the difficulty preset.
func (c *Config) ApplyDefaults() {
	if c.Difficulty == "" {
		c.Difficulty = "normal"
	}
	preset := BalanceFor(c.Difficulty)
	if c.StartingVitality == 0 {
		c.StartingVitality = preset.StartingVitality
	}
	if c.StartingHandSize == 0 {
		c.StartingHandSize = preset.StartingHandSize
	}
	if c.MaxHandSize == 0 {
		c.MaxHandSize = preset.MaxHandSize
	}
	if c.DreamCardCount == 0 {
		c.DreamCardCount = preset.DreamCardCount
	}
	if c.ChallengesPerStage == 0 {
		c.ChallengesPerStage = preset.ChallengesPerStage
	}
	if c.MaxInsuranceCards == 0 {
		c.MaxInsuranceCards = preset.MaxInsuranceCards
	}
	if c.StageVitalityCap == nil {
		c.StageVitalityCap = preset.StageVitalityCap
	}
}

// Validate rejects malformed configuration with a descriptive error.
// Invalid configuration is a caller bug, never silently clamped.
func (c *Config) Validate() error {
	switch c.Difficulty {
	case "casual", "normal", "hard":
	default:
		return fmt.Errorf("config: unknown difficulty %q", c.Difficulty)
	}
	if c.StartingVitality <= 0 {
		return fmt.Errorf("config: starting vitality must be positive: %d", c.StartingVitality)
	}
	if c.StartingHandSize <= 0 {
		return fmt.Errorf("config: starting hand size must be positive: %d", c.StartingHandSize)
	}
	if c.MaxHandSize < c.StartingHandSize {
		return fmt.Errorf("config: max hand size %d below starting hand size %d", c.MaxHandSize, c.StartingHandSize)
	}
	if c.DreamCardCount < 0 {
		return fmt.Errorf("config: dream card count must be non-negative: %d", c.DreamCardCount)
	}
	if c.ChallengesPerStage <= 0 {
		return fmt.Errorf("config: challenges per stage must be positive: %d", c.ChallengesPerStage)
	}
	if c.MaxInsuranceCards <= 0 {
		return fmt.Errorf("config: max insurance cards must be positive: %d", c.MaxInsuranceCards)
	}
	bal := c.ResolveBalance()
	for _, stage := range []card.Stage{card.StageYouth, card.StageMiddle, card.StageFulfillment} {
		if limit := bal.StageVitalityCap[stage]; limit <= 0 {
			return fmt.Errorf("config: vitality cap for stage %s must be positive: %d", stage, limit)
		}
	}
	for kind, mult := range bal.BurdenTypeMultiplier {
		if mult < 0 {
			return fmt.Errorf("config: burden multiplier for %s must be non-negative: %v", kind, mult)
		}
	}
	for level, mult := range bal.RiskMultiplier {
		if mult < 0 {
			return fmt.Errorf("config: risk multiplier for %s must be non-negative: %v", level, mult)
		}
	}
	if bal.RenewalExtensionTurns <= 0 {
		return fmt.Errorf("config: renewal extension turns must be positive: %d", bal.RenewalExtensionTurns)
	}
	return nil
}

// ResolveBalance merges the difficulty preset with the explicit
// overrides on Config. The result is what the engine consumes.
func (c *Config) ResolveBalance() Balance {
	var bal Balance
	if c.Balance != nil {
		bal = *c.Balance
	} else {
		bal = BalanceFor(c.Difficulty)
	}
	if c.StartingVitality > 0 {
		bal.StartingVitality = c.StartingVitality
	}
	if c.StartingHandSize > 0 {
		bal.StartingHandSize = c.StartingHandSize
	}
	if c.MaxHandSize > 0 {
		bal.MaxHandSize = c.MaxHandSize
	}
	if c.DreamCardCount > 0 {
		bal.DreamCardCount = c.DreamCardCount
	}
	if c.ChallengesPerStage > 0 {
		bal.ChallengesPerStage = c.ChallengesPerStage
	}
	if c.MaxInsuranceCards > 0 {
		bal.MaxInsuranceCards = c.MaxInsuranceCards
	}
	if c.StageVitalityCap != nil {
		bal.StageVitalityCap = c.StageVitalityCap
	}
	return bal
}

// Load reads a YAML config file, applies defaults and validates.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns a validated normal-difficulty config.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}
