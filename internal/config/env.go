package config

import (
	"github.com/caarlos0/env/v11"
)

// envOverrides mirrors the tunable Config fields as environment
// variables. Unset variables leave the base value alone.
type envOverrides struct {
	Difficulty         string `env:"LIFEDECK_DIFFICULTY"`
	StartingVitality   int    `env:"LIFEDECK_STARTING_VITALITY"`
	StartingHandSize   int    `env:"LIFEDECK_STARTING_HAND_SIZE"`
	MaxHandSize        int    `env:"LIFEDECK_MAX_HAND_SIZE"`
	DreamCardCount     int    `env:"LIFEDECK_DREAM_CARD_COUNT"`
	ChallengesPerStage int    `env:"LIFEDECK_CHALLENGES_PER_STAGE"`
	MaxInsuranceCards  int    `env:"LIFEDECK_MAX_INSURANCE_CARDS"`
}

// FromEnv layers environment overrides on top of base, then applies
// defaults and validates. base may be nil.
func FromEnv(base *Config) (*Config, error) {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return nil, err
	}

	c := Config{}
	if base != nil {
		c = *base
	}
	if o.Difficulty != "" {
		c.Difficulty = o.Difficulty
	}
	if o.StartingVitality > 0 {
		c.StartingVitality = o.StartingVitality
	}
	if o.StartingHandSize > 0 {
		c.StartingHandSize = o.StartingHandSize
	}
	if o.MaxHandSize > 0 {
		c.MaxHandSize = o.MaxHandSize
	}
	if o.DreamCardCount > 0 {
		c.DreamCardCount = o.DreamCardCount
	}
	if o.ChallengesPerStage > 0 {
		c.ChallengesPerStage = o.ChallengesPerStage
	}
	if o.MaxInsuranceCards > 0 {
		c.MaxInsuranceCards = o.MaxInsuranceCards
	}

	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
