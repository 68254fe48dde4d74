package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifedeck/internal/card"
)

func TestApplyDefaults_FillsFromPreset(t *testing.T) {
	c := Config{}
	c.ApplyDefaults()

	assert.Equal(t, "normal", c.Difficulty)
	assert.Equal(t, 100, c.StartingVitality)
	assert.Equal(t, 5, c.StartingHandSize)
	assert.Equal(t, 7, c.MaxHandSize)
	assert.Equal(t, 100, c.StageVitalityCap[card.StageYouth])
	require.NoError(t, c.Validate())
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	c := Config{Difficulty: "hard", StartingVitality: 42}
	c.ApplyDefaults()

	assert.Equal(t, 42, c.StartingVitality)
	assert.Equal(t, 4, c.MaxInsuranceCards, "hard preset")
}

func TestValidate_RejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown difficulty", func(c *Config) { c.Difficulty = "nightmare" }},
		{"negative vitality", func(c *Config) { c.StartingVitality = -5 }},
		{"max hand below starting hand", func(c *Config) { c.MaxHandSize = c.StartingHandSize - 1 }},
		{"negative dream count", func(c *Config) { c.DreamCardCount = -1 }},
		{"zero challenges per stage", func(c *Config) { c.ChallengesPerStage = -2 }},
		{"zero vitality cap", func(c *Config) { c.StageVitalityCap = map[card.Stage]int{card.StageYouth: 0} }},
		{"missing stage cap", func(c *Config) {
			c.StageVitalityCap = map[card.Stage]int{card.StageMiddle: 80, card.StageFulfillment: 60}
		}},
		{"stage caps only in balance override", func(c *Config) {
			bal := BalanceFor(c.Difficulty)
			bal.StageVitalityCap = map[card.Stage]int{card.StageYouth: 100}
			c.Balance = &bal
			c.StageVitalityCap = nil
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestResolveBalance_OverridesPreset(t *testing.T) {
	c := Config{Difficulty: "normal", StartingVitality: 55, MaxInsuranceCards: 2}
	c.ApplyDefaults()

	bal := c.ResolveBalance()
	assert.Equal(t, 55, bal.StartingVitality)
	assert.Equal(t, 2, bal.MaxInsuranceCards)
	assert.Equal(t, 5, bal.InsuranceChoiceEvery, "untouched preset value survives")
}

func TestBalanceFor_Presets(t *testing.T) {
	normal := BalanceFor("normal")
	casual := BalanceFor("casual")
	hard := BalanceFor("hard")

	assert.Greater(t, casual.StartingVitality, normal.StartingVitality)
	assert.Less(t, hard.StartingVitality, normal.StartingVitality)
	assert.True(t, hard.BurdenUpkeep)
	assert.False(t, normal.BurdenUpkeep)

	// Unknown difficulty falls back to the default preset.
	assert.Equal(t, normal.StartingVitality, BalanceFor("???").StartingVitality)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := `difficulty: casual
starting_vitality: 90
max_insurance_cards: 3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "casual", c.Difficulty)
	assert.Equal(t, 90, c.StartingVitality)
	assert.Equal(t, 3, c.MaxInsuranceCards)
	assert.Equal(t, 120, c.StageVitalityCap[card.StageYouth], "rest comes from the casual preset")
}

func TestLoad_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("difficulty: impossible\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("LIFEDECK_DIFFICULTY", "hard")
	t.Setenv("LIFEDECK_STARTING_VITALITY", "70")

	c, err := FromEnv(Default())
	require.NoError(t, err)
	assert.Equal(t, "hard", c.Difficulty)
	assert.Equal(t, 70, c.StartingVitality)
}

func TestFromEnv_NilBase(t *testing.T) {
	c, err := FromEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, "normal", c.Difficulty)
	require.NoError(t, c.Validate())
}
