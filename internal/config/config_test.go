package config

import (
	"testing"
	"time"

	"soccer_v1/predictor/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FOOTBALL_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.football-data.org/v4", cfg.FootballBaseURL)
	assert.Equal(t, 30*time.Second, cfg.FootballTimeout)
	assert.Equal(t, 6500*time.Millisecond, cfg.FootballMinInterval)
	assert.Equal(t, 3, cfg.FootballMaxRetries)
	assert.Equal(t, 365, cfg.DaysPast)
	assert.Equal(t, 30, cfg.DaysAhead)
	assert.Equal(t, "0 6 * * *", cfg.PredictionCron)
	assert.Equal(t, time.Hour, cfg.MatchesTTL())
	assert.Equal(t, 10*time.Minute, cfg.PredictionsTTL())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, engine.DefaultWeights(), cfg.Weights())
	assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	require.Len(t, cfg.Competitions, 9)
	assert.Equal(t, "Premier League", cfg.Competitions["England"])
	assert.Equal(t, "Campeonato Brasileiro Série A", cfg.Competitions["Brazil"])
	assert.Equal(t, "UEFA Champions League", cfg.Competitions["Europe"])
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("FOOTBALL_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FOOTBALL_API_KEY", "test-key")
	t.Setenv("COMPETITIONS", "Spain:Primera Division,England:Premier League")
	t.Setenv("WEIGHT_AWAY_WIN_MULTIPLIER", "3")
	t.Setenv("LOCAL_TIMEZONE", "Europe/London")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Weights().AwayWinMultiplier)
	assert.Equal(t, "Europe/London", cfg.Location().String())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []Competition{
		{Country: "England", Name: "Premier League"},
		{Country: "Spain", Name: "Primera Division"},
	}, cfg.CompetitionList())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			FootballAPIKey: "k",
			Competitions:   map[string]string{"England": "Premier League"},
			DaysPast:       365,
			DaysAhead:      30,
			WeightMaxScore: 100,
			LocalTimezone:  "UTC",
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no competitions", func(c *Config) { c.Competitions = nil }},
		{"zero days past", func(c *Config) { c.DaysPast = 0 }},
		{"negative retries", func(c *Config) { c.FootballMaxRetries = -1 }},
		{"zero max score", func(c *Config) { c.WeightMaxScore = 0 }},
		{"bad timezone", func(c *Config) { c.LocalTimezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
