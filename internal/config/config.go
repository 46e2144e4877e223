package config

import (
	"fmt"
	"os"
	"sort"
	"time"
	_ "time/tzdata" // LOCAL_TIMEZONE must resolve in minimal containers

	"soccer_v1/predictor/internal/engine"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// football-data.org API
	FootballAPIKey      string        `envconfig:"FOOTBALL_API_KEY" required:"true"`
	FootballBaseURL     string        `envconfig:"FOOTBALL_BASE_URL" default:"https://api.football-data.org/v4"`
	FootballTimeout     time.Duration `envconfig:"FOOTBALL_TIMEOUT" default:"30s"`
	FootballMinInterval time.Duration `envconfig:"FOOTBALL_MIN_INTERVAL" default:"6500ms"` // free tier allows 10 calls/min
	FootballMaxRetries  int           `envconfig:"FOOTBALL_MAX_RETRIES" default:"3"`
	FootballRetryDelay  time.Duration `envconfig:"FOOTBALL_RETRY_DELAY" default:"1s"`

	// Competitions keyed by area (country) name
	Competitions map[string]string `envconfig:"COMPETITIONS" default:"Brazil:Campeonato Brasileiro Série A,England:Premier League,France:Ligue 1,Germany:Bundesliga,Italy:Serie A,Netherlands:Eredivisie,Portugal:Primeira Liga,Spain:Primera Division,Europe:UEFA Champions League"`

	// Match windows
	DaysPast  int `envconfig:"DAYS_PAST" default:"365"`
	DaysAhead int `envconfig:"DAYS_AHEAD" default:"30"`

	// Display
	LocalTimezone string `envconfig:"LOCAL_TIMEZONE" default:"America/Sao_Paulo"`

	// Prediction
	PredictWorkers int `envconfig:"PREDICT_WORKERS" default:"4"`

	WeightMaxScore           float64 `envconfig:"WEIGHT_MAX_SCORE" default:"100"`
	WeightWinValue           int     `envconfig:"WEIGHT_WIN_VALUE" default:"2"`
	WeightDrawValue          int     `envconfig:"WEIGHT_DRAW_VALUE" default:"1"`
	WeightLoseValue          int     `envconfig:"WEIGHT_LOSE_VALUE" default:"-1"`
	WeightAwayWinMultiplier  int     `envconfig:"WEIGHT_AWAY_WIN_MULTIPLIER" default:"2"`
	WeightHomeLossMultiplier int     `envconfig:"WEIGHT_HOME_LOSS_MULTIPLIER" default:"2"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Caching TTL (in seconds)
	CacheEnabled        bool `envconfig:"CACHE_ENABLED" default:"true"`
	CacheTTLMatches     int  `envconfig:"CACHE_TTL_MATCHES" default:"3600"`    // 1 hour
	CacheTTLPredictions int  `envconfig:"CACHE_TTL_PREDICTIONS" default:"600"` // 10 minutes

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Scheduler
	EnableScheduler   bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	InitialRunEnabled bool   `envconfig:"INITIAL_RUN_ENABLED" default:"true"`
	PredictionCron    string `envconfig:"PREDICTION_CRON" default:"0 6 * * *"`

	// Monitoring
	MetricsPort int `envconfig:"METRICS_PORT" default:"9090"`
}

// Competition is one league to predict, looked up by area and name
type Competition struct {
	Country string
	Name    string
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.FootballAPIKey == "" {
		return fmt.Errorf("FOOTBALL_API_KEY is required")
	}

	if len(c.Competitions) == 0 {
		return fmt.Errorf("COMPETITIONS must name at least one competition")
	}

	if c.DaysPast <= 0 || c.DaysAhead <= 0 {
		return fmt.Errorf("DAYS_PAST and DAYS_AHEAD must be positive")
	}

	if c.FootballMaxRetries < 0 {
		return fmt.Errorf("FOOTBALL_MAX_RETRIES must not be negative")
	}

	if c.WeightMaxScore <= 0 {
		return fmt.Errorf("WEIGHT_MAX_SCORE must be positive")
	}

	if _, err := time.LoadLocation(c.LocalTimezone); err != nil {
		return fmt.Errorf("LOCAL_TIMEZONE %q: %w", c.LocalTimezone, err)
	}

	return nil
}

// Weights returns the engine weights table
func (c *Config) Weights() engine.Weights {
	return engine.Weights{
		MaxScore:           c.WeightMaxScore,
		WinValue:           c.WeightWinValue,
		DrawValue:          c.WeightDrawValue,
		LoseValue:          c.WeightLoseValue,
		AwayWinMultiplier:  c.WeightAwayWinMultiplier,
		HomeLossMultiplier: c.WeightHomeLossMultiplier,
	}
}

// CompetitionList returns the configured competitions ordered by country
func (c *Config) CompetitionList() []Competition {
	out := make([]Competition, 0, len(c.Competitions))
	for country, name := range c.Competitions {
		out = append(out, Competition{Country: country, Name: name})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Country < out[j].Country
	})
	return out
}

// Location returns the display timezone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.LocalTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// MatchesTTL returns the match cache TTL
func (c *Config) MatchesTTL() time.Duration {
	return time.Duration(c.CacheTTLMatches) * time.Second
}

// PredictionsTTL returns the prediction cache TTL
func (c *Config) PredictionsTTL() time.Duration {
	return time.Duration(c.CacheTTLPredictions) * time.Second
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
