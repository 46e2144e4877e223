// Command predict runs one prediction pass over the configured competitions
// and prints the tables to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"soccer_v1/predictor/internal/cache"
	"soccer_v1/predictor/internal/client"
	"soccer_v1/predictor/internal/config"
	"soccer_v1/predictor/internal/engine"
	"soccer_v1/predictor/internal/report"
	"soccer_v1/predictor/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	only := flag.String("competition", "", "run a single competition, as Country:Name")
	showFixtures := flag.Bool("fixtures", false, "print the upcoming fixtures before the predictions")
	showTeams := flag.Bool("teams", false, "print each competition's teams")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := config.MustLoad()
	// Scheduled production runs ship logs as JSON
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiClient := client.NewClient(
		cfg.FootballBaseURL,
		cfg.FootballAPIKey,
		cfg.FootballTimeout,
		client.WithMinInterval(cfg.FootballMinInterval),
		client.WithRetryPolicy(client.RetryPolicy{
			MaxRetries: cfg.FootballMaxRetries,
			BaseDelay:  cfg.FootballRetryDelay,
			MaxDelay:   time.Minute,
		}),
	)

	var matchCache service.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Debug().Err(err).Msg("Redis unavailable, running without cache")
		} else {
			defer redisCache.Close()
			matchCache = redisCache
		}
	}

	svc := service.New(cfg, apiClient, matchCache, engine.New(cfg.Weights(), engine.WithWorkers(cfg.PredictWorkers)))

	comps := cfg.CompetitionList()
	if *only != "" {
		comp, err := parseCompetition(*only)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		comps = []config.Competition{comp}
	}

	loc := cfg.Location()
	predicted := 0
	for _, comp := range comps {
		if ctx.Err() != nil {
			break
		}

		rep, err := svc.RunCompetition(ctx, comp)
		if err != nil {
			fmt.Fprintf(os.Stdout, "\n  (!) %s, %s: %v\n", comp.Country, comp.Name, err)
			continue
		}
		predicted++

		if *showTeams {
			teams, err := apiClient.FetchCompetitionTeams(ctx, rep.CompetitionID)
			if err != nil {
				log.Warn().Err(err).Str("competition", comp.Name).Msg("Failed to fetch teams")
			} else if err := report.PrintTeams(os.Stdout, teams); err != nil {
				log.Error().Err(err).Msg("Failed to print teams")
			}
		}

		if *showFixtures {
			if err := report.PrintMatches(os.Stdout, rep.Fixtures, loc); err != nil {
				log.Error().Err(err).Msg("Failed to print fixtures")
			}
		}

		title := fmt.Sprintf("%s, %s", comp.Country, comp.Name)
		if err := report.Print(os.Stdout, title, rep.Predictions, loc); err != nil {
			log.Error().Err(err).Msg("Failed to print predictions")
		}
	}

	log.Info().Int("competitions", len(comps)).Int("predicted", predicted).Msg("Done")
}

// parseCompetition parses "Country:Competition Name"
func parseCompetition(s string) (config.Competition, error) {
	country, name, ok := strings.Cut(s, ":")
	country, name = strings.TrimSpace(country), strings.TrimSpace(name)
	if !ok || country == "" || name == "" {
		return config.Competition{}, fmt.Errorf("invalid -competition %q, want Country:Name", s)
	}
	return config.Competition{Country: country, Name: name}, nil
}
