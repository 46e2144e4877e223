package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"soccer_v1/predictor/internal/cache"
	"soccer_v1/predictor/internal/client"
	"soccer_v1/predictor/internal/config"
	"soccer_v1/predictor/internal/engine"
	"soccer_v1/predictor/internal/metrics"
	"soccer_v1/predictor/internal/models"

	"github.com/rs/zerolog/log"
)

// ErrNoFixtures and ErrNoHistory mark competitions that are skipped
var (
	ErrNoFixtures = errors.New("no scheduled matches")
	ErrNoHistory  = errors.New("no finished matches")
)

// Source retrieves competitions and matches from the data provider
type Source interface {
	FindCompetition(ctx context.Context, country, name string) (models.Competition, error)
	FetchMatches(ctx context.Context, competitionID int, from, to time.Time, statuses string) ([]engine.Match, error)
}

// Cache stores fetched matches and the latest predictions
type Cache interface {
	GetMatches(ctx context.Context, key string) ([]engine.Match, bool, error)
	SetMatches(ctx context.Context, key string, matches []engine.Match, ttl time.Duration) error
	GetPredictions(ctx context.Context, competition string) ([]engine.Prediction, bool, error)
	SetPredictions(ctx context.Context, competition string, preds []engine.Prediction, ttl time.Duration) error
}

// Report is the result of one competition run
type Report struct {
	Country       string              `json:"country"`
	Competition   string              `json:"competition"`
	CompetitionID int                 `json:"competition_id"`
	History       int                 `json:"history"`
	Fixtures      []engine.Match      `json:"-"`
	Predictions   []engine.Prediction `json:"predictions"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// Service runs the fetch, predict and store pipeline per competition
type Service struct {
	cfg       *config.Config
	source    Source
	cache     Cache
	predictor *engine.Predictor
	now       func() time.Time

	mu     sync.RWMutex
	latest map[string]*Report
}

// New creates a Service. cache may be nil.
func New(cfg *config.Config, source Source, c Cache, predictor *engine.Predictor) *Service {
	return &Service{
		cfg:       cfg,
		source:    source,
		cache:     c,
		predictor: predictor,
		now:       time.Now,
		latest:    make(map[string]*Report),
	}
}

// RunCompetition resolves the competition, fetches finished history and
// upcoming fixtures, and predicts every fixture
func (s *Service) RunCompetition(ctx context.Context, comp config.Competition) (*Report, error) {
	start := time.Now()
	logger := log.With().Str("country", comp.Country).Str("competition", comp.Name).Logger()

	report, err := s.runCompetition(ctx, comp)
	duration := time.Since(start).Seconds()

	switch {
	case errors.Is(err, ErrNoFixtures), errors.Is(err, ErrNoHistory):
		metrics.RecordPredictionRun(comp.Name, "skipped", duration)
		logger.Info().Err(err).Msg("Competition skipped")
		return nil, err
	case err != nil:
		metrics.RecordPredictionRun(comp.Name, "failed", duration)
		metrics.RecordError("service", "run_competition")
		return nil, err
	}

	metrics.RecordPredictionRun(comp.Name, "success", duration)
	metrics.UpdateRunStats(comp.Name, report.History, len(report.Predictions))
	for _, p := range report.Predictions {
		metrics.RecordOutcome(p.Outcome.String())
	}

	s.mu.Lock()
	s.latest[comp.Name] = report
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SetPredictions(ctx, comp.Name, report.Predictions, s.cfg.PredictionsTTL()); err != nil {
			metrics.RecordError("cache", "set_predictions")
			logger.Warn().Err(err).Msg("Failed to cache predictions")
		}
	}

	logger.Info().
		Int("history", report.History).
		Int("predictions", len(report.Predictions)).
		Dur("duration", time.Since(start)).
		Msg("Competition predicted")

	return report, nil
}

func (s *Service) runCompetition(ctx context.Context, comp config.Competition) (*Report, error) {
	found, err := s.source.FindCompetition(ctx, comp.Country, comp.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve competition: %w", err)
	}

	today := s.now().In(s.cfg.Location())
	fixtures, err := s.matches(ctx, found.ID, today, today.AddDate(0, 0, s.cfg.DaysAhead), client.UpcomingStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheduled matches: %w", err)
	}
	fixtures = filter(fixtures, engine.Match.Upcoming)
	if len(fixtures) == 0 {
		return nil, ErrNoFixtures
	}

	history, err := s.matches(ctx, found.ID, today.AddDate(0, 0, -s.cfg.DaysPast), today, client.FinishedStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch finished matches: %w", err)
	}
	history = filter(history, engine.Match.Played)
	if len(history) == 0 {
		return nil, ErrNoHistory
	}

	return &Report{
		Country:       comp.Country,
		Competition:   comp.Name,
		CompetitionID: found.ID,
		History:       len(history),
		Fixtures:      fixtures,
		Predictions:   s.predictor.PredictAll(history, fixtures),
		GeneratedAt:   s.now().UTC(),
	}, nil
}

// matches reads through the cache when one is configured. Cache failures
// fall back to the source.
func (s *Service) matches(ctx context.Context, competitionID int, from, to time.Time, statuses string) ([]engine.Match, error) {
	if s.cache == nil {
		return s.source.FetchMatches(ctx, competitionID, from, to, statuses)
	}

	key := cache.MatchesKey(competitionID, statuses, from, to)
	cached, ok, err := s.cache.GetMatches(ctx, key)
	if err != nil {
		metrics.RecordError("cache", "get_matches")
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed, fetching from API")
	}
	if ok {
		return cached, nil
	}

	fetched, err := s.source.FetchMatches(ctx, competitionID, from, to, statuses)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetMatches(ctx, key, fetched, s.cfg.MatchesTTL()); err != nil {
		metrics.RecordError("cache", "set_matches")
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache matches")
	}
	return fetched, nil
}

// RunAll runs every configured competition in country order. Failures are
// logged and do not stop the remaining competitions.
func (s *Service) RunAll(ctx context.Context) []*Report {
	comps := s.cfg.CompetitionList()
	reports := make([]*Report, 0, len(comps))

	for _, comp := range comps {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("Run cancelled")
			break
		}

		report, err := s.RunCompetition(ctx, comp)
		if err != nil {
			if !errors.Is(err, ErrNoFixtures) && !errors.Is(err, ErrNoHistory) {
				log.Error().
					Err(err).
					Str("country", comp.Country).
					Str("competition", comp.Name).
					Msg("Competition run failed")
			}
			continue
		}
		reports = append(reports, report)
	}

	log.Info().
		Int("competitions", len(comps)).
		Int("predicted", len(reports)).
		Msg("Prediction run complete")

	return reports
}

// Latest returns the predictions of the most recent successful run for
// competition, from memory first and then from the cache
func (s *Service) Latest(ctx context.Context, competition string) ([]engine.Prediction, bool, error) {
	s.mu.RLock()
	report, ok := s.latest[competition]
	s.mu.RUnlock()
	if ok {
		return report.Predictions, true, nil
	}

	if s.cache == nil {
		return nil, false, nil
	}
	return s.cache.GetPredictions(ctx, competition)
}

func filter(matches []engine.Match, keep func(engine.Match) bool) []engine.Match {
	out := matches[:0:0]
	for _, m := range matches {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
