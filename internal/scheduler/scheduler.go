package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"soccer_v1/predictor/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Runner runs one prediction pass over every configured competition
type Runner interface {
	RunAll(ctx context.Context) []*service.Report
}

// Scheduler runs the prediction pipeline on a cron schedule. A run that
// fires while the previous one is still going is skipped.
type Scheduler struct {
	spec    string
	runner  Runner
	cron    *cron.Cron
	running atomic.Bool
	wg      sync.WaitGroup
}

// NewScheduler creates a new scheduler instance
func NewScheduler(spec string, runner Runner) *Scheduler {
	return &Scheduler{
		spec:   spec,
		runner: runner,
		cron:   cron.New(),
	}
}

// Start registers the prediction job and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.spec, func() {
		log.Info().Msg("Running scheduled predictions...")
		s.RunNow(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule predictions: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.spec).
		Msg("Prediction run scheduled")

	return nil
}

// RunNow runs the pipeline synchronously unless a run is already in
// progress. It reports whether the run happened.
func (s *Scheduler) RunNow(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		log.Warn().Msg("Previous prediction run still in progress, skipping")
		return false
	}
	defer s.running.Store(false)

	s.wg.Add(1)
	defer s.wg.Done()

	start := time.Now()
	reports := s.runner.RunAll(ctx)

	log.Info().
		Int("competitions", len(reports)).
		Dur("duration", time.Since(start)).
		Msg("Prediction run finished")
	return true
}

// RunAsync starts RunNow in the background. Stop waits for it even when
// called before the goroutine is scheduled.
func (s *Scheduler) RunAsync(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunNow(ctx)
	}()
}

// Stop stops the cron loop and waits for an in-flight run
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	s.wg.Wait()

	log.Info().Msg("Scheduler stopped")
}
