package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"soccer_v1/predictor/internal/cache"
	"soccer_v1/predictor/internal/client"
	"soccer_v1/predictor/internal/config"
	"soccer_v1/predictor/internal/engine"
	"soccer_v1/predictor/internal/metrics"
	"soccer_v1/predictor/internal/scheduler"
	"soccer_v1/predictor/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.MustLoad()
	setupLogger(cfg)

	log.Info().Msg("Starting football prediction worker")
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Int("competitions", len(cfg.Competitions)).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	apiClient := newAPIClient(cfg)
	log.Info().Str("base_url", cfg.FootballBaseURL).Msg("football-data.org client initialized")

	var matchCache service.Cache
	var health healthChecker
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		} else {
			defer redisCache.Close()
			matchCache = redisCache
			health = redisCache
			log.Info().Msg("Redis cache connected")
		}
	}

	predictor := engine.New(cfg.Weights(), engine.WithWorkers(cfg.PredictWorkers))
	svc := service.New(cfg, apiClient, matchCache, predictor)

	srv := startHTTPServer(cfg.MetricsPort, svc, health)

	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(time.Since(startTime).Seconds())
			case <-ctx.Done():
				return
			}
		}
	}()

	sched := scheduler.NewScheduler(cfg.PredictionCron, svc)

	if cfg.EnableScheduler {
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	if cfg.InitialRunEnabled {
		log.Info().Msg("Running initial predictions...")
		sched.RunAsync(ctx)
	}

	<-ctx.Done()

	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger(cfg *config.Config) {
	// Pretty console logging in development
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		parsedLevel, err := zerolog.ParseLevel(cfg.LogLevel)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

func newAPIClient(cfg *config.Config) *client.Client {
	return client.NewClient(
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
}

// startHTTPServer serves metrics, health and the latest predictions.
// health may be nil when running without a cache.
func startHTTPServer(port int, svc *service.Service, health healthChecker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler(health))
	mux.HandleFunc("/predictions", predictionsHandler(svc))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Int("port", port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	return srv
}

// healthChecker is implemented by the Redis cache
type healthChecker interface {
	Health(ctx context.Context) error
}

func healthHandler(cache healthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if cache != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := cache.Health(ctx); err != nil {
				log.Warn().Err(err).Msg("Redis health check failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unhealthy","redis":"unreachable"}`))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}
}

// latestSource is the part of the service the predictions endpoint reads
type latestSource interface {
	Latest(ctx context.Context, competition string) ([]engine.Prediction, bool, error)
}

func predictionsHandler(svc latestSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		competition := r.URL.Query().Get("competition")
		if competition == "" {
			http.Error(w, `{"error":"competition is required"}`, http.StatusBadRequest)
			return
		}

		preds, ok, err := svc.Latest(r.Context(), competition)
		if err != nil {
			metrics.RecordError("http", "latest_predictions")
			log.Error().Err(err).Str("competition", competition).Msg("Failed to read predictions")
			http.Error(w, `{"error":"failed to read predictions"}`, http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, `{"error":"no predictions for competition"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"competition": competition,
			"predictions": preds,
		}); err != nil {
			log.Warn().Err(err).Msg("Failed to encode predictions")
		}
	}
}
