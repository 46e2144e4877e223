package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"soccer_v1/predictor/internal/engine"
	"soccer_v1/predictor/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "soccer:"

// Config holds Redis connection settings
type Config struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache stores fetched match lists and the latest prediction set per
// competition as JSON blobs with a TTL.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and pings it
func NewRedisCache(cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr).
		Int("db", cfg.DB).
		Msg("Successfully connected to redis")

	return NewFromClient(client), nil
}

// NewFromClient wraps an existing client
func NewFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Close closes the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Health pings Redis
func (c *RedisCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// MatchesKey builds the key for a competition's match list over a date window
func MatchesKey(competitionID int, statuses string, from, to time.Time) string {
	return fmt.Sprintf("%smatches:%d:%s:%s:%s",
		keyPrefix,
		competitionID,
		strings.ToLower(strings.ReplaceAll(statuses, ",", "+")),
		from.Format("20060102"),
		to.Format("20060102"),
	)
}

// PredictionsKey builds the key for a competition's latest predictions
func PredictionsKey(competition string) string {
	return keyPrefix + "predictions:" + strings.ToLower(strings.ReplaceAll(competition, " ", "_"))
}

// GetMatches returns the cached matches under key. A miss returns (nil, false, nil).
func (c *RedisCache) GetMatches(ctx context.Context, key string) ([]engine.Match, bool, error) {
	var out []engine.Match
	ok, err := c.getJSON(ctx, "matches", key, &out)
	if err != nil || !ok {
		return nil, ok, err
	}
	return out, true, nil
}

// SetMatches stores matches under key
func (c *RedisCache) SetMatches(ctx context.Context, key string, matches []engine.Match, ttl time.Duration) error {
	return c.setJSON(ctx, key, matches, ttl)
}

// GetPredictions returns the latest predictions stored for competition.
// A miss returns (nil, false, nil).
func (c *RedisCache) GetPredictions(ctx context.Context, competition string) ([]engine.Prediction, bool, error) {
	var out []engine.Prediction
	ok, err := c.getJSON(ctx, "predictions", PredictionsKey(competition), &out)
	if err != nil || !ok {
		return nil, ok, err
	}
	return out, true, nil
}

// SetPredictions stores the predictions for competition
func (c *RedisCache) SetPredictions(ctx context.Context, competition string, preds []engine.Prediction, ttl time.Duration) error {
	return c.setJSON(ctx, PredictionsKey(competition), preds, ttl)
}

func (c *RedisCache) getJSON(ctx context.Context, kind, key string, v any) (bool, error) {
	start := time.Now()
	b, err := c.client.Get(ctx, key).Bytes()
	metrics.RecordCacheOperation("get", time.Since(start).Seconds())

	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheMiss(kind)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	metrics.RecordCacheHit(kind)
	return true, nil
}

func (c *RedisCache) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	start := time.Now()
	err = c.client.Set(ctx, key, b, ttl).Err()
	metrics.RecordCacheOperation("set", time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
