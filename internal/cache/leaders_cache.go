package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fieldsim/gridiron/internal/engine"
	"github.com/fieldsim/gridiron/internal/models"
	"github.com/fieldsim/gridiron/pkg/logger"
)

// QueryCache handles Redis caching for the engine's on-demand query
// results (league leaders and rating summaries). Leaderboard queries cost
// O(players x games); callers hitting them repeatedly go through here.
type QueryCache struct {
	client     *redis.Client
	defaultTTL time.Duration
	keyPrefix  string
	log        *logrus.Entry
}

// Config contains configuration for the query cache.
type Config struct {
	RedisURL   string        `json:"redis_url"`
	DefaultTTL time.Duration `json:"default_ttl"`
	KeyPrefix  string        `json:"key_prefix"`
}

// NewQueryCache creates a query cache and verifies the Redis connection.
func NewQueryCache(cfg Config) (*QueryCache, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	qc := &QueryCache{
		client:     client,
		defaultTTL: cfg.DefaultTTL,
		keyPrefix:  cfg.KeyPrefix,
		log:        logger.WithComponent("query_cache"),
	}

	qc.log.WithFields(logrus.Fields{
		"default_ttl": cfg.DefaultTTL,
		"key_prefix":  cfg.KeyPrefix,
	}).Info("Query cache initialized")

	return qc, nil
}

// GetLeaders retrieves cached league leaders. A nil slice with nil error
// means cache miss.
func (qc *QueryCache) GetLeaders(ctx context.Context, category models.StatCategory, minGames int) ([]engine.LeaderEntry, error) {
	key := qc.leadersKey(category, minGames)

	result, err := qc.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			qc.log.WithField("key", key).Debug("Cache miss for league leaders")
			return nil, nil
		}
		qc.log.WithError(err).WithField("key", key).Error("Failed to get league leaders from cache")
		return nil, err
	}

	var leaders []engine.LeaderEntry
	if err := json.Unmarshal([]byte(result), &leaders); err != nil {
		qc.log.WithError(err).WithField("key", key).Error("Failed to unmarshal league leaders")
		return nil, err
	}

	qc.log.WithField("key", key).Debug("Cache hit for league leaders")
	return leaders, nil
}

// SetLeaders caches league leaders with the default TTL.
func (qc *QueryCache) SetLeaders(ctx context.Context, category models.StatCategory, minGames int, leaders []engine.LeaderEntry) error {
	key := qc.leadersKey(category, minGames)

	data, err := json.Marshal(leaders)
	if err != nil {
		qc.log.WithError(err).WithField("key", key).Error("Failed to marshal league leaders")
		return err
	}

	if err := qc.client.Set(ctx, key, data, qc.defaultTTL).Err(); err != nil {
		qc.log.WithError(err).WithField("key", key).Error("Failed to set league leaders in cache")
		return err
	}

	qc.log.WithFields(logrus.Fields{
		"key":        key,
		"ttl":        qc.defaultTTL,
		"size_bytes": len(data),
	}).Debug("Cached league leaders")
	return nil
}

// GetSummary retrieves a cached rating summary. A nil result with nil
// error means cache miss.
func (qc *QueryCache) GetSummary(ctx context.Context, playerKey string) (*engine.RatingSummary, error) {
	key := qc.summaryKey(playerKey)

	result, err := qc.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		qc.log.WithError(err).WithField("key", key).Error("Failed to get rating summary from cache")
		return nil, err
	}

	var summary engine.RatingSummary
	if err := json.Unmarshal([]byte(result), &summary); err != nil {
		qc.log.WithError(err).WithField("key", key).Error("Failed to unmarshal rating summary")
		return nil, err
	}
	return &summary, nil
}

// SetSummary caches a rating summary with the default TTL.
func (qc *QueryCache) SetSummary(ctx context.Context, playerKey string, summary *engine.RatingSummary) error {
	if summary == nil {
		return fmt.Errorf("summary cannot be nil")
	}
	key := qc.summaryKey(playerKey)

	data, err := json.Marshal(summary)
	if err != nil {
		qc.log.WithError(err).WithField("key", key).Error("Failed to marshal rating summary")
		return err
	}
	if err := qc.client.Set(ctx, key, data, qc.defaultTTL).Err(); err != nil {
		qc.log.WithError(err).WithField("key", key).Error("Failed to set rating summary in cache")
		return err
	}
	return nil
}

// InvalidatePlayer drops the cached summary for one player and every
// leaderboard key, since a recorded game can reorder any leaderboard.
func (qc *QueryCache) InvalidatePlayer(ctx context.Context, playerKey string) error {
	if err := qc.client.Del(ctx, qc.summaryKey(playerKey)).Err(); err != nil {
		qc.log.WithError(err).WithField("player_key", playerKey).Error("Failed to invalidate summary cache")
		return err
	}
	return qc.InvalidateLeaders(ctx)
}

// InvalidateLeaders drops every cached leaderboard.
func (qc *QueryCache) InvalidateLeaders(ctx context.Context) error {
	pattern := qc.keyPrefix + "leaders:*"
	iter := qc.client.Scan(ctx, 0, pattern, 0).Iterator()

	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	deleted, err := qc.client.Del(ctx, keys...).Result()
	if err != nil {
		qc.log.WithError(err).Error("Failed to invalidate leaderboard cache")
		return err
	}
	qc.log.WithField("keys_deleted", deleted).Debug("Leaderboard cache invalidated")
	return nil
}

// Close closes the Redis connection.
func (qc *QueryCache) Close() error {
	return qc.client.Close()
}

func (qc *QueryCache) leadersKey(category models.StatCategory, minGames int) string {
	return fmt.Sprintf("%sleaders:%s:min:%d", qc.keyPrefix, category, minGames)
}

func (qc *QueryCache) summaryKey(playerKey string) string {
	return fmt.Sprintf("%ssummary:%s", qc.keyPrefix, playerKey)
}
