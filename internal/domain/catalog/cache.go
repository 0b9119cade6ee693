package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/topupstore/topup-api/internal/pkg/logger"
	"github.com/topupstore/topup-api/internal/pkg/metrics"
)

const (
	gamesKey          = "catalog:games"
	packagesKeyPrefix = "catalog:packages:"
)

// Cache stores catalog listings in Redis. A nil client turns every call into a miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func packagesKey(gameID uuid.UUID) string {
	return packagesKeyPrefix + gameID.String()
}

func (c *Cache) Games(ctx context.Context) ([]Game, bool) {
	var games []Game
	return games, c.get(ctx, gamesKey, &games)
}

func (c *Cache) SetGames(ctx context.Context, games []Game) {
	c.set(ctx, gamesKey, games)
}

func (c *Cache) Packages(ctx context.Context, gameID uuid.UUID) ([]Package, bool) {
	var packages []Package
	return packages, c.get(ctx, packagesKey(gameID), &packages)
}

func (c *Cache) SetPackages(ctx context.Context, gameID uuid.UUID, packages []Package) {
	c.set(ctx, packagesKey(gameID), packages)
}

// Invalidate drops every cached listing
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	keys := []string{gamesKey}
	iter := c.client.Scan(ctx, 0, packagesKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("catalog cache scan failed")
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("catalog cache invalidate failed")
	}
}

func (c *Cache) get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheLookup("miss")
		return false
	}
	if err != nil {
		metrics.RecordCacheLookup("error")
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.RecordCacheLookup("error")
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("catalog cache entry corrupt")
		return false
	}

	metrics.RecordCacheLookup("hit")
	return true
}

func (c *Cache) set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("catalog cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}
