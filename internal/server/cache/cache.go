// Package cache кэширует ответы bbox запросов маркеров на сервере.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iudanet/geocheckin/pkg/api"
)

// MarkerCache хранит ответы запросов маркеров по ключу запроса.
// Ошибки кэша никогда не ломают запрос: промах и есть деградация.
type MarkerCache interface {
	Get(ctx context.Context, key string) (*api.MarkersResponse, bool)
	Set(ctx context.Context, key string, resp *api.MarkersResponse)
	// Invalidate делает недоступными все ранее сохраненные ответы
	Invalidate(ctx context.Context)
}

// Noop cache used when Redis is not configured
type Noop struct{}

func (Noop) Get(context.Context, string) (*api.MarkersResponse, bool) { return nil, false }
func (Noop) Set(context.Context, string, *api.MarkersResponse)        {}
func (Noop) Invalidate(context.Context)                               {}

const generationKey = "markers:generation"

// Redis stores marker responses in Redis. Invalidation bumps a generation
// counter that is part of every key, so stale entries simply age out.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewRedisClient создает клиент Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

// NewRedis creates a Redis backed marker cache
func NewRedis(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Redis {
	return &Redis{client: client, ttl: ttl, logger: logger}
}

func (r *Redis) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Key builds the storage key for a query key at a generation
func Key(generation int64, key string) string {
	return "markers:" + strconv.FormatInt(generation, 10) + ":" + key
}

// Get returns a cached response
func (r *Redis) Get(ctx context.Context, key string) (*api.MarkersResponse, bool) {
	gen, err := r.generation(ctx)
	if err != nil {
		r.logger.Warn("Marker cache unavailable", "error", err)
		return nil, false
	}

	val, err := r.client.Get(ctx, Key(gen, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("Marker cache read failed", "error", err)
		}
		return nil, false
	}

	var resp api.MarkersResponse
	if err := json.Unmarshal(val, &resp); err != nil {
		r.logger.Warn("Corrupted marker cache entry", "key", key, "error", err)
		return nil, false
	}
	return &resp, true
}

// Set stores a response for the cache TTL
func (r *Redis) Set(ctx context.Context, key string, resp *api.MarkersResponse) {
	gen, err := r.generation(ctx)
	if err != nil {
		r.logger.Warn("Marker cache unavailable", "error", err)
		return
	}

	val, err := json.Marshal(resp)
	if err != nil {
		r.logger.Error("Failed to encode markers for cache", "error", err)
		return
	}
	if err := r.client.Set(ctx, Key(gen, key), val, r.ttl).Err(); err != nil {
		r.logger.Warn("Marker cache write failed", "error", err)
	}
}

// Invalidate bumps the generation counter
func (r *Redis) Invalidate(ctx context.Context) {
	if err := r.client.Incr(ctx, generationKey).Err(); err != nil {
		r.logger.Warn("Marker cache invalidation failed", "error", err)
	}
}
