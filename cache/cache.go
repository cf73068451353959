// Package cache memoizes provider responses in Redis with a fixed TTL.
// A cache-layer failure is never fatal: reads that fail behave as misses
// and failed writes are logged and dropped, so the pipeline always falls
// through to a live fetch.
package cache

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"weekender/config"
)

// Store is the key/value contract consumed by the fetch orchestrator.
// Get returns (value, true) on a hit and ("", false) on a miss or any
// backend problem. Set is best-effort.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Key builds a deterministic cache key from a prefix, a city, and an
// optional date range. City is normalized so hits are insensitive to
// incidental input formatting.
func Key(prefix, city string, dates ...string) string {
	parts := []string{config.CacheKeyNamespace, prefix, config.NormalizeCity(city)}
	for _, d := range dates {
		if d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, ":")
}

// RedisStore backs Store with Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds connection settings for NewRedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and returns a store with the standard
// TTL. A failed ping is logged but not fatal; every later operation will
// simply miss until the backend comes back.
func NewRedisStore(cfg RedisConfig) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[Cache] Warning: Redis not reachable at %s: %v (treating all reads as misses)", cfg.Addr, err)
	} else {
		log.Printf("[Cache] Redis connected (%s)", cfg.Addr)
	}

	return &RedisStore{client: rdb, ttl: config.CacheTTL}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		log.Printf("[Cache] Error reading %s: %v", key, err)
		return "", false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key, value string) {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		log.Printf("[Cache] Error writing %s: %v", key, err)
	}
}

// Clear removes cached entries. With a city it clears only that city's
// keys, otherwise the whole namespace. Returns the number of keys removed.
func (s *RedisStore) Clear(ctx context.Context, city string) (int, error) {
	pattern := config.CacheKeyNamespace + ":*"
	if city != "" {
		pattern = config.CacheKeyNamespace + ":*:" + config.NormalizeCity(city) + "*"
	}

	var deleted int
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("[Cache] Error deleting %s: %v", iter.Val(), err)
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}
	return deleted, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
