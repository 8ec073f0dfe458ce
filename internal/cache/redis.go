// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// opTimeout bounds every cache round trip. The cache is an optimization;
// a slow answer is worse than a miss.
const opTimeout = 2 * time.Second

// Redis is a Cache backed by a shared Redis, for fleets where several
// replicas front the same mapping store. IDs are stored as decimal strings
// so entries stay readable from redis-cli.
type Redis struct {
	client *redis.Client
	logger zerolog.Logger
}

// RedisOptions configures the connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis connects to the server and verifies it answers a ping before
// returning.
func NewRedis(opts RedisOptions, logger zerolog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info().
		Str("addr", opts.Addr).
		Int("db", opts.DB).
		Msg("connected to Redis cache")

	return &Redis{client: client, logger: logger}, nil
}

// Get returns the ID cached under key. Redis errors degrade to a miss so
// the registry falls through to its store.
func (r *Redis) Get(key string) (uint16, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("redis get failed")
		return 0, false
	}

	id, err := strconv.ParseUint(val, 10, 16)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("cached value is not a property id")
		return 0, false
	}
	return uint16(id), true
}

// Set caches id under key for ttl. Write failures are logged and dropped;
// the next lookup hits the store instead.
func (r *Redis) Set(key string, id uint16, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val := strconv.FormatUint(uint64(id), 10)
	if err := r.client.Set(ctx, key, val, ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

// Close closes the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

// HealthCheck reports whether the server currently answers. The daemon
// registers this with the health manager; a dead cache degrades readiness
// but does not fail it.
func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
