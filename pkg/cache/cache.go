// Package cache is a thin Redis-backed cache used for read-heavy catalog
// views (highlights, single-product fetches). All helpers degrade to no-ops
// when Redis is unavailable so the catalog never depends on the cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/vastra/config"
)

// RDB is the shared client. Nil means Redis is unavailable and every helper
// acts as a miss. Tests swap in a miniredis-backed client directly.
var RDB *redis.Client

// opTimeout bounds each Redis round trip so a stalled cache cannot stall a
// product fetch.
const opTimeout = 250 * time.Millisecond

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// Connect initialises the Redis client and verifies the connection with a ping.
// Returns an error so the caller can react (log warning, fall back, or abort).
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	ctx, cancel := opCtx()
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		RDB = nil // mark as unavailable so Get/Set/Del no-op safely
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get unmarshals the cached value at key into dest.
// Returns true only on a hit that decodes cleanly.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	ctx, cancel := opCtx()
	defer cancel()

	val, err := RDB.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

// Set stores value in Redis under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ctx, cancel := opCtx()
	defer cancel()
	return RDB.Set(ctx, key, data, ttl).Err()
}

// Del removes one or more keys from Redis.
func Del(keys ...string) error {
	if RDB == nil || len(keys) == 0 {
		return nil
	}
	ctx, cancel := opCtx()
	defer cancel()
	return RDB.Del(ctx, keys...).Err()
}

// Forget is an alias for Del.
func Forget(key string) error {
	return Del(key)
}
