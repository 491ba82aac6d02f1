package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // redis.Nil comparison
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb redis.Cmdable, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal(val, dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb redis.Cmdable, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb redis.Cmdable, keys ...string) error {
	return rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// GetGeneration reads a generation counter; a missing counter is generation 0
func GetGeneration(ctx context.Context, rdb redis.Cmdable, key string) (int64, error) {
	gen, err := rdb.Get(ctx, key).Int64() // Counter written by BumpGeneration
	if errors.Is(err, redis.Nil) {
		return 0, nil // Nothing invalidated yet
	}
	return gen, err
}

// BumpGeneration advances a generation counter and returns the new value
func BumpGeneration(ctx context.Context, rdb redis.Cmdable, key string) (int64, error) {
	return rdb.Incr(ctx, key).Result() // Atomic on the Redis side
}
