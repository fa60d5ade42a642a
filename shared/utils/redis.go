package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/sirupsen/logrus"
)

var (
	RedisClient *redis.Client

	ErrCacheMiss        = errors.New("key not found")
	ErrCacheUnavailable = errors.New("redis client not initialized")
)

// InitRedis initializes the Redis client
func InitRedis(ctx context.Context, cfg config.RedisConfig) error {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}

	RedisClient = client
	logrus.WithField("addr", cfg.Addr()).Info("Connected to Redis")
	return nil
}

// CacheSet stores a value in Redis with expiration
func CacheSet(ctx context.Context, key string, value string, expiration time.Duration) error {
	if RedisClient == nil {
		return ErrCacheUnavailable
	}
	return RedisClient.Set(ctx, key, value, expiration).Err()
}

// CacheGet retrieves a value from Redis
func CacheGet(ctx context.Context, key string) (string, error) {
	if RedisClient == nil {
		return "", ErrCacheUnavailable
	}
	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	return val, err
}

// CacheSetJSON marshals value and stores it under key
func CacheSetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return CacheSet(ctx, key, string(data), expiration)
}

// CacheGetJSON loads key into dest. Misses return ErrCacheMiss.
func CacheGetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := CacheGet(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// CacheDelete removes keys from Redis
func CacheDelete(ctx context.Context, keys ...string) error {
	if RedisClient == nil {
		return ErrCacheUnavailable
	}
	return RedisClient.Del(ctx, keys...).Err()
}

// CacheDeletePattern removes every key matching pattern
func CacheDeletePattern(ctx context.Context, pattern string) error {
	if RedisClient == nil {
		return ErrCacheUnavailable
	}

	iter := RedisClient.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return RedisClient.Del(ctx, keys...).Err()
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// Token revocation

// TokenHash creates a SHA256 hash of the access token for use as Redis key
func TokenHash(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func revokedKey(token string) string {
	return "token:revoked:" + TokenHash(token)
}

// RevokeToken denylists a token until it would have expired anyway
func RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return CacheSet(ctx, revokedKey(token), "1", ttl)
}

// IsTokenRevoked reports whether a token was revoked by logout.
// A missing Redis means no token can have been revoked.
func IsTokenRevoked(ctx context.Context, token string) bool {
	_, err := CacheGet(ctx, revokedKey(token))
	return err == nil
}
