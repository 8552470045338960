// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"rideshare/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthCacheClient is the dedicated client for session storage.
	AuthCacheClient *redis.Client
)

// NewRedisClient connects to the configured Redis server on the given
// logical database and verifies the connection.
func NewRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}

// InitAuthCache initializes the Redis client for session storage.
func InitAuthCache() {
	client, err := NewRedisClient(config.AppConfig.RedisAuthDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
	AuthCacheClient = client
}

// GetAuthCacheClient returns the Redis client for session storage.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}
