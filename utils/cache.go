package utils

import (
	"context"
	"log"
	"time"

	"shineops/config"

	"github.com/go-redis/redis/v8"
)

// FunnelCacheClient is the dedicated client for booking funnel sessions.
var FunnelCacheClient *redis.Client

// InitFunnelCache initializes the Redis client used for funnel session storage.
func InitFunnelCache() {
	FunnelCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := FunnelCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Funnel Cache): %v", err)
	}
}

// GetFunnelCacheClient returns the funnel session cache client.
func GetFunnelCacheClient() *redis.Client {
	if FunnelCacheClient == nil {
		InitFunnelCache()
	}
	return FunnelCacheClient
}
