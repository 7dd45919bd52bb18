// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"meetblock/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// QueueClient connects to the reminder queue's Redis DB. asynq holds its own
// connection pool; this client exists so health checks can reach the queue DB.
var QueueClient *redis.Client

// GetQueueClient returns the queue-DB client. No startup ping: a queue outage
// should surface in the health snapshot rather than abort boot.
func GetQueueClient() *redis.Client {
	if QueueClient == nil {
		QueueClient = redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		})
	}
	return QueueClient
}
