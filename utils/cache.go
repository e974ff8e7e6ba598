// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"rentwatch/config"

	"github.com/go-redis/redis/v8"
)

// QueueClient talks to the Redis database backing the job queue.
var QueueClient *redis.Client

// InitRedis connects the job-queue Redis client.
func InitRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (queue): %w", err)
	}
	QueueClient = client
	return nil
}
