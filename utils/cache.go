package utils

import (
	"context"
	"log"
	"time"

	"slotwise/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient backs booking locks and expiry handles.
	CacheClient *redis.Client
	// QueueClient points at the asynq database and is only pinged for health.
	QueueClient *redis.Client
)

// InitRedis initializes the Redis clients used by the service.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
	QueueClient = newRedisClient(config.AppConfig.RedisQueueDB, "Queue")
}

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// RedisClients lists every initialized client for the health monitor.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{CacheClient, QueueClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
