package cron

import (
	"context"
	"time"

	"slotwise/config"
	"slotwise/services/expiry"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt points asynq at the queue database.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// StartExpiryWorker runs the asynq server that fires armed expiry tasks until
// ctx ends. It returns once the server is started or has given up.
func StartExpiryWorker(ctx context.Context, expirer *expiry.Expirer, logger *zap.Logger) error {
	sugar := logger.Sugar()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				expiry.QueueExpiry: 1,
			},
			Logger:   sugar,
			LogLevel: asynq.WarnLevel,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(expiry.TypeExpireReservation, expirer.HandleExpireTask)

	go monitorRedisConnection(ctx, logger)

	sugar.Info("[ExpiryWorker] Starting async worker...")
	const maxAttempts = 5
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = srv.Start(mux); err == nil {
			break
		}
		sugar.Warnf("[ExpiryWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
		if attempts == maxAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempts*2) * time.Second):
		}
	}

	go func() {
		<-ctx.Done()
		sugar.Info("[ExpiryWorker] Shutting down...")
		srv.Shutdown()
	}()
	return nil
}

// monitorRedisConnection pings the queue database to surface outages in the logs.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("[ExpiryWorker] Redis connection lost", zap.Error(err))
			}
		}
	}
}
