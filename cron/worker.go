package cron

import (
	"context"
	"fmt"
	"time"

	"rideshare/config"
	notificationRepo "rideshare/database/repository/notification"
	"rideshare/services/tasks"
	"rideshare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection for the outbound queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisOutboxQueueDB,
	}
}

// OutboundWorker drains the outbound queue into the outbound message log.
type OutboundWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewOutboundWorker(repo notificationRepo.NotificationRepository, logger *zap.Logger) *OutboundWorker {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeDeliverOutbound, HandleOutboundTask(repo, logger))
	return &OutboundWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying a failed start with a
// growing delay, and watches the queue's Redis until ctx is done.
func (w *OutboundWorker) Start(ctx context.Context) {
	go monitorRedisConnection(ctx, w.logger)

	go func() {
		w.logger.Info("Starting outbound worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("Outbound worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("Outbound worker gave up; outbound messages stay queued")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
}

func (w *OutboundWorker) Shutdown() {
	w.srv.Shutdown()
}

// HandleOutboundTask appends the queued message to the outbound log.
func HandleOutboundTask(repo notificationRepo.NotificationRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		msg, err := tasks.ParseOutboundTask(task)
		if err != nil {
			logger.Error("Invalid outbound payload", zap.Error(err))
			return fmt.Errorf("invalid outbound payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := repo.AppendOutbound(ctx, msg); err != nil {
			logger.Error("Failed to record outbound message", zap.String("to", msg.To), zap.Error(err))
			return err
		}
		logger.Info("Outbound message delivered", zap.String("to", msg.To), zap.String("messageID", msg.ID))
		return nil
	}
}

// monitorRedisConnection pings the queue's Redis periodically to surface
// failures at runtime.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client, err := utils.NewRedisClient(config.AppConfig.RedisOutboxQueueDB)
	if err != nil {
		logger.Warn("Outbound queue Redis unavailable", zap.Error(err))
		client = redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisOutboxQueueDB,
		})
	}
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Outbound queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
