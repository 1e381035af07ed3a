package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"shineops/config"
	"shineops/models"

	"github.com/hibiken/asynq"
)

// TypeNotificationDispatch is the asynq task type for outbound notifications.
const TypeNotificationDispatch = "notification:dispatch"

// Dispatcher hands notification payloads to the background queue. Actual
// email/SMS delivery happens outside this service; the core's obligation
// ends at enqueuing.
type Dispatcher interface {
	Enqueue(ctx context.Context, payload models.DispatchPayload) error
}

// AsynqDispatcher enqueues dispatch tasks on the Redis-backed asynq queue.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher creates a Dispatcher backed by the configured Redis queue.
func NewAsynqDispatcher() *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqDispatcher{client: client}
}

// Enqueue queues one notification payload for background dispatch.
func (d *AsynqDispatcher) Enqueue(ctx context.Context, payload models.DispatchPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch payload: %w", err)
	}
	task := asynq.NewTask(TypeNotificationDispatch, data)
	if _, err := d.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue notification dispatch: %w", err)
	}
	return nil
}

// Close releases the underlying queue client.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
