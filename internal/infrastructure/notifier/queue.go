package notifier

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"gb_market/internal/domain"
	"gb_market/pkg/errcodes"
)

const TaskSend = "notification:send"

const maxRetry = 3

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueSink defers delivery to the asynq worker so a slow or failing sink is
// retried outside the dispatcher loop.
type QueueSink struct {
	client Enqueuer
	queue  string
}

func NewQueueSink(client Enqueuer, queue string) *QueueSink {
	return &QueueSink{
		client: client,
		queue:  queue,
	}
}

func (s *QueueSink) Name() string {
	return "queue"
}

func (s *QueueSink) Send(ctx context.Context, ev Event) error {
	payload, err := jsoniter.ConfigFastest.Marshal(ev)
	if err != nil {
		return fmt.Errorf("jsoniter.Marshal: %w", err)
	}

	task := asynq.NewTask(TaskSend, payload, asynq.Queue(s.queue), asynq.MaxRetry(maxRetry))

	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("asynq.Enqueue: %w", err)
	}

	return nil
}

// TaskHandler forwards queued events to target.
func TaskHandler(target Sink) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var ev Event

		if err := jsoniter.ConfigFastest.Unmarshal(task.Payload(), &ev); err != nil {
			// A payload that does not decode never will.
			return fmt.Errorf("%w: %w", asynq.SkipRetry,
				domain.WrapError(err, errcodes.NotificationFailed, "decode notification"))
		}

		if err := target.Send(ctx, ev); err != nil {
			return domain.WrapError(err, errcodes.NotificationFailed, "deliver notification")
		}

		return nil
	}
}
