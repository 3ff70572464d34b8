package notifications

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	"meeting-service/internal/models"
	"meeting-service/internal/utils"
)

const (
	QueueNotifications      = "notifications"
	maxAttemptsNotification = 8 // at 1sec*attempt^4, the last attempt is about 70min after the first
)

// lower number is higher priority (between 1 and 4)
var priorities = map[models.NotificationPriority]int{
	models.PriorityHigh:   1,
	models.PriorityNormal: 2,
	models.PriorityLow:    3,
}

type NotificationArgs struct {
	Event models.NotificationEvent `json:"event"`
}

func (NotificationArgs) Kind() string { return "meeting_notification" }

type jobInserter interface {
	InsertMany(ctx context.Context, params []river.InsertManyParams) ([]*rivertype.JobInsertResult, error)
}

// QueueDispatcher enqueues one river job per event. Delivery happens in the
// NotificationWorker, retried by river on failure.
type QueueDispatcher struct {
	client jobInserter
}

func NewQueueDispatcher(client jobInserter) *QueueDispatcher {
	return &QueueDispatcher{client: client}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, events ...models.NotificationEvent) error {
	if len(events) == 0 {
		return nil
	}
	params := make([]river.InsertManyParams, len(events))
	for i, event := range events {
		priority, ok := priorities[event.Priority]
		if !ok {
			priority = priorities[models.PriorityNormal]
		}
		params[i] = river.InsertManyParams{
			Args: NotificationArgs{Event: event},
			InsertOpts: &river.InsertOpts{
				MaxAttempts: maxAttemptsNotification,
				Priority:    priority,
				Queue:       QueueNotifications,
			},
		}
	}

	res, err := d.client.InsertMany(ctx, params)
	if err != nil {
		return errors.Wrap(err, "enqueueing notifications")
	}
	utils.LoggerFromContext(ctx).DebugContext(ctx, "enqueued notifications", "count", len(res))
	return nil
}

// LogDispatcher only logs events. Used when no queue is configured.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(ctx context.Context, events ...models.NotificationEvent) error {
	logger := utils.LoggerFromContext(ctx)
	for _, event := range events {
		logger.InfoContext(ctx, "notification",
			slog.String("kind", string(event.Kind)),
			slog.String("recipient_user_id", event.RecipientUserID),
			slog.String("priority", string(event.Priority)),
			slog.String("related_meeting_id", event.RelatedMeetingID))
	}
	return nil
}
