package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"

	"meeting-service/internal/models"
	"meeting-service/internal/utils"
)

// Sender delivers one event to the notification service. Templates, channels
// and user preferences live there.
type Sender interface {
	Send(ctx context.Context, event models.NotificationEvent) error
}

type LogSender struct{}

func (LogSender) Send(ctx context.Context, event models.NotificationEvent) error {
	utils.LoggerFromContext(ctx).InfoContext(ctx, "delivering notification",
		"kind", string(event.Kind),
		"recipient_user_id", event.RecipientUserID,
		"related_meeting_id", event.RelatedMeetingID)
	return nil
}

type NotificationWorker struct {
	river.WorkerDefaults[NotificationArgs]

	sender Sender
}

func NewNotificationWorker(sender Sender) *NotificationWorker {
	return &NotificationWorker{sender: sender}
}

func (w *NotificationWorker) Work(ctx context.Context, job *river.Job[NotificationArgs]) error {
	if job.Args.Event.RecipientUserID == "" {
		return river.JobCancel(errors.New("notification without recipient"))
	}
	return w.sender.Send(ctx, job.Args.Event)
}

func (w *NotificationWorker) Timeout(*river.Job[NotificationArgs]) time.Duration {
	return 30 * time.Second
}

type LoggerMiddleware struct {
	river.MiddlewareDefaults
	l          *slog.Logger
	errorCount map[string]int
	mu         *sync.Mutex
}

func NewLoggerMiddleware(l *slog.Logger) *LoggerMiddleware {
	return &LoggerMiddleware{l: l, errorCount: make(map[string]int), mu: &sync.Mutex{}}
}

func (m *LoggerMiddleware) Work(ctx context.Context, job *rivertype.JobRow, doInner func(context.Context) error) error {
	logger := m.l.With(
		"job_id", job.ID,
		"job_kind", job.Kind,
		"job_attempt", job.Attempt,
		"queue", job.Queue,
		"priority", job.Priority,
	)
	start := time.Now()
	ctx = utils.StoreLoggerInContext(ctx, logger)

	err := doInner(ctx)
	if err != nil {
		logger.ErrorContext(ctx, fmt.Sprintf("%s job n°%d failed after %s", job.Kind, job.ID, time.Since(start)),
			"error", err.Error(),
			"failures", m.countFailure(job, err))
		return err
	}
	logger.DebugContext(ctx, fmt.Sprintf("%s job n°%d succeeded after %s", job.Kind, job.ID, time.Since(start)))
	return nil
}

func (m *LoggerMiddleware) countFailure(job *rivertype.JobRow, err error) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := job.Kind + ":" + err.Error()
	m.errorCount[key]++
	return m.errorCount[key]
}

// NewRiverClient builds a client that both enqueues and works notifications.
// The river schema must already exist (river migrate-up).
func NewRiverClient(pool *pgxpool.Pool, sender Sender, logger *slog.Logger) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewNotificationWorker(sender))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			QueueNotifications: {MaxWorkers: 10},
		},
		RescueStuckJobsAfter: time.Minute,
		WorkerMiddleware:     []rivertype.WorkerMiddleware{NewLoggerMiddleware(logger)},
		Workers:              workers,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating river client")
	}
	return client, nil
}
