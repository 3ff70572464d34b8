package usecases

import (
	"context"
	"time"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories"
	"meeting-service/internal/utils"
)

// NotificationDispatcher hands events to the external notification service.
// It is called after commit and its failures never undo a state change.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, events ...models.NotificationEvent) error
}

// BusyIntervalSource reads busy time from an external calendar. credentials
// is the serialized OAuth token of the calendar owner.
type BusyIntervalSource interface {
	BusyIntervals(ctx context.Context, credentials string, from, to time.Time) ([]models.BusyInterval, error)
}

type calendarLocker interface {
	LockUserCalendars(ctx context.Context, exec repositories.Executor, userIDs ...string) error
}

type Settings struct {
	Location     *time.Location
	SlotDuration time.Duration
	Availability models.AvailabilityPolicy
	ReminderLead time.Duration
}

type Usecases struct {
	executorFactory    repositories.ExecutorFactory
	transactionFactory repositories.TransactionFactory
	repository         *repositories.PgRepository
	dispatcher         NotificationDispatcher
	busySource         BusyIntervalSource
	settings           Settings
	now                func() time.Time
}

type Option func(*Usecases)

func WithBusyIntervalSource(source BusyIntervalSource) Option {
	return func(u *Usecases) { u.busySource = source }
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecases) { u.now = now }
}

func NewUsecases(
	database *repositories.Database,
	repository *repositories.PgRepository,
	dispatcher NotificationDispatcher,
	settings Settings,
	opts ...Option,
) Usecases {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.SlotDuration <= 0 {
		settings.SlotDuration = models.DefaultSlotDuration
	}
	u := Usecases{
		executorFactory:    database,
		transactionFactory: database,
		repository:         repository,
		dispatcher:         dispatcher,
		settings:           settings,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

func (u Usecases) NewAvailabilityUsecase() *AvailabilityUsecase {
	return &AvailabilityUsecase{
		executorFactory:    u.executorFactory,
		transactionFactory: u.transactionFactory,
		repository:         u.repository,
		policy:             u.settings.Availability,
	}
}

func (u Usecases) NewUnavailabilityUsecase() *UnavailabilityUsecase {
	return &UnavailabilityUsecase{
		executorFactory:    u.executorFactory,
		transactionFactory: u.transactionFactory,
		repository:         u.repository,
		busySource:         u.busySource,
	}
}

func (u Usecases) NewSlotUsecase() *SlotUsecase {
	return &SlotUsecase{
		executorFactory:          u.executorFactory,
		availabilityRepository:   u.repository,
		meetingRepository:        u.repository,
		unavailabilityRepository: u.repository,
		dateMode:                 u.settings.Availability.DateMode,
		location:                 u.settings.Location,
		defaultDuration:          u.settings.SlotDuration,
	}
}

func (u Usecases) NewConflictChecker() *ConflictChecker {
	return &ConflictChecker{
		locker:     u.repository,
		repository: u.repository,
	}
}

func (u Usecases) NewMeetingUsecase() *MeetingUsecase {
	return &MeetingUsecase{
		executorFactory:    u.executorFactory,
		transactionFactory: u.transactionFactory,
		repository:         u.repository,
		conflictChecker:    u.NewConflictChecker(),
		dispatcher:         u.dispatcher,
		location:           u.settings.Location,
		reminderLead:       u.settings.ReminderLead,
		now:                u.now,
	}
}

func (u Usecases) NewFeedbackUsecase() *FeedbackUsecase {
	return &FeedbackUsecase{
		transactionFactory: u.transactionFactory,
		repository:         u.repository,
	}
}

// notify dispatches events and logs, without returning, any failure.
func notify(ctx context.Context, dispatcher NotificationDispatcher, events ...models.NotificationEvent) {
	if dispatcher == nil || len(events) == 0 {
		return
	}
	result := "sent"
	if err := dispatcher.Dispatch(ctx, events...); err != nil {
		result = "failed"
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "failed to dispatch notifications",
			"error", err.Error(),
			"meeting_id", events[0].RelatedMeetingID)
	}
	for _, event := range events {
		utils.MetricNotificationsDispatched.WithLabelValues(string(event.Kind), result).Inc()
	}
}
