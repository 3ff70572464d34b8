package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories"
	"meeting-service/internal/utils"
)

type SlotAvailabilityRepository interface {
	ListAvailabilityWindowsForDate(ctx context.Context, exec repositories.Executor,
		userID string, weekday time.Weekday, date time.Time) ([]models.AvailabilityWindow, error)
}

type SlotMeetingRepository interface {
	ListActiveMeetingsOnDate(ctx context.Context, exec repositories.Executor, userID string, date time.Time) ([]models.Meeting, error)
}

type SlotUnavailabilityRepository interface {
	ListUnavailabilities(ctx context.Context, exec repositories.Executor, userID string, from, to *time.Time) ([]models.Unavailability, error)
}

type SlotUsecase struct {
	executorFactory          repositories.ExecutorFactory
	availabilityRepository   SlotAvailabilityRepository
	meetingRepository        SlotMeetingRepository
	unavailabilityRepository SlotUnavailabilityRepository
	dateMode                 models.DateMode
	location                 *time.Location
	defaultDuration          time.Duration
}

type GenerateSlotsInput struct {
	UserID string
	Date   time.Time
	// Duration defaults to the configured slot duration when zero.
	Duration time.Duration
	// DayOfWeek replaces the weekday derived from Date when set.
	DayOfWeek *time.Weekday
}

// GenerateSlots lists the bookable slots of a user on one calendar date. The
// weekday comes from the calendar components of the date, never from a
// shifted timestamp.
func (usecase *SlotUsecase) GenerateSlots(ctx context.Context, input GenerateSlotsInput) (models.SlotsResult, error) {
	start := time.Now()

	duration := input.Duration
	if duration == 0 {
		duration = usecase.defaultDuration
	}
	if duration < time.Minute || duration%time.Minute != 0 || duration > 24*time.Hour {
		return models.SlotsResult{}, errors.Wrapf(models.ValidationError, "invalid slot duration %s", duration)
	}
	if input.Date.IsZero() {
		return models.SlotsResult{}, errors.Wrap(models.ValidationError, "date is required")
	}

	date := models.CalendarDate(input.Date)
	weekday := date.Weekday()
	if input.DayOfWeek != nil {
		if *input.DayOfWeek < time.Sunday || *input.DayOfWeek > time.Saturday {
			return models.SlotsResult{}, errors.Wrap(models.ValidationError, "day_of_week must be between 0 and 6")
		}
		weekday = *input.DayOfWeek
	}
	dayStart, dayEnd := models.DayBounds(date, usecase.location)

	var (
		windows   []models.AvailabilityWindow
		meetings  []models.Meeting
		blackouts []models.Unavailability
	)
	exec := usecase.executorFactory.NewExecutor()
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		windows, err = usecase.availabilityRepository.ListAvailabilityWindowsForDate(groupCtx, exec, input.UserID, weekday, date)
		return err
	})
	group.Go(func() error {
		var err error
		meetings, err = usecase.meetingRepository.ListActiveMeetingsOnDate(groupCtx, exec, input.UserID, date)
		return err
	})
	group.Go(func() error {
		var err error
		blackouts, err = usecase.unavailabilityRepository.ListUnavailabilities(groupCtx, exec, input.UserID, &dayStart, &dayEnd)
		return err
	})
	if err := group.Wait(); err != nil {
		return models.SlotsResult{}, errors.Wrap(err, "loading calendar for slot generation")
	}

	windows = models.WindowsForDate(windows, weekday, date, usecase.dateMode)

	busy := make([]models.Interval, 0, len(meetings)+len(blackouts))
	for _, m := range meetings {
		busy = append(busy, m.Interval())
	}
	for _, b := range blackouts {
		if clipped, ok := models.ClipToDay(b.StartDateTime, b.EndDateTime, date, usecase.location); ok {
			busy = append(busy, clipped)
		}
	}

	result := models.SlotsResult{
		Date:      date,
		DayOfWeek: weekday,
		Slots:     models.BuildSlots(windows, busy, duration),
		Outcome:   models.SlotsAvailable,
	}
	switch {
	case len(windows) == 0:
		result.Outcome = models.SlotsNoAvailability
	case len(result.Slots) == 0:
		result.Outcome = models.SlotsFullyBooked
	}

	utils.MetricSlotQueries.WithLabelValues(string(result.Outcome)).Inc()
	utils.MetricSlotGenerationLatency.Observe(time.Since(start).Seconds())
	return result, nil
}
