package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories"
	"meeting-service/internal/utils"
)

type MeetingRepository interface {
	GetMeeting(ctx context.Context, exec repositories.Executor, id string, forUpdate bool) (models.Meeting, error)
	ListMeetings(ctx context.Context, exec repositories.Executor, filters models.MeetingFilters) ([]models.Meeting, error)
	InsertMeeting(ctx context.Context, exec repositories.Executor, m models.Meeting) error
	UpdateMeetingStatus(ctx context.Context, exec repositories.Executor, update models.MeetingStatusUpdate) error
	ListMeetingsStartingBetween(ctx context.Context, exec repositories.Executor,
		status models.MeetingStatus, from, to time.Time, onlyUnreminded bool) ([]models.Meeting, error)
	MarkReminderSent(ctx context.Context, exec repositories.Executor, meetingID string, at time.Time) error
	GetUser(ctx context.Context, exec repositories.Executor, userID string) (models.User, error)
}

type MeetingUsecase struct {
	executorFactory    repositories.ExecutorFactory
	transactionFactory repositories.TransactionFactory
	repository         MeetingRepository
	conflictChecker    *ConflictChecker
	dispatcher         NotificationDispatcher
	location           *time.Location
	reminderLead       time.Duration
	now                func() time.Time
}

// RequestMeeting books a meeting in status requested. The conflict check and
// the insert share one transaction holding both users' calendar locks.
func (usecase *MeetingUsecase) RequestMeeting(ctx context.Context, actor models.Identity,
	input models.CreateMeetingInput,
) (models.Meeting, error) {
	if err := input.Validate(actor.UserID); err != nil {
		utils.MetricMeetingRequests.WithLabelValues("rejected").Inc()
		return models.Meeting{}, err
	}

	exec := usecase.executorFactory.NewExecutor()
	if _, err := usecase.repository.GetUser(ctx, exec, input.RecipientID); err != nil {
		utils.MetricMeetingRequests.WithLabelValues("rejected").Inc()
		return models.Meeting{}, err
	}

	meeting := models.Meeting{
		ID:          uuid.NewString(),
		RequestorID: actor.UserID,
		RecipientID: input.RecipientID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        models.CalendarDate(input.Date),
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Status:      models.MeetingRequested,
		MeetingType: strings.TrimSpace(input.MeetingType),
	}

	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Executor) error {
		if err := usecase.conflictChecker.LockAndCheck(ctx, tx, meeting); err != nil {
			return err
		}
		return usecase.repository.InsertMeeting(ctx, tx, meeting)
	})
	if err != nil {
		if errors.Is(err, models.ConflictError) {
			utils.MetricMeetingRequests.WithLabelValues("conflict").Inc()
		}
		return models.Meeting{}, err
	}
	utils.MetricMeetingRequests.WithLabelValues("created").Inc()

	utils.LoggerFromContext(ctx).InfoContext(ctx, "meeting requested",
		"meeting_id", meeting.ID,
		"requestor_id", meeting.RequestorID,
		"recipient_id", meeting.RecipientID)

	notify(ctx, usecase.dispatcher, models.MeetingNotification(
		meeting, meeting.RecipientID, models.NotificationMeetingRequested, models.PriorityHigh))
	return meeting, nil
}

// AcceptMeeting re-runs the conflict check, excluding the meeting itself, so
// two overlapping requests can never both be accepted.
func (usecase *MeetingUsecase) AcceptMeeting(ctx context.Context, actor models.Identity, meetingID string) (models.Meeting, error) {
	meeting, err := repositories.InTransaction(ctx, usecase.transactionFactory, func(tx repositories.Executor) (models.Meeting, error) {
		// Calendar locks are always taken before row locks.
		peek, err := usecase.repository.GetMeeting(ctx, tx, meetingID, false)
		if err != nil {
			return models.Meeting{}, err
		}
		if _, err := models.NextStatus(peek, models.ActionAccept, models.UserActor(actor.UserID)); err != nil {
			return models.Meeting{}, err
		}
		if err := usecase.conflictChecker.LockAndCheck(ctx, tx, peek); err != nil {
			return models.Meeting{}, err
		}
		return usecase.applyTransition(ctx, tx, meetingID, models.ActionAccept, models.UserActor(actor.UserID), nil)
	})
	if err != nil {
		return models.Meeting{}, err
	}

	notify(ctx, usecase.dispatcher, models.MeetingNotification(
		meeting, meeting.RequestorID, models.NotificationMeetingAccepted, models.PriorityHigh))
	return meeting, nil
}

func (usecase *MeetingUsecase) DeclineMeeting(ctx context.Context, actor models.Identity,
	meetingID string, reason string,
) (models.Meeting, error) {
	var declineReason *string
	if r := strings.TrimSpace(reason); r != "" {
		declineReason = &r
	}

	meeting, err := repositories.InTransaction(ctx, usecase.transactionFactory, func(tx repositories.Executor) (models.Meeting, error) {
		return usecase.applyTransition(ctx, tx, meetingID, models.ActionDecline, models.UserActor(actor.UserID), declineReason)
	})
	if err != nil {
		return models.Meeting{}, err
	}

	notify(ctx, usecase.dispatcher, models.MeetingNotification(
		meeting, meeting.RequestorID, models.NotificationMeetingDeclined, models.PriorityNormal))
	return meeting, nil
}

// CancelMeeting may be called by either participant while the meeting is
// open. The other participant is notified.
func (usecase *MeetingUsecase) CancelMeeting(ctx context.Context, actor models.Identity, meetingID string) (models.Meeting, error) {
	meeting, err := repositories.InTransaction(ctx, usecase.transactionFactory, func(tx repositories.Executor) (models.Meeting, error) {
		return usecase.applyTransition(ctx, tx, meetingID, models.ActionCancel, models.UserActor(actor.UserID), nil)
	})
	if err != nil {
		return models.Meeting{}, err
	}

	notify(ctx, usecase.dispatcher, models.MeetingNotification(
		meeting, meeting.OtherParty(actor.UserID), models.NotificationMeetingCancelled, models.PriorityHigh))
	return meeting, nil
}

// applyTransition locks the meeting row, validates the transition against the
// locked state and writes it conditionally.
func (usecase *MeetingUsecase) applyTransition(ctx context.Context, tx repositories.Executor,
	meetingID string, action models.MeetingAction, actor models.Actor, declineReason *string,
) (models.Meeting, error) {
	meeting, err := usecase.repository.GetMeeting(ctx, tx, meetingID, true)
	if err != nil {
		return models.Meeting{}, err
	}
	next, err := models.NextStatus(meeting, action, actor)
	if err != nil {
		return models.Meeting{}, err
	}

	err = usecase.repository.UpdateMeetingStatus(ctx, tx, models.MeetingStatusUpdate{
		MeetingID:     meeting.ID,
		From:          []models.MeetingStatus{meeting.Status},
		To:            next,
		DeclineReason: declineReason,
	})
	if err != nil {
		return models.Meeting{}, err
	}

	utils.MetricMeetingTransitions.WithLabelValues(string(action), string(next)).Inc()
	utils.LoggerFromContext(ctx).InfoContext(ctx, "meeting status changed",
		"meeting_id", meeting.ID,
		"action", string(action),
		"from", string(meeting.Status),
		"to", string(next))

	meeting.Status = next
	if declineReason != nil {
		meeting.DeclineReason = declineReason
	}
	return meeting, nil
}

// GetMeeting is restricted to the participants and admins.
func (usecase *MeetingUsecase) GetMeeting(ctx context.Context, actor models.Identity, meetingID string) (models.Meeting, error) {
	meeting, err := usecase.repository.GetMeeting(ctx, usecase.executorFactory.NewExecutor(), meetingID, false)
	if err != nil {
		return models.Meeting{}, err
	}
	if !meeting.IsParticipant(actor.UserID) && !actor.IsAdmin() {
		return models.Meeting{}, models.ErrNotParticipant
	}
	return meeting, nil
}

// ListMeetings lists the meetings of filters.UserID, which defaults to the
// caller. Only admins may list someone else's meetings.
func (usecase *MeetingUsecase) ListMeetings(ctx context.Context, actor models.Identity,
	filters models.MeetingFilters,
) ([]models.Meeting, error) {
	if filters.UserID == "" {
		filters.UserID = actor.UserID
	}
	if filters.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, errors.Wrap(models.AuthorizationError, "only admins may list the meetings of another user")
	}
	if filters.From != nil && filters.To != nil && filters.To.Before(*filters.From) {
		return nil, errors.Wrap(models.ValidationError, "from must not be after to")
	}
	return usecase.repository.ListMeetings(ctx, usecase.executorFactory.NewExecutor(), filters)
}

// wallClockNow is the current time read on the service's calendar clock.
func (usecase *MeetingUsecase) wallClockNow() time.Time {
	return usecase.now().In(usecase.location)
}

// ExpireStaleRequests cancels requested meetings whose start has passed
// without an answer from the recipient. Both participants are notified.
func (usecase *MeetingUsecase) ExpireStaleRequests(ctx context.Context) (int, error) {
	logger := utils.LoggerFromContext(ctx)
	stale, err := usecase.repository.ListMeetingsStartingBetween(ctx, usecase.executorFactory.NewExecutor(),
		models.MeetingRequested, time.Time{}, usecase.wallClockNow(), false)
	if err != nil {
		return 0, err
	}

	expired := 0
	var errs error
	for _, candidate := range stale {
		meeting, err := repositories.InTransaction(ctx, usecase.transactionFactory, func(tx repositories.Executor) (models.Meeting, error) {
			return usecase.applyTransition(ctx, tx, candidate.ID, models.ActionExpire, models.SystemActor(), nil)
		})
		if errors.Is(err, models.StateError) {
			// answered since it was listed
			continue
		}
		if err != nil {
			logger.ErrorContext(ctx, "failed to expire meeting", "meeting_id", candidate.ID, "error", err.Error())
			errs = errors.Join(errs, err)
			continue
		}
		expired++
		notify(ctx, usecase.dispatcher,
			models.MeetingNotification(meeting, meeting.RequestorID, models.NotificationMeetingExpired, models.PriorityNormal),
			models.MeetingNotification(meeting, meeting.RecipientID, models.NotificationMeetingExpired, models.PriorityNormal),
		)
	}
	if expired > 0 {
		logger.InfoContext(ctx, "expired stale meeting requests", "count", expired)
	}
	return expired, errs
}

// SendDueReminders notifies both participants of accepted meetings starting
// within the reminder lead time. Each meeting is reminded at most once.
func (usecase *MeetingUsecase) SendDueReminders(ctx context.Context) (int, error) {
	logger := utils.LoggerFromContext(ctx)
	exec := usecase.executorFactory.NewExecutor()
	now := usecase.wallClockNow()

	due, err := usecase.repository.ListMeetingsStartingBetween(ctx, exec,
		models.MeetingAccepted, now, now.Add(usecase.reminderLead), true)
	if err != nil {
		return 0, err
	}

	sent := 0
	var errs error
	for _, meeting := range due {
		if err := usecase.repository.MarkReminderSent(ctx, exec, meeting.ID, usecase.now()); err != nil {
			logger.ErrorContext(ctx, "failed to mark reminder as sent", "meeting_id", meeting.ID, "error", err.Error())
			errs = errors.Join(errs, err)
			continue
		}
		sent++
		notify(ctx, usecase.dispatcher,
			models.MeetingNotification(meeting, meeting.RequestorID, models.NotificationMeetingReminder, models.PriorityHigh),
			models.MeetingNotification(meeting, meeting.RecipientID, models.NotificationMeetingReminder, models.PriorityHigh),
		)
	}
	if sent > 0 {
		logger.InfoContext(ctx, "sent meeting reminders", "count", sent)
	}
	return sent, errs
}
