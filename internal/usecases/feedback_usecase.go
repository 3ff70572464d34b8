package usecases

import (
	"context"

	"github.com/cockroachdb/errors"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories"
	"meeting-service/internal/utils"
)

type FeedbackRepository interface {
	GetMeeting(ctx context.Context, exec repositories.Executor, id string, forUpdate bool) (models.Meeting, error)
	UpdateMeetingStatus(ctx context.Context, exec repositories.Executor, update models.MeetingStatusUpdate) error
	HasFeedback(ctx context.Context, exec repositories.Executor, meetingID, userID string) (bool, error)
	InsertFeedback(ctx context.Context, exec repositories.Executor, f models.Feedback) error
}

type FeedbackUsecase struct {
	transactionFactory repositories.TransactionFactory
	repository         FeedbackRepository
}

// SubmitFeedback stores a participant's feedback. The first submission on an
// accepted meeting completes it; later submissions only add feedback.
func (usecase *FeedbackUsecase) SubmitFeedback(ctx context.Context, actor models.Identity,
	feedback models.Feedback,
) (models.FeedbackResult, error) {
	feedback.UserID = actor.UserID

	return repositories.InTransaction(ctx, usecase.transactionFactory, func(tx repositories.Executor) (models.FeedbackResult, error) {
		meeting, err := usecase.repository.GetMeeting(ctx, tx, feedback.MeetingID, true)
		if err != nil {
			return models.FeedbackResult{}, err
		}
		next, err := models.NextStatus(meeting, models.ActionComplete, models.FeedbackActor(actor.UserID))
		if err != nil {
			if errors.Is(err, models.AuthorizationError) {
				return models.FeedbackResult{}, models.ErrNotParticipant
			}
			return models.FeedbackResult{}, errors.Wrap(err, "feedback needs an accepted or completed meeting")
		}
		if err := feedback.Validate(); err != nil {
			return models.FeedbackResult{}, err
		}

		exists, err := usecase.repository.HasFeedback(ctx, tx, meeting.ID, actor.UserID)
		if err != nil {
			return models.FeedbackResult{}, err
		}
		if exists {
			return models.FeedbackResult{}, models.ErrDuplicateFeedback
		}
		if err := usecase.repository.InsertFeedback(ctx, tx, feedback); err != nil {
			return models.FeedbackResult{}, err
		}

		result := models.FeedbackResult{Feedback: feedback}
		if meeting.Status != next {
			err := usecase.repository.UpdateMeetingStatus(ctx, tx, models.MeetingStatusUpdate{
				MeetingID: meeting.ID,
				From:      []models.MeetingStatus{meeting.Status},
				To:        next,
			})
			if err != nil {
				return models.FeedbackResult{}, err
			}
			result.Completed = true
			utils.MetricMeetingTransitions.WithLabelValues(string(models.ActionComplete), string(next)).Inc()
			utils.LoggerFromContext(ctx).InfoContext(ctx, "meeting completed by feedback",
				"meeting_id", meeting.ID, "user_id", actor.UserID)
		}
		return result, nil
	})
}
