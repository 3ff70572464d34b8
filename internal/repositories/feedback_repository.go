package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories/dbmodels"
)

func (repo *PgRepository) HasFeedback(ctx context.Context, exec Executor, meetingID, userID string) (bool, error) {
	feedbacks, err := repo.ListFeedback(ctx, exec, meetingID)
	if err != nil {
		return false, err
	}
	for _, f := range feedbacks {
		if f.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *PgRepository) ListFeedback(ctx context.Context, exec Executor, meetingID string) ([]models.Feedback, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectFeedbackColumns...).
		From(dbmodels.TABLE_MEETING_FEEDBACK).
		Where(squirrel.Eq{"meeting_id": meetingID}).
		OrderBy("created_at")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptFeedback)
}

// InsertFeedback maps the (meeting_id, user_id) uniqueness constraint to a
// duplicate-feedback validation error.
func (repo *PgRepository) InsertFeedback(ctx context.Context, exec Executor, f models.Feedback) error {
	_, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Insert(dbmodels.TABLE_MEETING_FEEDBACK).
		Columns("meeting_id", "user_id", "success_rating", "platform_rating", "comments").
		Values(f.MeetingID, f.UserID, int32(f.SuccessRating), int32(f.PlatformRating), f.Comments))
	if IsUniqueViolationError(err) {
		return models.ErrDuplicateFeedback
	}
	return err
}
