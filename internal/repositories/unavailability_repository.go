package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories/dbmodels"
)

// ListUnavailabilities returns the user's blackouts, restricted to those
// overlapping [from, to) when both bounds are given.
func (repo *PgRepository) ListUnavailabilities(ctx context.Context, exec Executor,
	userID string, from, to *time.Time,
) ([]models.Unavailability, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectUnavailabilityColumns...).
		From(dbmodels.TABLE_UNAVAILABILITIES).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_datetime", "end_datetime")

	if from != nil && to != nil {
		query = query.
			Where(squirrel.Lt{"start_datetime": *to}).
			Where(squirrel.Gt{"end_datetime": *from})
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptUnavailability)
}

func (repo *PgRepository) GetUnavailability(ctx context.Context, exec Executor, id string) (models.Unavailability, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectUnavailabilityColumns...).
		From(dbmodels.TABLE_UNAVAILABILITIES).
		Where(squirrel.Eq{"id": id})

	return SqlToModel(ctx, exec, query, dbmodels.AdaptUnavailability, models.ErrBlackoutNotFound)
}

func (repo *PgRepository) InsertUnavailability(ctx context.Context, exec Executor, u models.Unavailability) error {
	_, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Insert(dbmodels.TABLE_UNAVAILABILITIES).
		Columns("id", "user_id", "start_datetime", "end_datetime", "reason", "source").
		Values(u.ID, u.UserID, u.StartDateTime, u.EndDateTime, u.Reason, string(u.Source)))
	return err
}

func (repo *PgRepository) DeleteUnavailability(ctx context.Context, exec Executor, id string) error {
	affected, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Delete(dbmodels.TABLE_UNAVAILABILITIES).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrBlackoutNotFound
	}
	return nil
}
