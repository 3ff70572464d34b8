package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories/dbmodels"
)

func (repo *PgRepository) ListAvailabilityWindows(ctx context.Context, exec Executor, userID string) ([]models.AvailabilityWindow, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAvailabilityWindowColumns...).
		From(dbmodels.TABLE_AVAILABILITY_WINDOWS).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("is_recurring DESC", "day_of_week", "specific_date", "start_time")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAvailabilityWindow)
}

// ListAvailabilityWindowsForDate returns the recurring windows of weekday and
// the windows pinned to date, ordered by start time.
func (repo *PgRepository) ListAvailabilityWindowsForDate(ctx context.Context, exec Executor,
	userID string, weekday time.Weekday, date time.Time,
) ([]models.AvailabilityWindow, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAvailabilityWindowColumns...).
		From(dbmodels.TABLE_AVAILABILITY_WINDOWS).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Or{
			squirrel.And{squirrel.Eq{"is_recurring": true}, squirrel.Eq{"day_of_week": int16(weekday)}},
			squirrel.And{squirrel.Eq{"is_recurring": false}, squirrel.Eq{"specific_date": dbmodels.DateToPg(date)}},
		}).
		OrderBy("start_time", "is_recurring DESC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAvailabilityWindow)
}

func (repo *PgRepository) GetAvailabilityWindow(ctx context.Context, exec Executor, id string) (models.AvailabilityWindow, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAvailabilityWindowColumns...).
		From(dbmodels.TABLE_AVAILABILITY_WINDOWS).
		Where(squirrel.Eq{"id": id})

	return SqlToModel(ctx, exec, query, dbmodels.AdaptAvailabilityWindow, models.ErrWindowNotFound)
}

func (repo *PgRepository) InsertAvailabilityWindow(ctx context.Context, exec Executor, w models.AvailabilityWindow) error {
	_, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Insert(dbmodels.TABLE_AVAILABILITY_WINDOWS).
		Columns("id", "user_id", "day_of_week", "specific_date", "start_time", "end_time", "is_recurring").
		Values(
			w.ID,
			w.UserID,
			dbmodels.DayOfWeekToPg(w.DayOfWeek),
			dbmodels.OptionalDateToPg(w.SpecificDate),
			dbmodels.ClockToPg(w.StartTime),
			dbmodels.ClockToPg(w.EndTime),
			w.IsRecurring,
		))
	if IsUniqueViolationError(err) {
		return errors.Wrap(models.ValidationError, "an availability window already exists for this day")
	}
	return err
}

func (repo *PgRepository) UpdateAvailabilityWindow(ctx context.Context, exec Executor, w models.AvailabilityWindow) error {
	affected, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Update(dbmodels.TABLE_AVAILABILITY_WINDOWS).
		Set("start_time", dbmodels.ClockToPg(w.StartTime)).
		Set("end_time", dbmodels.ClockToPg(w.EndTime)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": w.ID, "user_id": w.UserID}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrWindowNotFound
	}
	return nil
}

func (repo *PgRepository) DeleteAvailabilityWindows(ctx context.Context, exec Executor, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Delete(dbmodels.TABLE_AVAILABILITY_WINDOWS).
		Where(squirrel.Eq{"id": ids}))
	return err
}
