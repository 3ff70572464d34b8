package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgtype"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories/dbmodels"
)

const wallClockLayout = "2006-01-02 15:04:05"

func statusStrings(statuses []models.MeetingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func selectMeetings() squirrel.SelectBuilder {
	return NewQueryBuilder().
		Select(dbmodels.SelectMeetingColumns...).
		From(dbmodels.TABLE_MEETINGS)
}

// GetMeeting reads one meeting. With forUpdate the row stays locked until the
// surrounding transaction ends, which serialises transitions on a meeting.
func (repo *PgRepository) GetMeeting(ctx context.Context, exec Executor, id string, forUpdate bool) (models.Meeting, error) {
	query := selectMeetings().Where(squirrel.Eq{"id": id})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}
	return SqlToModel(ctx, exec, query, dbmodels.AdaptMeeting, models.ErrMeetingNotFound)
}

// ListActiveMeetingsOnDate returns the meetings occupying the user's calendar
// on date, whichever side of the meeting the user is on.
func (repo *PgRepository) ListActiveMeetingsOnDate(ctx context.Context, exec Executor,
	userID string, date time.Time,
) ([]models.Meeting, error) {
	query := selectMeetings().
		Where(squirrel.Or{squirrel.Eq{"requestor_id": userID}, squirrel.Eq{"recipient_id": userID}}).
		Where(squirrel.Eq{"date": dbmodels.DateToPg(date)}).
		Where(squirrel.Eq{"status": statusStrings(models.ActiveMeetingStatuses)}).
		OrderBy("start_time")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptMeeting)
}

func (repo *PgRepository) ListMeetings(ctx context.Context, exec Executor, filters models.MeetingFilters) ([]models.Meeting, error) {
	query := selectMeetings().OrderBy("date DESC", "start_time DESC")

	switch filters.Role {
	case models.ParticipantRoleRequestor:
		query = query.Where(squirrel.Eq{"requestor_id": filters.UserID})
	case models.ParticipantRoleRecipient:
		query = query.Where(squirrel.Eq{"recipient_id": filters.UserID})
	default:
		query = query.Where(squirrel.Or{
			squirrel.Eq{"requestor_id": filters.UserID},
			squirrel.Eq{"recipient_id": filters.UserID},
		})
	}
	if len(filters.Statuses) > 0 {
		query = query.Where(squirrel.Eq{"status": statusStrings(filters.Statuses)})
	}
	if filters.MeetingType != "" {
		query = query.Where(squirrel.Eq{"meeting_type": filters.MeetingType})
	}
	if filters.From != nil {
		query = query.Where(squirrel.GtOrEq{"date": dbmodels.DateToPg(*filters.From)})
	}
	if filters.To != nil {
		query = query.Where(squirrel.LtOrEq{"date": dbmodels.DateToPg(*filters.To)})
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptMeeting)
}

func (repo *PgRepository) InsertMeeting(ctx context.Context, exec Executor, m models.Meeting) error {
	_, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Insert(dbmodels.TABLE_MEETINGS).
		Columns(
			"id",
			"requestor_id",
			"recipient_id",
			"title",
			"description",
			"date",
			"start_time",
			"end_time",
			"status",
			"meeting_type",
		).
		Values(
			m.ID,
			m.RequestorID,
			m.RecipientID,
			m.Title,
			m.Description,
			dbmodels.DateToPg(m.Date),
			dbmodels.ClockToPg(m.StartTime),
			dbmodels.ClockToPg(m.EndTime),
			string(m.Status),
			m.MeetingType,
		))
	if IsExclusionViolationError(err) {
		return errors.Wrap(models.ConflictError, "meeting overlaps an existing booking")
	}
	if IsForeignKeyViolationError(err) {
		return models.ErrUnknownUser
	}
	return err
}

// UpdateMeetingStatus applies the update only while the meeting is still in
// one of the expected statuses. A concurrent transition that got there first
// makes it fail with a StateError.
func (repo *PgRepository) UpdateMeetingStatus(ctx context.Context, exec Executor, update models.MeetingStatusUpdate) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_MEETINGS).
		Set("status", string(update.To)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": update.MeetingID}).
		Where(squirrel.Eq{"status": statusStrings(update.From)})
	if update.DeclineReason != nil {
		query = query.Set("decline_reason", *update.DeclineReason)
	}

	affected, err := ExecBuilder(ctx, exec, query)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrapf(models.StateError, "meeting %s is no longer in status %v", update.MeetingID, update.From)
	}
	return nil
}

// ListMeetingsStartingBetween finds meetings in status whose start, read as
// wall-clock time, falls in [from, to). from and to are wall-clock times too.
func (repo *PgRepository) ListMeetingsStartingBetween(ctx context.Context, exec Executor,
	status models.MeetingStatus, from, to time.Time, onlyUnreminded bool,
) ([]models.Meeting, error) {
	query := selectMeetings().
		Where(squirrel.Eq{"status": string(status)}).
		Where(squirrel.Expr("(date + start_time) >= ?::timestamp", from.Format(wallClockLayout))).
		Where(squirrel.Expr("(date + start_time) < ?::timestamp", to.Format(wallClockLayout))).
		OrderBy("date", "start_time")
	if onlyUnreminded {
		query = query.Where(squirrel.Eq{"reminder_sent_at": nil})
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptMeeting)
}

func (repo *PgRepository) MarkReminderSent(ctx context.Context, exec Executor, meetingID string, at time.Time) error {
	_, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Update(dbmodels.TABLE_MEETINGS).
		Set("reminder_sent_at", pgtype.Timestamptz{Time: at, Valid: true}).
		Where(squirrel.Eq{"id": meetingID}))
	return err
}
