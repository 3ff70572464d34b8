package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories/dbmodels"
)

func meetingRow(rows *pgxmock.Rows, id string, status models.MeetingStatus, start, end string) *pgxmock.Rows {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id,
		"11111111-1111-1111-1111-111111111111",
		"22222222-2222-2222-2222-222222222222",
		"Career chat",
		"",
		pgtype.Date{Time: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Valid: true},
		dbmodels.ClockToPg(models.MustParseClock(start)),
		dbmodels.ClockToPg(models.MustParseClock(end)),
		string(status),
		"counseling",
		pgtype.Text{},
		now,
		now,
		pgtype.Timestamptz{},
	)
}

func TestGetMeeting_forUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := meetingRow(pgxmock.NewRows(dbmodels.SelectMeetingColumns), "m1", models.MeetingAccepted, "10:00", "10:30")
	mock.ExpectQuery(`SELECT .* FROM meetings WHERE id = \$1 FOR UPDATE`).
		WithArgs("m1").
		WillReturnRows(rows)

	meeting, err := NewPgRepository().GetMeeting(context.Background(), mock, "m1", true)

	require.NoError(t, err)
	assert.Equal(t, models.MeetingAccepted, meeting.Status)
	assert.Equal(t, models.MustParseClock("10:00"), meeting.StartTime)
	assert.Equal(t, time.Monday, meeting.Date.Weekday())
	assert.Nil(t, meeting.DeclineReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMeeting_notFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .* FROM meetings WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(dbmodels.SelectMeetingColumns))

	_, err = NewPgRepository().GetMeeting(context.Background(), mock, "missing", false)

	assert.ErrorIs(t, err, models.NotFoundError)
	assert.ErrorIs(t, err, models.ErrMeetingNotFound)
}

func TestListActiveMeetingsOnDate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(dbmodels.SelectMeetingColumns)
	meetingRow(rows, "m1", models.MeetingRequested, "10:00", "10:30")
	meetingRow(rows, "m2", models.MeetingAccepted, "11:00", "11:30")
	mock.ExpectQuery(`FROM meetings WHERE \(requestor_id = \$1 OR recipient_id = \$2\) AND date = \$3 AND status IN \(\$4,\$5\) ORDER BY start_time`).
		WithArgs("u1", "u1", pgxmock.AnyArg(), "requested", "accepted").
		WillReturnRows(rows)

	meetings, err := NewPgRepository().ListActiveMeetingsOnDate(context.Background(), mock, "u1",
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "m2", meetings[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMeetingStatus_conditionalOnSourceStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE meetings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status IN \(\$3\)`).
		WithArgs("accepted", "m1", "requested").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = NewPgRepository().UpdateMeetingStatus(context.Background(), mock, models.MeetingStatusUpdate{
		MeetingID: "m1",
		From:      []models.MeetingStatus{models.MeetingRequested},
		To:        models.MeetingAccepted,
	})

	assert.ErrorIs(t, err, models.StateError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMeetingStatus_storesDeclineReason(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	reason := "schedule clash"
	mock.ExpectExec(`UPDATE meetings SET status = \$1, updated_at = NOW\(\), decline_reason = \$2 WHERE`).
		WithArgs("declined", reason, "m1", "requested").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = NewPgRepository().UpdateMeetingStatus(context.Background(), mock, models.MeetingStatusUpdate{
		MeetingID:     "m1",
		From:          []models.MeetingStatus{models.MeetingRequested},
		To:            models.MeetingDeclined,
		DeclineReason: &reason,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertMeeting_exclusionViolationIsConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO meetings`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23P01"})

	err = NewPgRepository().InsertMeeting(context.Background(), mock, models.Meeting{
		ID:          "m1",
		RequestorID: "u1",
		RecipientID: "u2",
		Date:        time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		StartTime:   models.MustParseClock("10:00"),
		EndTime:     models.MustParseClock("10:30"),
		Status:      models.MeetingRequested,
	})

	assert.ErrorIs(t, err, models.ConflictError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertFeedback_uniqueViolationIsDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO meeting_feedback`).
		WithArgs("m1", "u1", int32(4), int32(5), "").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = NewPgRepository().InsertFeedback(context.Background(), mock, models.Feedback{
		MeetingID: "m1", UserID: "u1", SuccessRating: 4, PlatformRating: 5,
	})

	assert.ErrorIs(t, err, models.ErrDuplicateFeedback)
	assert.ErrorIs(t, err, models.ValidationError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMeeting_malformedIDIsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM meetings WHERE id = \$1`).
		WithArgs("abc").
		WillReturnError(&pgconn.PgError{Code: "22P02"})

	_, err = NewPgRepository().GetMeeting(context.Background(), mock, "abc", false)

	assert.ErrorIs(t, err, models.ErrMeetingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMeetings_malformedUserIDIsValidationError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM meetings WHERE \(requestor_id = \$1 OR recipient_id = \$2\)`).
		WithArgs("abc", "abc").
		WillReturnError(&pgconn.PgError{Code: "22P02"})

	_, err = NewPgRepository().ListMeetings(context.Background(), mock, models.MeetingFilters{UserID: "abc"})

	assert.ErrorIs(t, err, models.ValidationError)
	assert.NotErrorIs(t, err, models.NotFoundError)
}

func TestLockUserCalendars_sortedAndDeduplicated(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs("calendar:alice").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs("calendar:bob").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))

	err = NewPgRepository().LockUserCalendars(context.Background(), mock, "bob", "alice", "bob")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
