package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories/dbmodels"
)

func TestTransaction_commitsOnSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs("calendar:u1").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	repo := NewPgRepository()
	err = NewDatabase(mock).Transaction(context.Background(), func(tx Executor) error {
		return repo.LockUserCalendars(context.Background(), tx, "u1")
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransaction_rollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectRollback()

	err = NewDatabase(mock).Transaction(context.Background(), func(tx Executor) error {
		return models.ErrRequestorConflict
	})

	assert.ErrorIs(t, err, models.ConflictError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTransaction_returnsValue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectRollback()

	value, err := InTransaction(context.Background(), NewDatabase(mock), func(tx Executor) (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailabilityWindows_adaptsNullableColumns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(dbmodels.SelectAvailabilityWindowColumns).
		AddRow("w1", "u1", pgtype.Int2{Int16: 1, Valid: true}, pgtype.Date{},
			dbmodels.ClockToPg(models.MustParseClock("09:00")),
			dbmodels.ClockToPg(models.MustParseClock("11:00")), true, now, now).
		AddRow("w2", "u1", pgtype.Int2{}, pgtype.Date{Time: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), Valid: true},
			dbmodels.ClockToPg(models.MustParseClock("14:00")),
			dbmodels.ClockToPg(models.MustParseClock("15:00")), false, now, now)
	mock.ExpectQuery(`FROM availability_windows WHERE user_id = \$1 ORDER BY`).
		WithArgs("u1").
		WillReturnRows(rows)

	windows, err := NewPgRepository().ListAvailabilityWindows(context.Background(), mock, "u1")

	require.NoError(t, err)
	require.Len(t, windows, 2)
	require.NotNil(t, windows[0].DayOfWeek)
	assert.Equal(t, time.Monday, *windows[0].DayOfWeek)
	assert.Nil(t, windows[0].SpecificDate)
	assert.Nil(t, windows[1].DayOfWeek)
	require.NotNil(t, windows[1].SpecificDate)
	assert.Equal(t, time.Friday, windows[1].SpecificDate.Weekday())
	assert.Equal(t, models.MustParseClock("15:00"), windows[1].EndTime)
}

func TestDeleteAvailabilityWindows_noIdsIsNoop(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	err = NewPgRepository().DeleteAvailabilityWindows(context.Background(), mock, nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnavailability_missingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM unavailabilities WHERE id = \$1`).
		WithArgs("b1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = NewPgRepository().DeleteUnavailability(context.Background(), mock, "b1")

	assert.True(t, errors.Is(err, models.ErrBlackoutNotFound))
}
