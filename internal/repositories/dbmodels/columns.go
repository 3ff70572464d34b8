package dbmodels

import (
	"reflect"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"meeting-service/internal/models"
)

const microsecondsPerMinute = int64(time.Minute / time.Microsecond)

// ColumnList returns the db tags of T, in field order.
func ColumnList[T any]() []string {
	var columns []string
	t := reflect.TypeOf(*new(T))
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}
	return columns
}

func ClockToPg(c models.Clock) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c) * microsecondsPerMinute, Valid: true}
}

func ClockFromPg(t pgtype.Time) models.Clock {
	return models.Clock(t.Microseconds / microsecondsPerMinute)
}

func DateToPg(d time.Time) pgtype.Date {
	return pgtype.Date{Time: models.CalendarDate(d), Valid: true}
}
