package dbmodels

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"meeting-service/internal/models"
)

const TABLE_AVAILABILITY_WINDOWS = "availability_windows"

type DBAvailabilityWindow struct {
	Id           string      `db:"id"`
	UserId       string      `db:"user_id"`
	DayOfWeek    pgtype.Int2 `db:"day_of_week"`
	SpecificDate pgtype.Date `db:"specific_date"`
	StartTime    pgtype.Time `db:"start_time"`
	EndTime      pgtype.Time `db:"end_time"`
	IsRecurring  bool        `db:"is_recurring"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

var SelectAvailabilityWindowColumns = ColumnList[DBAvailabilityWindow]()

func AdaptAvailabilityWindow(db DBAvailabilityWindow) (models.AvailabilityWindow, error) {
	w := models.AvailabilityWindow{
		ID:          db.Id,
		UserID:      db.UserId,
		StartTime:   ClockFromPg(db.StartTime),
		EndTime:     ClockFromPg(db.EndTime),
		IsRecurring: db.IsRecurring,
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   db.UpdatedAt,
	}
	if db.DayOfWeek.Valid {
		d := time.Weekday(db.DayOfWeek.Int16)
		w.DayOfWeek = &d
	}
	if db.SpecificDate.Valid {
		date := models.CalendarDate(db.SpecificDate.Time)
		w.SpecificDate = &date
	}
	return w, nil
}

func DayOfWeekToPg(d *time.Weekday) pgtype.Int2 {
	if d == nil {
		return pgtype.Int2{}
	}
	return pgtype.Int2{Int16: int16(*d), Valid: true}
}

func OptionalDateToPg(d *time.Time) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return DateToPg(*d)
}
