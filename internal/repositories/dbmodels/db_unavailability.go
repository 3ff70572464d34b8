package dbmodels

import (
	"time"

	"meeting-service/internal/models"
)

const TABLE_UNAVAILABILITIES = "unavailabilities"

type DBUnavailability struct {
	Id            string    `db:"id"`
	UserId        string    `db:"user_id"`
	StartDatetime time.Time `db:"start_datetime"`
	EndDatetime   time.Time `db:"end_datetime"`
	Reason        string    `db:"reason"`
	Source        string    `db:"source"`
	CreatedAt     time.Time `db:"created_at"`
}

var SelectUnavailabilityColumns = ColumnList[DBUnavailability]()

func AdaptUnavailability(db DBUnavailability) (models.Unavailability, error) {
	return models.Unavailability{
		ID:            db.Id,
		UserID:        db.UserId,
		StartDateTime: db.StartDatetime,
		EndDateTime:   db.EndDatetime,
		Reason:        db.Reason,
		Source:        models.UnavailabilitySource(db.Source),
		CreatedAt:     db.CreatedAt,
	}, nil
}
