package dbmodels

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"meeting-service/internal/models"
)

const (
	TABLE_MEETINGS         = "meetings"
	TABLE_MEETING_FEEDBACK = "meeting_feedback"
	TABLE_USERS            = "users"
)

type DBMeeting struct {
	Id             string             `db:"id"`
	RequestorId    string             `db:"requestor_id"`
	RecipientId    string             `db:"recipient_id"`
	Title          string             `db:"title"`
	Description    string             `db:"description"`
	Date           pgtype.Date        `db:"date"`
	StartTime      pgtype.Time        `db:"start_time"`
	EndTime        pgtype.Time        `db:"end_time"`
	Status         string             `db:"status"`
	MeetingType    string             `db:"meeting_type"`
	DeclineReason  pgtype.Text        `db:"decline_reason"`
	CreatedAt      time.Time          `db:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at"`
	ReminderSentAt pgtype.Timestamptz `db:"reminder_sent_at"`
}

var SelectMeetingColumns = ColumnList[DBMeeting]()

func AdaptMeeting(db DBMeeting) (models.Meeting, error) {
	status, err := models.MeetingStatusFromString(db.Status)
	if err != nil {
		return models.Meeting{}, err
	}
	m := models.Meeting{
		ID:          db.Id,
		RequestorID: db.RequestorId,
		RecipientID: db.RecipientId,
		Title:       db.Title,
		Description: db.Description,
		Date:        models.CalendarDate(db.Date.Time),
		StartTime:   ClockFromPg(db.StartTime),
		EndTime:     ClockFromPg(db.EndTime),
		Status:      status,
		MeetingType: db.MeetingType,
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   db.UpdatedAt,
	}
	if db.DeclineReason.Valid {
		m.DeclineReason = &db.DeclineReason.String
	}
	if db.ReminderSentAt.Valid {
		m.ReminderSentAt = &db.ReminderSentAt.Time
	}
	return m, nil
}

type DBFeedback struct {
	MeetingId      string    `db:"meeting_id"`
	UserId         string    `db:"user_id"`
	SuccessRating  int32     `db:"success_rating"`
	PlatformRating int32     `db:"platform_rating"`
	Comments       string    `db:"comments"`
	CreatedAt      time.Time `db:"created_at"`
}

var SelectFeedbackColumns = ColumnList[DBFeedback]()

func AdaptFeedback(db DBFeedback) (models.Feedback, error) {
	return models.Feedback{
		MeetingID:      db.MeetingId,
		UserID:         db.UserId,
		SuccessRating:  int(db.SuccessRating),
		PlatformRating: int(db.PlatformRating),
		Comments:       db.Comments,
		CreatedAt:      db.CreatedAt,
	}, nil
}

type DBUser struct {
	Id   string `db:"id"`
	Role string `db:"role"`
}

func AdaptUser(db DBUser) (models.User, error) {
	return models.User{ID: db.Id, Role: models.RoleFromString(db.Role)}, nil
}
