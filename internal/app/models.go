package app

import (
	"time"

	"meeting-service/internal/models"
)

type AvailabilityWindow struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	DayOfWeek    *int      `json:"day_of_week,omitempty"`
	SpecificDate *string   `json:"specific_date,omitempty"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	IsRecurring  bool      `json:"is_recurring"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

type AvailabilityWindowInput struct {
	DayOfWeek    *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	SpecificDate *string `json:"specific_date" binding:"omitempty,datetime=2006-01-02"`
	StartTime    string  `json:"start_time" binding:"required,hhmm"`
	EndTime      string  `json:"end_time" binding:"required,hhmm"`
	IsRecurring  bool    `json:"is_recurring"`
}

func adaptAvailabilityWindow(w models.AvailabilityWindow) AvailabilityWindow {
	out := AvailabilityWindow{
		ID:          w.ID,
		UserID:      w.UserID,
		StartTime:   w.StartTime.String(),
		EndTime:     w.EndTime.String(),
		IsRecurring: w.IsRecurring,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	if w.DayOfWeek != nil {
		day := int(*w.DayOfWeek)
		out.DayOfWeek = &day
	}
	if w.SpecificDate != nil {
		date := w.SpecificDate.Format(time.DateOnly)
		out.SpecificDate = &date
	}
	return out
}

func (input AvailabilityWindowInput) toModel(userID string) (models.AvailabilityWindow, error) {
	start, err := models.ParseClock(input.StartTime)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}
	end, err := models.ParseClock(input.EndTime)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}
	w := models.AvailabilityWindow{
		UserID:      userID,
		StartTime:   start,
		EndTime:     end,
		IsRecurring: input.IsRecurring,
	}
	if input.DayOfWeek != nil {
		day := time.Weekday(*input.DayOfWeek)
		w.DayOfWeek = &day
	}
	if input.SpecificDate != nil {
		date, err := models.ParseDate(*input.SpecificDate)
		if err != nil {
			return models.AvailabilityWindow{}, err
		}
		w.SpecificDate = &date
	}
	return w, nil
}

type SlotsResponse struct {
	Date      string        `json:"date"`
	DayOfWeek int           `json:"day_of_week"`
	Slots     []models.Slot `json:"slots"`
	Outcome   string        `json:"outcome"`
	Message   string        `json:"message"`
}

func adaptSlotsResult(r models.SlotsResult) SlotsResponse {
	slots := r.Slots
	if slots == nil {
		slots = []models.Slot{}
	}
	return SlotsResponse{
		Date:      r.Date.Format(time.DateOnly),
		DayOfWeek: int(r.DayOfWeek),
		Slots:     slots,
		Outcome:   string(r.Outcome),
		Message:   r.Message(),
	}
}

type Unavailability struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	StartDateTime time.Time `json:"start_datetime"`
	EndDateTime   time.Time `json:"end_datetime"`
	Reason        string    `json:"reason"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
}

type UnavailabilityInput struct {
	StartDateTime time.Time `json:"start_datetime" binding:"required"`
	EndDateTime   time.Time `json:"end_datetime" binding:"required"`
	Reason        string    `json:"reason" binding:"max=500"`
}

type GoogleImportInput struct {
	From time.Time `json:"from" binding:"required"`
	To   time.Time `json:"to" binding:"required"`
}

func adaptUnavailability(u models.Unavailability) Unavailability {
	return Unavailability{
		ID:            u.ID,
		UserID:        u.UserID,
		StartDateTime: u.StartDateTime,
		EndDateTime:   u.EndDateTime,
		Reason:        u.Reason,
		Source:        string(u.Source),
		CreatedAt:     u.CreatedAt,
	}
}

type Meeting struct {
	ID            string    `json:"id"`
	RequestorID   string    `json:"requestor_id"`
	RecipientID   string    `json:"recipient_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	MeetingType   string    `json:"meeting_type"`
	DeclineReason *string   `json:"decline_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
	UpdatedAt     time.Time `json:"updated_at,omitzero"`
}

type CreateMeetingInput struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" binding:"required,hhmm"`
	EndTime     string `json:"end_time" binding:"required,hhmm"`
	MeetingType string `json:"meeting_type" binding:"required"`
}

type DeclineInput struct {
	Reason string `json:"reason" binding:"max=1000"`
}

func adaptMeeting(m models.Meeting) Meeting {
	return Meeting{
		ID:            m.ID,
		RequestorID:   m.RequestorID,
		RecipientID:   m.RecipientID,
		Title:         m.Title,
		Description:   m.Description,
		Date:          m.Date.Format(time.DateOnly),
		StartTime:     m.StartTime.String(),
		EndTime:       m.EndTime.String(),
		Status:        string(m.Status),
		MeetingType:   m.MeetingType,
		DeclineReason: m.DeclineReason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (input CreateMeetingInput) toModel() (models.CreateMeetingInput, error) {
	date, err := models.ParseDate(input.Date)
	if err != nil {
		return models.CreateMeetingInput{}, err
	}
	start, err := models.ParseClock(input.StartTime)
	if err != nil {
		return models.CreateMeetingInput{}, err
	}
	end, err := models.ParseClock(input.EndTime)
	if err != nil {
		return models.CreateMeetingInput{}, err
	}
	return models.CreateMeetingInput{
		RecipientID: input.RecipientID,
		Title:       input.Title,
		Description: input.Description,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		MeetingType: input.MeetingType,
	}, nil
}

type FeedbackInput struct {
	SuccessRating  int    `json:"success_rating" binding:"required"`
	PlatformRating int    `json:"platform_rating" binding:"required"`
	Comments       string `json:"comments" binding:"max=2000"`
}

type Feedback struct {
	MeetingID      string    `json:"meeting_id"`
	UserID         string    `json:"user_id"`
	SuccessRating  int       `json:"success_rating"`
	PlatformRating int       `json:"platform_rating"`
	Comments       string    `json:"comments"`
	CreatedAt      time.Time `json:"created_at,omitzero"`
	Completed      bool      `json:"meeting_completed"`
}

func adaptFeedbackResult(r models.FeedbackResult) Feedback {
	return Feedback{
		MeetingID:      r.Feedback.MeetingID,
		UserID:         r.Feedback.UserID,
		SuccessRating:  r.Feedback.SuccessRating,
		PlatformRating: r.Feedback.PlatformRating,
		Comments:       r.Feedback.Comments,
		CreatedAt:      r.Feedback.CreatedAt,
		Completed:      r.Completed,
	}
}
