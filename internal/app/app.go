package app

import (
	"context"
	"time"

	"meeting-service/internal/models"
	"meeting-service/internal/usecases"
)

type availabilityService interface {
	GetAvailability(ctx context.Context, userID string) ([]models.AvailabilityWindow, error)
	ReplaceAvailability(ctx context.Context, actor models.Identity, userID string,
		windows []models.AvailabilityWindow) ([]models.AvailabilityWindow, error)
	DeleteAvailabilityWindow(ctx context.Context, actor models.Identity, id string) error
}

type slotService interface {
	GenerateSlots(ctx context.Context, input usecases.GenerateSlotsInput) (models.SlotsResult, error)
}

type unavailabilityService interface {
	ListUnavailabilities(ctx context.Context, actor models.Identity, userID string,
		from, to *time.Time) ([]models.Unavailability, error)
	CreateUnavailability(ctx context.Context, actor models.Identity,
		input models.Unavailability) (models.Unavailability, error)
	DeleteUnavailability(ctx context.Context, actor models.Identity, id string) error
	ImportBusyIntervals(ctx context.Context, actor models.Identity, userID, credentials string,
		from, to time.Time) ([]models.Unavailability, error)
}

type meetingService interface {
	RequestMeeting(ctx context.Context, actor models.Identity, input models.CreateMeetingInput) (models.Meeting, error)
	AcceptMeeting(ctx context.Context, actor models.Identity, meetingID string) (models.Meeting, error)
	DeclineMeeting(ctx context.Context, actor models.Identity, meetingID, reason string) (models.Meeting, error)
	CancelMeeting(ctx context.Context, actor models.Identity, meetingID string) (models.Meeting, error)
	GetMeeting(ctx context.Context, actor models.Identity, meetingID string) (models.Meeting, error)
	ListMeetings(ctx context.Context, actor models.Identity, filters models.MeetingFilters) ([]models.Meeting, error)
}

type feedbackService interface {
	SubmitFeedback(ctx context.Context, actor models.Identity, feedback models.Feedback) (models.FeedbackResult, error)
}

// oauthFlow is the Google consent flow used to obtain import credentials.
type oauthFlow interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
}

type App struct {
	Availability   availabilityService
	Slots          slotService
	Unavailability unavailabilityService
	Meetings       meetingService
	Feedback       feedbackService
	OAuth          oauthFlow
}

// New builds the handlers on top of uc. oauth may be nil when Google
// Calendar is not configured.
func New(uc usecases.Usecases, oauth oauthFlow) *App {
	return &App{
		Availability:   uc.NewAvailabilityUsecase(),
		Slots:          uc.NewSlotUsecase(),
		Unavailability: uc.NewUnavailabilityUsecase(),
		Meetings:       uc.NewMeetingUsecase(),
		Feedback:       uc.NewFeedbackUsecase(),
		OAuth:          oauth,
	}
}
