package app

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"meeting-service/internal/models"
	"meeting-service/internal/usecases"
)

type availabilityMock struct{ mock.Mock }

func (m *availabilityMock) GetAvailability(ctx context.Context, userID string) ([]models.AvailabilityWindow, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.AvailabilityWindow), args.Error(1)
}

func (m *availabilityMock) ReplaceAvailability(ctx context.Context, actor models.Identity, userID string,
	windows []models.AvailabilityWindow,
) ([]models.AvailabilityWindow, error) {
	args := m.Called(actor, userID, windows)
	return args.Get(0).([]models.AvailabilityWindow), args.Error(1)
}

func (m *availabilityMock) DeleteAvailabilityWindow(ctx context.Context, actor models.Identity, id string) error {
	return m.Called(actor, id).Error(0)
}

type slotsMock struct{ mock.Mock }

func (m *slotsMock) GenerateSlots(ctx context.Context, input usecases.GenerateSlotsInput) (models.SlotsResult, error) {
	args := m.Called(input)
	return args.Get(0).(models.SlotsResult), args.Error(1)
}

type unavailabilityMock struct{ mock.Mock }

func (m *unavailabilityMock) ListUnavailabilities(ctx context.Context, actor models.Identity, userID string,
	from, to *time.Time,
) ([]models.Unavailability, error) {
	args := m.Called(actor, userID, from, to)
	return args.Get(0).([]models.Unavailability), args.Error(1)
}

func (m *unavailabilityMock) CreateUnavailability(ctx context.Context, actor models.Identity,
	input models.Unavailability,
) (models.Unavailability, error) {
	args := m.Called(actor, input)
	return args.Get(0).(models.Unavailability), args.Error(1)
}

func (m *unavailabilityMock) DeleteUnavailability(ctx context.Context, actor models.Identity, id string) error {
	return m.Called(actor, id).Error(0)
}

func (m *unavailabilityMock) ImportBusyIntervals(ctx context.Context, actor models.Identity, userID, credentials string,
	from, to time.Time,
) ([]models.Unavailability, error) {
	args := m.Called(actor, userID, credentials, from, to)
	return args.Get(0).([]models.Unavailability), args.Error(1)
}

type meetingsMock struct{ mock.Mock }

func (m *meetingsMock) RequestMeeting(ctx context.Context, actor models.Identity, input models.CreateMeetingInput) (models.Meeting, error) {
	args := m.Called(actor, input)
	return args.Get(0).(models.Meeting), args.Error(1)
}

func (m *meetingsMock) AcceptMeeting(ctx context.Context, actor models.Identity, meetingID string) (models.Meeting, error) {
	args := m.Called(actor, meetingID)
	return args.Get(0).(models.Meeting), args.Error(1)
}

func (m *meetingsMock) DeclineMeeting(ctx context.Context, actor models.Identity, meetingID, reason string) (models.Meeting, error) {
	args := m.Called(actor, meetingID, reason)
	return args.Get(0).(models.Meeting), args.Error(1)
}

func (m *meetingsMock) CancelMeeting(ctx context.Context, actor models.Identity, meetingID string) (models.Meeting, error) {
	args := m.Called(actor, meetingID)
	return args.Get(0).(models.Meeting), args.Error(1)
}

func (m *meetingsMock) GetMeeting(ctx context.Context, actor models.Identity, meetingID string) (models.Meeting, error) {
	args := m.Called(actor, meetingID)
	return args.Get(0).(models.Meeting), args.Error(1)
}

func (m *meetingsMock) ListMeetings(ctx context.Context, actor models.Identity, filters models.MeetingFilters) ([]models.Meeting, error) {
	args := m.Called(actor, filters)
	return args.Get(0).([]models.Meeting), args.Error(1)
}

type feedbackMock struct{ mock.Mock }

func (m *feedbackMock) SubmitFeedback(ctx context.Context, actor models.Identity, feedback models.Feedback) (models.FeedbackResult, error) {
	args := m.Called(actor, feedback)
	return args.Get(0).(models.FeedbackResult), args.Error(1)
}
