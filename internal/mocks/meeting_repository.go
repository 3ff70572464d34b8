package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories"
)

// MeetingRepository covers meetings, their feedback, calendar locks and the
// user directory.
type MeetingRepository struct {
	mock.Mock
}

func (r *MeetingRepository) GetMeeting(ctx context.Context, exec repositories.Executor,
	id string, forUpdate bool,
) (models.Meeting, error) {
	args := r.Called(exec, id, forUpdate)
	return args.Get(0).(models.Meeting), args.Error(1)
}

func (r *MeetingRepository) ListMeetings(ctx context.Context, exec repositories.Executor,
	filters models.MeetingFilters,
) ([]models.Meeting, error) {
	args := r.Called(exec, filters)
	return args.Get(0).([]models.Meeting), args.Error(1)
}

func (r *MeetingRepository) ListActiveMeetingsOnDate(ctx context.Context, exec repositories.Executor,
	userID string, date time.Time,
) ([]models.Meeting, error) {
	args := r.Called(exec, userID, date)
	return args.Get(0).([]models.Meeting), args.Error(1)
}

func (r *MeetingRepository) InsertMeeting(ctx context.Context, exec repositories.Executor, m models.Meeting) error {
	args := r.Called(exec, m)
	return args.Error(0)
}

func (r *MeetingRepository) UpdateMeetingStatus(ctx context.Context, exec repositories.Executor,
	update models.MeetingStatusUpdate,
) error {
	args := r.Called(exec, update)
	return args.Error(0)
}

func (r *MeetingRepository) ListMeetingsStartingBetween(ctx context.Context, exec repositories.Executor,
	status models.MeetingStatus, from, to time.Time, onlyUnreminded bool,
) ([]models.Meeting, error) {
	args := r.Called(exec, status, from, to, onlyUnreminded)
	return args.Get(0).([]models.Meeting), args.Error(1)
}

func (r *MeetingRepository) MarkReminderSent(ctx context.Context, exec repositories.Executor,
	meetingID string, at time.Time,
) error {
	args := r.Called(exec, meetingID, at)
	return args.Error(0)
}

func (r *MeetingRepository) GetUser(ctx context.Context, exec repositories.Executor, userID string) (models.User, error) {
	args := r.Called(exec, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (r *MeetingRepository) LockUserCalendars(ctx context.Context, exec repositories.Executor, userIDs ...string) error {
	args := r.Called(exec, userIDs)
	return args.Error(0)
}

func (r *MeetingRepository) HasFeedback(ctx context.Context, exec repositories.Executor, meetingID, userID string) (bool, error) {
	args := r.Called(exec, meetingID, userID)
	return args.Bool(0), args.Error(1)
}

func (r *MeetingRepository) InsertFeedback(ctx context.Context, exec repositories.Executor, f models.Feedback) error {
	args := r.Called(exec, f)
	return args.Error(0)
}
