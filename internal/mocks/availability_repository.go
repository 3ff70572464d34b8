package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories"
)

type AvailabilityRepository struct {
	mock.Mock
}

func (r *AvailabilityRepository) ListAvailabilityWindows(ctx context.Context, exec repositories.Executor,
	userID string,
) ([]models.AvailabilityWindow, error) {
	args := r.Called(exec, userID)
	return args.Get(0).([]models.AvailabilityWindow), args.Error(1)
}

func (r *AvailabilityRepository) ListAvailabilityWindowsForDate(ctx context.Context, exec repositories.Executor,
	userID string, weekday time.Weekday, date time.Time,
) ([]models.AvailabilityWindow, error) {
	args := r.Called(exec, userID, weekday, date)
	return args.Get(0).([]models.AvailabilityWindow), args.Error(1)
}

func (r *AvailabilityRepository) GetAvailabilityWindow(ctx context.Context, exec repositories.Executor,
	id string,
) (models.AvailabilityWindow, error) {
	args := r.Called(exec, id)
	return args.Get(0).(models.AvailabilityWindow), args.Error(1)
}

func (r *AvailabilityRepository) InsertAvailabilityWindow(ctx context.Context, exec repositories.Executor, w models.AvailabilityWindow) error {
	args := r.Called(exec, w)
	return args.Error(0)
}

func (r *AvailabilityRepository) UpdateAvailabilityWindow(ctx context.Context, exec repositories.Executor, w models.AvailabilityWindow) error {
	args := r.Called(exec, w)
	return args.Error(0)
}

func (r *AvailabilityRepository) DeleteAvailabilityWindows(ctx context.Context, exec repositories.Executor, ids []string) error {
	args := r.Called(exec, ids)
	return args.Error(0)
}

func (r *AvailabilityRepository) LockUserCalendars(ctx context.Context, exec repositories.Executor, userIDs ...string) error {
	args := r.Called(exec, userIDs)
	return args.Error(0)
}
