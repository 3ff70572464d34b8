package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories"
)

type UnavailabilityRepository struct {
	mock.Mock
}

func (r *UnavailabilityRepository) ListUnavailabilities(ctx context.Context, exec repositories.Executor,
	userID string, from, to *time.Time,
) ([]models.Unavailability, error) {
	args := r.Called(exec, userID, from, to)
	return args.Get(0).([]models.Unavailability), args.Error(1)
}

func (r *UnavailabilityRepository) GetUnavailability(ctx context.Context, exec repositories.Executor,
	id string,
) (models.Unavailability, error) {
	args := r.Called(exec, id)
	return args.Get(0).(models.Unavailability), args.Error(1)
}

func (r *UnavailabilityRepository) InsertUnavailability(ctx context.Context, exec repositories.Executor, u models.Unavailability) error {
	args := r.Called(exec, u)
	return args.Error(0)
}

func (r *UnavailabilityRepository) DeleteUnavailability(ctx context.Context, exec repositories.Executor, id string) error {
	args := r.Called(exec, id)
	return args.Error(0)
}
