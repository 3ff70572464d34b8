package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"meeting-service/internal/models"
)

type NotificationDispatcher struct {
	mock.Mock
}

func (d *NotificationDispatcher) Dispatch(ctx context.Context, events ...models.NotificationEvent) error {
	args := d.Called(events)
	return args.Error(0)
}

type BusyIntervalSource struct {
	mock.Mock
}

func (s *BusyIntervalSource) BusyIntervals(ctx context.Context, credentials string, from, to time.Time) ([]models.BusyInterval, error) {
	args := s.Called(credentials, from, to)
	return args.Get(0).([]models.BusyInterval), args.Error(1)
}
