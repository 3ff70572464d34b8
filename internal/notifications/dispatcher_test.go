package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"meeting-service/internal/models"
)

type inserterMock struct {
	mock.Mock
}

func (m *inserterMock) InsertMany(ctx context.Context, params []river.InsertManyParams) ([]*rivertype.JobInsertResult, error) {
	args := m.Called(params)
	return args.Get(0).([]*rivertype.JobInsertResult), args.Error(1)
}

func TestQueueDispatcher_enqueuesOneJobPerEvent(t *testing.T) {
	inserter := new(inserterMock)
	var captured []river.InsertManyParams
	inserter.On("InsertMany", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(0).([]river.InsertManyParams) }).
		Return([]*rivertype.JobInsertResult{{}, {}}, nil)

	err := NewQueueDispatcher(inserter).Dispatch(context.Background(),
		models.NotificationEvent{RecipientUserID: "u1", Kind: models.NotificationMeetingRequested, Priority: models.PriorityHigh},
		models.NotificationEvent{RecipientUserID: "u2", Kind: models.NotificationMeetingReminder, Priority: models.PriorityLow},
	)

	require.NoError(t, err)
	require.Len(t, captured, 2)
	assert.Equal(t, "u1", captured[0].Args.(NotificationArgs).Event.RecipientUserID)
	assert.Equal(t, 1, captured[0].InsertOpts.Priority)
	assert.Equal(t, 3, captured[1].InsertOpts.Priority)
	assert.Equal(t, QueueNotifications, captured[1].InsertOpts.Queue)
}

func TestQueueDispatcher_unknownPriorityIsNormal(t *testing.T) {
	inserter := new(inserterMock)
	var captured []river.InsertManyParams
	inserter.On("InsertMany", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(0).([]river.InsertManyParams) }).
		Return([]*rivertype.JobInsertResult{{}}, nil)

	err := NewQueueDispatcher(inserter).Dispatch(context.Background(), models.NotificationEvent{RecipientUserID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, 2, captured[0].InsertOpts.Priority)
}

func TestQueueDispatcher_noEvents(t *testing.T) {
	inserter := new(inserterMock)

	assert.NoError(t, NewQueueDispatcher(inserter).Dispatch(context.Background()))
	inserter.AssertNotCalled(t, "InsertMany", mock.Anything)
}

func TestQueueDispatcher_insertFailure(t *testing.T) {
	inserter := new(inserterMock)
	inserter.On("InsertMany", mock.Anything).Return([]*rivertype.JobInsertResult(nil), errors.New("connection reset"))

	err := NewQueueDispatcher(inserter).Dispatch(context.Background(), models.NotificationEvent{RecipientUserID: "u1"})

	assert.ErrorContains(t, err, "connection reset")
}

func TestNotificationArgs_kind(t *testing.T) {
	assert.Equal(t, "meeting_notification", NotificationArgs{}.Kind())
}
