package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"meeting-service/internal/mocks"
	"meeting-service/internal/models"
)

type FeedbackUsecaseTestSuite struct {
	suite.Suite
	transaction        *mocks.Transaction
	transactionFactory *mocks.TransactionFactory
	repository         *mocks.MeetingRepository

	ctx       context.Context
	requestor models.Identity
	recipient models.Identity
	stranger  models.Identity
}

func (suite *FeedbackUsecaseTestSuite) SetupTest() {
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.repository = new(mocks.MeetingRepository)

	suite.ctx = context.Background()
	suite.requestor = models.Identity{UserID: "requestor", Role: models.RoleStudent}
	suite.recipient = models.Identity{UserID: "recipient", Role: models.RoleCompany}
	suite.stranger = models.Identity{UserID: "stranger", Role: models.RoleStudent}
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
}

func (suite *FeedbackUsecaseTestSuite) makeUsecase() *FeedbackUsecase {
	return &FeedbackUsecase{
		transactionFactory: suite.transactionFactory,
		repository:         suite.repository,
	}
}

func (suite *FeedbackUsecaseTestSuite) meetingIn(status models.MeetingStatus) models.Meeting {
	return models.Meeting{
		ID:          "m1",
		RequestorID: suite.requestor.UserID,
		RecipientID: suite.recipient.UserID,
		Date:        time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		StartTime:   models.MustParseClock("10:00"),
		EndTime:     models.MustParseClock("10:30"),
		Status:      status,
	}
}

func feedback(success, platform int) models.Feedback {
	return models.Feedback{MeetingID: "m1", SuccessRating: success, PlatformRating: platform, Comments: "Helpful"}
}

func (suite *FeedbackUsecaseTestSuite) TestSubmitFeedback_completesAcceptedMeeting() {
	suite.repository.On("GetMeeting", suite.transaction, "m1", true).Return(suite.meetingIn(models.MeetingAccepted), nil)
	suite.repository.On("HasFeedback", suite.transaction, "m1", suite.requestor.UserID).Return(false, nil)
	suite.repository.On("InsertFeedback", suite.transaction, mock.MatchedBy(func(f models.Feedback) bool {
		return f.UserID == suite.requestor.UserID && f.SuccessRating == 4
	})).Return(nil)
	suite.repository.On("UpdateMeetingStatus", suite.transaction, models.MeetingStatusUpdate{
		MeetingID: "m1",
		From:      []models.MeetingStatus{models.MeetingAccepted},
		To:        models.MeetingCompleted,
	}).Return(nil).Once()

	result, err := suite.makeUsecase().SubmitFeedback(suite.ctx, suite.requestor, feedback(4, 5))

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), result.Completed)
	suite.repository.AssertExpectations(suite.T())
}

func (suite *FeedbackUsecaseTestSuite) TestSubmitFeedback_onCompletedMeetingOnlyStores() {
	suite.repository.On("GetMeeting", suite.transaction, "m1", true).Return(suite.meetingIn(models.MeetingCompleted), nil)
	suite.repository.On("HasFeedback", suite.transaction, "m1", suite.recipient.UserID).Return(false, nil)
	suite.repository.On("InsertFeedback", suite.transaction, mock.Anything).Return(nil)

	result, err := suite.makeUsecase().SubmitFeedback(suite.ctx, suite.recipient, feedback(3, 3))

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), result.Completed)
	suite.repository.AssertNotCalled(suite.T(), "UpdateMeetingStatus", mock.Anything, mock.Anything)
}

func (suite *FeedbackUsecaseTestSuite) TestSubmitFeedback_duplicate() {
	suite.repository.On("GetMeeting", suite.transaction, "m1", true).Return(suite.meetingIn(models.MeetingCompleted), nil)
	suite.repository.On("HasFeedback", suite.transaction, "m1", suite.requestor.UserID).Return(true, nil)

	_, err := suite.makeUsecase().SubmitFeedback(suite.ctx, suite.requestor, feedback(4, 4))

	assert.ErrorIs(suite.T(), err, models.ErrDuplicateFeedback)
	assert.ErrorIs(suite.T(), err, models.ValidationError)
	suite.repository.AssertNotCalled(suite.T(), "InsertFeedback", mock.Anything, mock.Anything)
}

func (suite *FeedbackUsecaseTestSuite) TestSubmitFeedback_rejections() {
	tests := []struct {
		name     string
		actor    models.Identity
		status   models.MeetingStatus
		feedback models.Feedback
		target   error
	}{
		{"stranger", suite.stranger, models.MeetingAccepted, feedback(4, 4), models.AuthorizationError},
		{"still requested", suite.requestor, models.MeetingRequested, feedback(4, 4), models.StateError},
		{"cancelled", suite.recipient, models.MeetingCancelled, feedback(4, 4), models.StateError},
		{"rating too high", suite.requestor, models.MeetingAccepted, feedback(6, 4), models.ValidationError},
		{"rating too low", suite.requestor, models.MeetingAccepted, feedback(4, 0), models.ValidationError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			repository := new(mocks.MeetingRepository)
			repository.On("GetMeeting", suite.transaction, "m1", true).Return(suite.meetingIn(tt.status), nil)
			usecase := &FeedbackUsecase{transactionFactory: suite.transactionFactory, repository: repository}

			_, err := usecase.SubmitFeedback(suite.ctx, tt.actor, tt.feedback)

			assert.ErrorIs(suite.T(), err, tt.target)
			repository.AssertNotCalled(suite.T(), "InsertFeedback", mock.Anything, mock.Anything)
			repository.AssertNotCalled(suite.T(), "UpdateMeetingStatus", mock.Anything, mock.Anything)
		})
	}
}

func (suite *FeedbackUsecaseTestSuite) TestSubmitFeedback_unknownMeeting() {
	suite.repository.On("GetMeeting", suite.transaction, "m1", true).Return(models.Meeting{}, models.ErrMeetingNotFound)

	_, err := suite.makeUsecase().SubmitFeedback(suite.ctx, suite.requestor, feedback(4, 4))

	assert.ErrorIs(suite.T(), err, models.NotFoundError)
}

func TestFeedbackUsecase(t *testing.T) {
	suite.Run(t, new(FeedbackUsecaseTestSuite))
}
