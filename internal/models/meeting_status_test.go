package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	requestor = "user-requestor"
	recipient = "user-recipient"
	stranger  = "user-stranger"
)

func meetingIn(status MeetingStatus) Meeting {
	return Meeting{ID: "m1", RequestorID: requestor, RecipientID: recipient, Status: status}
}

func TestNextStatus_legalTransitions(t *testing.T) {
	cases := []struct {
		from     MeetingStatus
		action   MeetingAction
		actor    Actor
		expected MeetingStatus
	}{
		{MeetingRequested, ActionAccept, UserActor(recipient), MeetingAccepted},
		{MeetingRequested, ActionDecline, UserActor(recipient), MeetingDeclined},
		{MeetingRequested, ActionCancel, UserActor(requestor), MeetingCancelled},
		{MeetingRequested, ActionCancel, UserActor(recipient), MeetingCancelled},
		{MeetingAccepted, ActionCancel, UserActor(requestor), MeetingCancelled},
		{MeetingAccepted, ActionCancel, UserActor(recipient), MeetingCancelled},
		{MeetingAccepted, ActionComplete, FeedbackActor(requestor), MeetingCompleted},
		{MeetingCompleted, ActionComplete, FeedbackActor(recipient), MeetingCompleted},
		{MeetingRequested, ActionExpire, SystemActor(), MeetingCancelled},
	}
	for _, c := range cases {
		next, err := NextStatus(meetingIn(c.from), c.action, c.actor)
		assert.NoError(t, err, "%s from %s", c.action, c.from)
		assert.Equal(t, c.expected, next, "%s from %s", c.action, c.from)
	}
}

func TestNextStatus_wrongSourceStatus(t *testing.T) {
	cases := []struct {
		from   MeetingStatus
		action MeetingAction
		actor  Actor
	}{
		{MeetingAccepted, ActionAccept, UserActor(recipient)},
		{MeetingDeclined, ActionAccept, UserActor(recipient)},
		{MeetingAccepted, ActionDecline, UserActor(recipient)},
		{MeetingCancelled, ActionDecline, UserActor(recipient)},
		{MeetingDeclined, ActionCancel, UserActor(requestor)},
		{MeetingCompleted, ActionCancel, UserActor(recipient)},
		{MeetingCancelled, ActionCancel, UserActor(requestor)},
		{MeetingRequested, ActionComplete, FeedbackActor(requestor)},
		{MeetingAccepted, ActionExpire, SystemActor()},
	}
	for _, c := range cases {
		_, err := NextStatus(meetingIn(c.from), c.action, c.actor)
		assert.ErrorIs(t, err, StateError, "%s from %s", c.action, c.from)
	}
}

func TestNextStatus_wrongActor(t *testing.T) {
	cases := []struct {
		action MeetingAction
		actor  Actor
	}{
		{ActionAccept, UserActor(requestor)},
		{ActionDecline, UserActor(requestor)},
		{ActionAccept, UserActor(stranger)},
		{ActionCancel, UserActor(stranger)},
		{ActionComplete, FeedbackActor(stranger)},
		{ActionComplete, UserActor(recipient)},
		{ActionExpire, UserActor(requestor)},
	}
	for _, c := range cases {
		_, err := NextStatus(meetingIn(MeetingRequested), c.action, c.actor)
		assert.ErrorIs(t, err, AuthorizationError, "%s by %s", c.action, c.actor.UserID)
	}
}

func TestMeetingStatusFromString(t *testing.T) {
	s, err := MeetingStatusFromString("accepted")
	assert.NoError(t, err)
	assert.Equal(t, MeetingAccepted, s)

	_, err = MeetingStatusFromString("pending")
	assert.ErrorIs(t, err, ValidationError)
}

func TestRoleFromClaim(t *testing.T) {
	assert.Equal(t, RoleCounselor, RoleFromClaim("Counselor"))
	assert.Equal(t, RoleAdmin, RoleFromClaim(float64(4)))
	assert.Equal(t, RoleStudent, RoleFromClaim("1"))
	assert.Equal(t, RoleUnknown, RoleFromClaim(nil))
	assert.Equal(t, RoleUnknown, RoleFromClaim("janitor"))
}
