package models

import (
	"slices"

	"github.com/cockroachdb/errors"
)

type MeetingStatus string

const (
	MeetingRequested MeetingStatus = "requested"
	MeetingAccepted  MeetingStatus = "accepted"
	MeetingDeclined  MeetingStatus = "declined"
	MeetingCancelled MeetingStatus = "cancelled"
	MeetingCompleted MeetingStatus = "completed"
)

// ActiveMeetingStatuses are the statuses that occupy a calendar.
var ActiveMeetingStatuses = []MeetingStatus{MeetingRequested, MeetingAccepted}

func MeetingStatusFromString(s string) (MeetingStatus, error) {
	status := MeetingStatus(s)
	switch status {
	case MeetingRequested, MeetingAccepted, MeetingDeclined, MeetingCancelled, MeetingCompleted:
		return status, nil
	}
	return "", errors.Wrapf(ValidationError, "unknown meeting status %q", s)
}

func (s MeetingStatus) IsActive() bool {
	return slices.Contains(ActiveMeetingStatuses, s)
}

func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingDeclined || s == MeetingCancelled || s == MeetingCompleted
}

type MeetingAction string

const (
	ActionAccept   MeetingAction = "accept"
	ActionDecline  MeetingAction = "decline"
	ActionCancel   MeetingAction = "cancel"
	ActionComplete MeetingAction = "complete"
	ActionExpire   MeetingAction = "expire"
)

type actorKind int

const (
	actorRequestor actorKind = 1 << iota
	actorRecipient
	actorFeedback
	actorSystem
)

type transition struct {
	from   []MeetingStatus
	to     MeetingStatus
	actors actorKind
}

var transitions = map[MeetingAction]transition{
	ActionAccept:   {from: []MeetingStatus{MeetingRequested}, to: MeetingAccepted, actors: actorRecipient},
	ActionDecline:  {from: []MeetingStatus{MeetingRequested}, to: MeetingDeclined, actors: actorRecipient},
	ActionCancel:   {from: []MeetingStatus{MeetingRequested, MeetingAccepted}, to: MeetingCancelled, actors: actorRequestor | actorRecipient},
	ActionComplete: {from: []MeetingStatus{MeetingAccepted, MeetingCompleted}, to: MeetingCompleted, actors: actorFeedback},
	ActionExpire:   {from: []MeetingStatus{MeetingRequested}, to: MeetingCancelled, actors: actorSystem},
}

// Actor is whoever drives a transition: a participant, a feedback submission
// by a participant, or the background scheduler.
type Actor struct {
	UserID   string
	feedback bool
	system   bool
}

func UserActor(userID string) Actor     { return Actor{UserID: userID} }
func FeedbackActor(userID string) Actor { return Actor{UserID: userID, feedback: true} }
func SystemActor() Actor                { return Actor{system: true} }

func (a Actor) kindFor(m Meeting) actorKind {
	switch {
	case a.system:
		return actorSystem
	case a.feedback && m.IsParticipant(a.UserID):
		return actorFeedback
	case a.feedback:
		return 0
	case a.UserID == m.RecipientID:
		return actorRecipient
	case a.UserID == m.RequestorID:
		return actorRequestor
	}
	return 0
}

// NextStatus validates that actor may apply action to the meeting and returns
// the resulting status. The actor check runs first, so a stranger probing a
// meeting learns nothing about its status.
func NextStatus(m Meeting, action MeetingAction, actor Actor) (MeetingStatus, error) {
	t, ok := transitions[action]
	if !ok {
		return "", errors.Wrapf(ValidationError, "unknown action %q", action)
	}
	if actor.kindFor(m)&t.actors == 0 {
		return "", errors.Wrapf(AuthorizationError, "user %q may not %s this meeting", actor.UserID, action)
	}
	if !slices.Contains(t.from, m.Status) {
		return "", errors.Wrapf(StateError, "cannot %s a meeting that is %s", action, m.Status)
	}
	return t.to, nil
}

// SourceStatuses lists the statuses action may start from.
func SourceStatuses(action MeetingAction) []MeetingStatus {
	return slices.Clone(transitions[action].from)
}
