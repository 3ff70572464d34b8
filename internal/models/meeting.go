package models

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

type Meeting struct {
	ID             string
	RequestorID    string
	RecipientID    string
	Title          string
	Description    string
	Date           time.Time
	StartTime      Clock
	EndTime        Clock
	Status         MeetingStatus
	MeetingType    string
	DeclineReason  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ReminderSentAt *time.Time
}

func (m Meeting) Interval() Interval {
	return Interval{Start: m.StartTime, End: m.EndTime}
}

func (m Meeting) IsParticipant(userID string) bool {
	return m.RequestorID == userID || m.RecipientID == userID
}

// OtherParty returns the participant that is not userID.
func (m Meeting) OtherParty(userID string) string {
	if m.RequestorID == userID {
		return m.RecipientID
	}
	return m.RequestorID
}

// StartsAt returns the instant the meeting starts, reading its wall-clock date and time in loc.
func (m Meeting) StartsAt(loc *time.Location) time.Time {
	return m.StartTime.On(m.Date, loc)
}

type CreateMeetingInput struct {
	RecipientID string
	Title       string
	Description string
	Date        time.Time
	StartTime   Clock
	EndTime     Clock
	MeetingType string
}

func (input CreateMeetingInput) Validate(requestorID string) error {
	if input.RecipientID == "" {
		return errors.Wrap(ValidationError, "recipient_id is required")
	}
	if input.RecipientID == requestorID {
		return ErrSelfMeeting
	}
	if strings.TrimSpace(input.Title) == "" {
		return errors.Wrap(ValidationError, "title is required")
	}
	if strings.TrimSpace(input.MeetingType) == "" {
		return errors.Wrap(ValidationError, "meeting_type is required")
	}
	if input.Date.IsZero() {
		return errors.Wrap(ValidationError, "date is required")
	}
	if !(Interval{Start: input.StartTime, End: input.EndTime}).Valid() {
		return errors.Wrap(ValidationError, "start_time must be before end_time")
	}
	return nil
}

// MeetingStatusUpdate is a conditional write: it only applies while the
// meeting is in one of the From statuses.
type MeetingStatusUpdate struct {
	MeetingID     string
	From          []MeetingStatus
	To            MeetingStatus
	DeclineReason *string
}

type ParticipantRole string

const (
	ParticipantRoleAny       ParticipantRole = ""
	ParticipantRoleRequestor ParticipantRole = "requestor"
	ParticipantRoleRecipient ParticipantRole = "recipient"
)

type MeetingFilters struct {
	UserID      string
	Statuses    []MeetingStatus
	MeetingType string
	Role        ParticipantRole
	From        *time.Time
	To          *time.Time
}
