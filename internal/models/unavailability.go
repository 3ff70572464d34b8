package models

import (
	"time"

	"github.com/cockroachdb/errors"
)

type UnavailabilitySource string

const (
	UnavailabilitySourceManual UnavailabilitySource = "manual"
	UnavailabilitySourceGoogle UnavailabilitySource = "google"
)

// Unavailability is a blackout over availability, possibly spanning several days.
type Unavailability struct {
	ID            string
	UserID        string
	StartDateTime time.Time
	EndDateTime   time.Time
	Reason        string
	Source        UnavailabilitySource
	CreatedAt     time.Time
}

func (u Unavailability) Validate() error {
	if !u.StartDateTime.Before(u.EndDateTime) {
		return errors.Wrap(ValidationError, "start_datetime must be before end_datetime")
	}
	return nil
}

// SameRange reports whether both blackouts cover the same instants.
func (u Unavailability) SameRange(other Unavailability) bool {
	return u.StartDateTime.Equal(other.StartDateTime) && u.EndDateTime.Equal(other.EndDateTime)
}

// BusyInterval is a time range imported from an external calendar.
type BusyInterval struct {
	Start   time.Time
	End     time.Time
	Summary string
}
