package models

import (
	"time"

	"github.com/cockroachdb/errors"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Feedback struct {
	MeetingID      string
	UserID         string
	SuccessRating  int
	PlatformRating int
	Comments       string
	CreatedAt      time.Time
}

func (f Feedback) Validate() error {
	if f.SuccessRating < MinRating || f.SuccessRating > MaxRating {
		return errors.Wrapf(ValidationError, "success_rating must be between %d and %d", MinRating, MaxRating)
	}
	if f.PlatformRating < MinRating || f.PlatformRating > MaxRating {
		return errors.Wrapf(ValidationError, "platform_rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

type FeedbackResult struct {
	Feedback Feedback
	// Completed is true when this submission moved the meeting to completed.
	Completed bool
}
