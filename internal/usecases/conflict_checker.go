package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories"
)

type ConflictRepository interface {
	ListActiveMeetingsOnDate(ctx context.Context, exec repositories.Executor, userID string, date time.Time) ([]models.Meeting, error)
}

// ConflictChecker guards the "no overlapping active meetings per user" rule.
// Both calendars are locked before the check and stay locked until the
// caller's transaction ends, so the check and the write that follows it
// cannot interleave with another booking of the same users.
type ConflictChecker struct {
	locker     calendarLocker
	repository ConflictRepository
}

// LockAndCheck must run inside a transaction. meeting may already be stored
// (accepting a request): it is never compared with itself.
func (checker *ConflictChecker) LockAndCheck(ctx context.Context, tx repositories.Executor, meeting models.Meeting) error {
	if err := checker.locker.LockUserCalendars(ctx, tx, meeting.RequestorID, meeting.RecipientID); err != nil {
		return err
	}

	parties := []struct {
		userID   string
		conflict error
	}{
		{meeting.RequestorID, models.ErrRequestorConflict},
		{meeting.RecipientID, models.ErrRecipientConflict},
	}
	for _, party := range parties {
		booked, err := checker.repository.ListActiveMeetingsOnDate(ctx, tx, party.userID, meeting.Date)
		if err != nil {
			return err
		}
		for _, other := range booked {
			if other.ID == meeting.ID {
				continue
			}
			if other.Interval().Overlaps(meeting.Interval()) {
				return errors.Wrapf(party.conflict, "meeting %s from %s to %s", other.ID, other.StartTime, other.EndTime)
			}
		}
	}
	return nil
}
