package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, each rendered with a stable code at the API boundary
var (
	// ValidationError is rendered with the http status code 400
	ValidationError = errors.New("validation error")

	// AuthorizationError is rendered with the http status code 403
	AuthorizationError = errors.New("not authorized")

	// ConflictError is rendered with the http status code 400 and the code "conflict"
	ConflictError = errors.New("conflicting booking")

	// StateError is rendered with the http status code 400
	StateError = errors.New("illegal state transition")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// UnauthenticatedError is rendered with the http status code 401
	UnauthenticatedError = errors.New("unauthenticated")
)

// Availability errors
var (
	ErrDuplicateRecurringDay = errors.Wrap(ValidationError, "duplicate day_of_week among recurring windows")
	ErrDuplicateSpecificDate = errors.Wrap(ValidationError, "duplicate specific_date among non-recurring windows")
	ErrOverlappingWindows    = errors.Wrap(ValidationError, "overlapping windows on the same day")
	ErrInvalidWindow         = errors.Wrap(ValidationError, "invalid availability window")
)

// Meeting errors
var (
	ErrRequestorConflict  = errors.Wrap(ConflictError, "requestor already has a meeting in this interval")
	ErrRecipientConflict  = errors.Wrap(ConflictError, "recipient already has a meeting in this interval")
	ErrNotParticipant     = errors.Wrap(AuthorizationError, "user is not a participant of this meeting")
	ErrDuplicateFeedback  = errors.Wrap(ValidationError, "feedback already submitted for this meeting")
	ErrSelfMeeting        = errors.Wrap(ValidationError, "cannot request a meeting with yourself")
	ErrMeetingNotFound    = errors.Wrap(NotFoundError, "meeting not found")
	ErrWindowNotFound     = errors.Wrap(NotFoundError, "availability window not found")
	ErrBlackoutNotFound   = errors.Wrap(NotFoundError, "unavailability not found")
	ErrUnknownUser        = errors.Wrap(NotFoundError, "unknown user")
	ErrMissingCredentials = errors.Wrap(UnauthenticatedError, "missing credentials")
)
