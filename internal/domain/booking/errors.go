package booking

import "errors"

// Kind groups errors by the recovery a caller should attempt.
type Kind string

const (
	KindInput    Kind = "input"
	KindConflict Kind = "conflict"
	KindState    Kind = "state"
	KindNotFound Kind = "not_found"
	KindInternal Kind = "internal"
)

// Error is a business error carrying a stable code for API responses.
type Error struct {
	Kind Kind
	Code string
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, msg: msg}
}

var (
	// input
	ErrInvalidInput        = newError(KindInput, "invalid_request", "booking: invalid input")
	ErrInvalidDuration     = newError(KindInput, "invalid_duration", "booking: service duration must be positive")
	ErrInvalidStep         = newError(KindInput, "invalid_step", "booking: slot step must be positive")
	ErrInvalidDateTime     = newError(KindInput, "invalid_date_or_time", "booking: invalid date or time")
	ErrPastSlot            = newError(KindInput, "past_slot", "booking: requested time is in the past")
	ErrTooSoon             = newError(KindInput, "too_soon", "booking: requested time violates the minimum notice")
	ErrTooFarAhead         = newError(KindInput, "too_far_ahead", "booking: requested date is too far in the future")
	ErrServiceInactive     = newError(KindInput, "service_inactive", "booking: service is not active")
	ErrReasonRequired      = newError(KindInput, "reason_required", "booking: a reason is required for this status")
	ErrInvalidStars        = newError(KindInput, "invalid_stars", "booking: stars must be an integer between 1 and 5")
	ErrInvalidWorkingHours = newError(KindInput, "invalid_working_hours", "booking: invalid working hours")
	ErrInvalidBlockedTime  = newError(KindInput, "invalid_blocked_time", "booking: invalid blocked time")

	// conflict
	ErrSlotTaken         = newError(KindConflict, "slot_taken", "booking: slot already taken")
	ErrSlotUnavailable   = newError(KindConflict, "slot_unavailable", "booking: slot is not bookable")
	ErrTransientConflict = newError(KindConflict, "transient_conflict", "booking: transient storage conflict")

	// state
	ErrIllegalTransition = newError(KindState, "illegal_transition", "booking: illegal status transition")
	ErrNotCompleted      = newError(KindState, "not_completed", "booking: booking is not completed")
	ErrAlreadyRated      = newError(KindState, "already_rated", "booking: booking already rated")

	// not found
	ErrBookingNotFound     = newError(KindNotFound, "booking_not_found", "booking: booking not found")
	ErrServiceNotFound     = newError(KindNotFound, "service_not_found", "booking: service not found")
	ErrBlockedTimeNotFound = newError(KindNotFound, "blocked_time_not_found", "booking: blocked time not found")
)

// KindOf reports the kind of the first business error in err's chain.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

// CodeOf returns the API code of the first business error in err's chain.
func CodeOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return "internal_error"
}
