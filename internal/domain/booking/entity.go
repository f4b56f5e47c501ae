package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	MaxNotesLength   = 500
	MaxReasonLength  = 500
	MaxCommentLength = 500

	MinStars = 1
	MaxStars = 5
)

// ===============================
// Domain Actions
// ===============================

// Transition moves b into status to, stamping the matching timestamp.
// It never touches the booked interval.
func Transition(b *models.Booking, to Status, reason string, now time.Time) error {
	from := Status(b.Status)
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	reason = strings.TrimSpace(reason)
	if RequiresReason(to) && reason == "" {
		return ErrReasonRequired
	}
	if len(reason) > MaxReasonLength {
		return fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	b.Status = string(to)
	switch to {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled, StatusNoShow:
		b.CancelledAt = &now
		b.CancelReason = reason
	}
	b.UpdatedAt = now
	return nil
}

func ValidateStars(stars int) error {
	if stars < MinStars || stars > MaxStars {
		return ErrInvalidStars
	}
	return nil
}
