package booking

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}
	allowed := map[string]bool{
		"pending->confirmed":   true,
		"pending->completed":   true,
		"pending->cancelled":   true,
		"confirmed->completed": true,
		"confirmed->no_show":   true,
		"confirmed->cancelled": true,
	}

	for _, from := range all {
		for _, to := range all {
			key := fmt.Sprintf("%s->%s", from, to)
			assert.Equal(t, allowed[key], CanTransition(from, to), key)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusPending.Occupies())
	assert.True(t, StatusCompleted.Occupies())
	assert.False(t, StatusCancelled.Occupies())
	assert.False(t, StatusNoShow.Occupies())

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())

	_, ok := ParseStatus("archived")
	assert.False(t, ok)
	st, ok := ParseStatus("no_show")
	assert.True(t, ok)
	assert.Equal(t, StatusNoShow, st)
	assert.Equal(t, StatusPending, InitialStatus())
}

func TestTransition(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	start := now.Add(2 * time.Hour)

	newBooking := func() *models.Booking {
		return &models.Booking{Status: string(StatusPending), StartTime: start, EndTime: start.Add(time.Hour)}
	}

	t.Run("confirm stamps confirmed_at", func(t *testing.T) {
		b := newBooking()
		require.NoError(t, Transition(b, StatusConfirmed, "", now))
		assert.Equal(t, string(StatusConfirmed), b.Status)
		require.NotNil(t, b.ConfirmedAt)
		assert.True(t, b.ConfirmedAt.Equal(now))
		assert.True(t, b.StartTime.Equal(start), "interval untouched")
	})

	t.Run("cancel needs a reason", func(t *testing.T) {
		b := newBooking()
		assert.ErrorIs(t, Transition(b, StatusCancelled, "   ", now), ErrReasonRequired)
		assert.Equal(t, string(StatusPending), b.Status)

		require.NoError(t, Transition(b, StatusCancelled, " cliente desistiu ", now))
		assert.Equal(t, "cliente desistiu", b.CancelReason)
		assert.NotNil(t, b.CancelledAt)
	})

	t.Run("reason length is bounded", func(t *testing.T) {
		b := newBooking()
		err := Transition(b, StatusCancelled, strings.Repeat("x", MaxReasonLength+1), now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("illegal transition is checked before the reason", func(t *testing.T) {
		b := newBooking()
		b.Status = string(StatusCompleted)
		assert.ErrorIs(t, Transition(b, StatusCancelled, "", now), ErrIllegalTransition)
	})

	t.Run("no_show only from confirmed", func(t *testing.T) {
		b := newBooking()
		assert.ErrorIs(t, Transition(b, StatusNoShow, "faltou", now), ErrIllegalTransition)

		require.NoError(t, Transition(b, StatusConfirmed, "", now))
		require.NoError(t, Transition(b, StatusNoShow, "faltou", now))
		assert.Equal(t, "faltou", b.CancelReason)
	})
}

func TestValidateStars(t *testing.T) {
	for _, s := range []int{1, 3, 5} {
		assert.NoError(t, ValidateStars(s))
	}
	for _, s := range []int{0, 6, -1} {
		assert.ErrorIs(t, ValidateStars(s), ErrInvalidStars)
	}
}

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("%w: 10:00", ErrSlotTaken)
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, "slot_taken", CodeOf(wrapped))

	assert.Equal(t, KindState, KindOf(ErrAlreadyRated))
	assert.Equal(t, KindNotFound, KindOf(ErrBookingNotFound))
	assert.Equal(t, KindInput, KindOf(ErrTooSoon))

	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("boom")))
	assert.Equal(t, "internal_error", CodeOf(fmt.Errorf("boom")))
}
