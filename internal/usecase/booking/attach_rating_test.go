package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
)

func (f *fixture) rater() *AttachRating {
	return NewAttachRating(f.store, f.store, f.pub, nil)
}

func TestAttachRating(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "cust-1", "2026-10-19", "10:00")
	ctx := context.Background()

	in := AttachRatingInput{BookingID: b.ID, CustomerID: "cust-1", Stars: 5, Comment: "top"}

	_, err := f.rater().Execute(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotCompleted)

	_, err = f.lifecycle().Complete(ctx, b.ID, barberID)
	require.NoError(t, err)

	r, err := f.rater().Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Stars)
	assert.Equal(t, f.service.ID, r.ServiceID)

	_, err = f.rater().Execute(ctx, in)
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)

	attached := f.pub.ofType(events.RatingAttached)
	require.Len(t, attached, 1)
	assert.Equal(t, b.ID, attached[0].Payload.(events.RatingAttachedPayload).BookingID)
}

func TestAttachRating_InvalidInput(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "cust-1", "2026-10-19", "10:00")
	_, err := f.lifecycle().Complete(context.Background(), b.ID, barberID)
	require.NoError(t, err)

	for _, stars := range []int{0, 6, -1} {
		_, err := f.rater().Execute(context.Background(), AttachRatingInput{BookingID: b.ID, CustomerID: "cust-1", Stars: stars})
		assert.ErrorIs(t, err, domain.ErrInvalidStars)
	}

	_, err = f.rater().Execute(context.Background(), AttachRatingInput{BookingID: b.ID, CustomerID: "cust-2", Stars: 4})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	_, err = f.rater().Execute(context.Background(), AttachRatingInput{BookingID: 404, CustomerID: "cust-1", Stars: 4})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestAttachRating_CancelledBooking(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "cust-1", "2026-10-19", "10:00")
	_, err := f.lifecycle().Cancel(context.Background(), b.ID, "cust-1", "doente")
	require.NoError(t, err)

	_, err = f.rater().Execute(context.Background(), AttachRatingInput{BookingID: b.ID, CustomerID: "cust-1", Stars: 3})
	assert.ErrorIs(t, err, domain.ErrNotCompleted)
}
