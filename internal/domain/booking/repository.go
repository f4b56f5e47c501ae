package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CalendarRepository is the Calendar Policy Store.
type CalendarRepository interface {
	// GetWorkingHours returns (nil, nil) when the weekday has no record.
	GetWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday time.Weekday,
	) (*models.WorkingHours, error)

	ListWorkingHours(
		ctx context.Context,
		barberID uint,
	) ([]models.WorkingHours, error)

	ReplaceWorkingHours(
		ctx context.Context,
		barberID uint,
		week []models.WorkingHours,
	) error

	// ListBlockedTimes returns blocks whose date falls in [from, to] (calendar dates).
	ListBlockedTimes(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.BlockedTime, error)

	CreateBlockedTime(
		ctx context.Context,
		bt *models.BlockedTime,
	) error

	DeleteBlockedTime(
		ctx context.Context,
		barberID uint,
		id uint,
	) error
}

// Ledger is the durable set of bookings.
type Ledger interface {
	// WithinDay runs fn inside the admission critical section of (barberID, day).
	// Ledger calls made with the ctx passed to fn join that section.
	WithinDay(
		ctx context.Context,
		barberID uint,
		day time.Time,
		fn func(ctx context.Context) error,
	) error

	// ListOccupyingBookings returns pending, confirmed and completed bookings of the day.
	ListOccupyingBookings(
		ctx context.Context,
		barberID uint,
		day time.Time,
	) ([]models.Booking, error)

	// CreateBooking inserts b. An overlap with an occupying booking yields ErrSlotTaken.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// UpdateStatus persists b's status fields only if the stored status is still from.
	UpdateStatus(
		ctx context.Context,
		b *models.Booking,
		from Status,
	) error

	ListBookingsForDay(
		ctx context.Context,
		barberID uint,
		day time.Time,
	) ([]models.Booking, error)

	// ListBookingsForPeriod covers the calendar dates from..to inclusive.
	ListBookingsForPeriod(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	ListCustomerBookings(
		ctx context.Context,
		customerID string,
	) ([]models.Booking, error)
}

type RatingRepository interface {
	// GetRatingByBooking returns (nil, nil) when the booking has no rating.
	GetRatingByBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Rating, error)

	// CreateRating yields ErrAlreadyRated when the booking already has one.
	CreateRating(
		ctx context.Context,
		r *models.Rating,
	) error
}

// ServiceCatalog is the read side of the external service catalog.
type ServiceCatalog interface {
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)
}

// Clock abstracts wall-clock reads.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
