package booking

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Get
// --------------------------------------------------

type GetBookingInput struct {
	BookingID  uint
	CustomerID string
	BarberID   uint
}

type GetBooking struct {
	ledger domain.Ledger
}

func NewGetBooking(ledger domain.Ledger) *GetBooking {
	return &GetBooking{ledger: ledger}
}

// Execute hides bookings outside the caller's scope as not found.
func (uc *GetBooking) Execute(ctx context.Context, in GetBookingInput) (*models.Booking, error) {
	b, err := uc.ledger.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if in.CustomerID != "" && b.CustomerID != in.CustomerID {
		return nil, domain.ErrBookingNotFound
	}
	if in.BarberID != 0 && b.BarberID != in.BarberID {
		return nil, domain.ErrBookingNotFound
	}
	return b, nil
}

// --------------------------------------------------
// Day sheet
// --------------------------------------------------

type ListBookingsByDate struct {
	ledger domain.Ledger
	loc    *time.Location
}

func NewListBookingsByDate(ledger domain.Ledger, loc *time.Location) *ListBookingsByDate {
	if loc == nil {
		loc = time.UTC
	}
	return &ListBookingsByDate{ledger: ledger, loc: loc}
}

// Execute lists every booking of the date, any status, by start time.
func (uc *ListBookingsByDate) Execute(ctx context.Context, barberID uint, date string) ([]models.Booking, error) {
	day, err := time.ParseInLocation(domain.DateLayout, date, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDateTime, date)
	}
	return uc.ledger.ListBookingsForDay(ctx, barberID, day)
}

// ListBookingsByMonth feeds the barber's month view.
type ListBookingsByMonth struct {
	ledger domain.Ledger
	loc    *time.Location
}

func NewListBookingsByMonth(ledger domain.Ledger, loc *time.Location) *ListBookingsByMonth {
	if loc == nil {
		loc = time.UTC
	}
	return &ListBookingsByMonth{ledger: ledger, loc: loc}
}

func (uc *ListBookingsByMonth) Execute(ctx context.Context, barberID uint, year, month int) ([]models.Booking, error) {
	if year < 1 || month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %04d-%02d", domain.ErrInvalidDateTime, year, month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 1, -1)

	return uc.ledger.ListBookingsForPeriod(ctx, barberID, start, end)
}

// --------------------------------------------------
// Customer history
// --------------------------------------------------

type ListCustomerBookings struct {
	ledger domain.Ledger
}

func NewListCustomerBookings(ledger domain.Ledger) *ListCustomerBookings {
	return &ListCustomerBookings{ledger: ledger}
}

func (uc *ListCustomerBookings) Execute(ctx context.Context, customerID string) ([]models.Booking, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.ledger.ListCustomerBookings(ctx, customerID)
}
