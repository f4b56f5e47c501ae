package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ChangeStatusInput scopes the change either to a customer (CustomerID set)
// or to a barber calendar (BarberID set). Both empty means unrestricted.
type ChangeStatusInput struct {
	BookingID uint
	To        domain.Status
	Reason    string

	CustomerID string
	BarberID   uint
}

type ChangeStatus struct {
	ledger domain.Ledger
	clock  domain.Clock

	events  events.Publisher
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewChangeStatus(
	ledger domain.Ledger,
	clock domain.Clock,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
) *ChangeStatus {
	if publisher == nil {
		publisher = events.Discard{}
	}
	return &ChangeStatus{
		ledger:  ledger,
		clock:   clock,
		events:  publisher,
		metrics: m,
		log:     logger.OrNop(log).Named("lifecycle"),
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Booking, error) {

	if _, ok := domain.ParseStatus(string(in.To)); !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.To)
	}

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

	from := domain.Status(b.Status)

	// customers can only say "I paid" or cancel
	if in.CustomerID != "" && in.To != domain.StatusConfirmed && in.To != domain.StatusCancelled {
		return nil, fmt.Errorf("%w: %s -> %s is administrative", domain.ErrIllegalTransition, from, in.To)
	}

	if err := domain.Transition(b, in.To, in.Reason, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.ledger.UpdateStatus(ctx, b, from); err != nil {
		return nil, err
	}

	uc.metrics.Transition(string(from), b.Status)
	uc.log.Info("booking status changed",
		zap.Uint("booking_id", b.ID),
		zap.String("from", string(from)),
		zap.String("to", b.Status),
	)

	uc.events.Dispatch(events.New(
		events.BookingStatusChanged,
		b.BarberID,
		events.AggregateBooking,
		b.ID,
		events.StatusChangedPayload{
			BookingID:  b.ID,
			CustomerID: b.CustomerID,
			From:       string(from),
			To:         b.Status,
			Reason:     b.CancelReason,
		},
	))

	return b, nil
}

// Confirm records the customer's payment confirmation.
func (uc *ChangeStatus) Confirm(ctx context.Context, bookingID uint, customerID string) (*models.Booking, error) {
	return uc.Execute(ctx, ChangeStatusInput{
		BookingID:  bookingID,
		To:         domain.StatusConfirmed,
		CustomerID: customerID,
	})
}

func (uc *ChangeStatus) Complete(ctx context.Context, bookingID uint, barberID uint) (*models.Booking, error) {
	return uc.Execute(ctx, ChangeStatusInput{
		BookingID: bookingID,
		To:        domain.StatusCompleted,
		BarberID:  barberID,
	})
}

func (uc *ChangeStatus) Cancel(ctx context.Context, bookingID uint, customerID string, reason string) (*models.Booking, error) {
	return uc.Execute(ctx, ChangeStatusInput{
		BookingID:  bookingID,
		To:         domain.StatusCancelled,
		Reason:     reason,
		CustomerID: customerID,
	})
}

func (uc *ChangeStatus) NoShow(ctx context.Context, bookingID uint, barberID uint, reason string) (*models.Booking, error) {
	return uc.Execute(ctx, ChangeStatusInput{
		BookingID: bookingID,
		To:        domain.StatusNoShow,
		Reason:    reason,
		BarberID:  barberID,
	})
}
