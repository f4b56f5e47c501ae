package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID string
	BarberID   uint
	ServiceID  uint

	Date  string // YYYY-MM-DD, shop timezone
	Time  string // HH:MM, shop timezone
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	calendar domain.CalendarRepository
	ledger   domain.Ledger
	catalog  domain.ServiceCatalog
	clock    domain.Clock
	policy   Policy

	events  events.Publisher
	metrics *metrics.Metrics
	log     *zap.Logger

	backoff func(attempt int) time.Duration
}

func NewCreateBooking(
	calendar domain.CalendarRepository,
	ledger domain.Ledger,
	catalog domain.ServiceCatalog,
	clock domain.Clock,
	policy Policy,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
) *CreateBooking {
	if publisher == nil {
		publisher = events.Discard{}
	}
	return &CreateBooking{
		calendar: calendar,
		ledger:   ledger,
		catalog:  catalog,
		clock:    clock,
		policy:   policy.normalized(),
		events:   publisher,
		metrics:  m,
		log:      logger.OrNop(log).Named("admission"),
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * 10 * time.Millisecond
		},
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Request shape
	// --------------------------------------------------
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	if in.CustomerID == "" || in.BarberID == 0 {
		return nil, fmt.Errorf("%w: customer and barber are required", domain.ErrInvalidInput)
	}
	if len(in.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes too long", domain.ErrInvalidInput)
	}

	start, err := time.ParseInLocation(
		domain.DateLayout+" "+domain.ClockLayout,
		in.Date+" "+in.Time,
		uc.policy.Location,
	)
	if err != nil {
		return nil, domain.ErrInvalidDateTime
	}

	// --------------------------------------------------
	// 2. Service snapshot
	// --------------------------------------------------
	svc, err := resolveService(ctx, uc.catalog, in.ServiceID)
	if err != nil {
		return nil, err
	}
	duration := time.Duration(svc.DurationMin) * time.Minute

	// --------------------------------------------------
	// 3. Time window
	// --------------------------------------------------
	now := uc.clock.Now().In(uc.policy.Location)
	if start.Before(now) {
		return nil, domain.ErrPastSlot
	}
	if start.Before(now.Add(uc.policy.MinNotice)) {
		return nil, domain.ErrTooSoon
	}
	if err := uc.policy.checkHorizon(start, now); err != nil {
		return nil, err
	}

	b := &models.Booking{
		BarberID:        in.BarberID,
		CustomerID:      in.CustomerID,
		ServiceID:       svc.ID,
		AppointmentDate: domain.CivilDate(start),
		StartTime:       start,
		EndTime:         start.Add(duration),
		DurationMin:     svc.DurationMin,
		Status:          string(domain.InitialStatus()),
		TotalPrice:      svc.Price,
		Notes:           strings.TrimSpace(in.Notes),
	}

	// --------------------------------------------------
	// 4. Admission
	// --------------------------------------------------
	if err := uc.admitWithRetry(ctx, b, duration); err != nil {
		uc.metrics.Admission(outcome(err))
		uc.log.Info("booking rejected",
			zap.Uint("barber_id", b.BarberID),
			zap.Time("start", b.StartTime),
			zap.String("code", domain.CodeOf(err)),
			zap.Error(err),
		)
		return nil, err
	}
	uc.metrics.Admission(metrics.OutcomeAdmitted)
	uc.log.Info("booking admitted",
		zap.Uint("booking_id", b.ID),
		zap.Uint("barber_id", b.BarberID),
		zap.Time("start", b.StartTime),
		zap.Time("end", b.EndTime),
	)

	// --------------------------------------------------
	// 5. Notification (after commit)
	// --------------------------------------------------
	uc.events.Dispatch(events.New(
		events.BookingCreated,
		b.BarberID,
		events.AggregateBooking,
		b.ID,
		events.BookingCreatedPayload{
			BookingID:  b.ID,
			CustomerID: b.CustomerID,
			ServiceID:  b.ServiceID,
			StartTime:  b.StartTime,
			EndTime:    b.EndTime,
			TotalPrice: b.TotalPrice,
			Status:     b.Status,
		},
	))

	return b, nil
}

// admitWithRetry repeats the critical section while storage reports a
// transient conflict. Once retries run out the slot is reported as taken.
func (uc *CreateBooking) admitWithRetry(
	ctx context.Context,
	b *models.Booking,
	duration time.Duration,
) error {

	day := uc.policy.localDay(b.StartTime)

	for attempt := 0; ; attempt++ {
		err := uc.ledger.WithinDay(ctx, b.BarberID, day, func(ctx context.Context) error {
			return uc.admit(ctx, b, day, duration)
		})
		if !errors.Is(err, domain.ErrTransientConflict) {
			return err
		}

		if attempt >= uc.policy.AdmissionRetries {
			return fmt.Errorf("%w: gave up after %d attempts", domain.ErrSlotTaken, attempt+1)
		}
		uc.metrics.Admission(metrics.OutcomeRetried)
		uc.log.Debug("transient admission conflict, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(uc.backoff(attempt)):
		}
		b.ID = 0
	}
}

// admit runs inside the per-date critical section: the slot list is
// recomputed from fresh state and the request must match a free candidate.
func (uc *CreateBooking) admit(
	ctx context.Context,
	b *models.Booking,
	day time.Time,
	duration time.Duration,
) error {

	now := uc.clock.Now().In(uc.policy.Location)

	q, err := dayQuery(ctx, uc.calendar, uc.ledger, uc.policy, b.BarberID, day, duration, now)
	if err != nil {
		return err
	}

	avail, err := domain.ComputeSlots(q)
	if err != nil {
		return err
	}

	slot, ok := avail.SlotAt(b.StartTime)
	if !ok {
		reason := avail.Reason
		if reason == "" {
			reason = "not a bookable start"
		}
		return fmt.Errorf("%w: %s", domain.ErrSlotUnavailable, reason)
	}

	switch slot.Reason {
	case "":
	case domain.ReasonBooked:
		return domain.ErrSlotTaken
	case domain.ReasonPast:
		return domain.ErrPastSlot
	case domain.ReasonTooSoon:
		return domain.ErrTooSoon
	default:
		return fmt.Errorf("%w: %s", domain.ErrSlotUnavailable, slot.Reason)
	}

	return uc.ledger.CreateBooking(ctx, b)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrSlotTaken):
		return metrics.OutcomeSlotTaken
	case errors.Is(err, domain.ErrSlotUnavailable):
		return metrics.OutcomeUnavailable
	case isKind(err, domain.KindInput):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
