package booking

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Policy carries the scheduling knobs shared by the booking use cases.
type Policy struct {
	Location         *time.Location
	Step             time.Duration
	MinNotice        time.Duration
	MaxAdvanceDays   int
	AdmissionRetries int
}

const DefaultStep = 30 * time.Minute

func (p Policy) normalized() Policy {
	if p.Location == nil {
		p.Location = time.UTC
	}
	if p.Step == 0 {
		p.Step = DefaultStep
	}
	if p.AdmissionRetries < 0 {
		p.AdmissionRetries = 0
	}
	return p
}

// localDay returns midnight of d's calendar date in the shop location.
func (p Policy) localDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, p.Location)
}

func (p Policy) checkHorizon(day, now time.Time) error {
	if p.MaxAdvanceDays <= 0 {
		return nil
	}
	limit := domain.DayStart(now).AddDate(0, 0, p.MaxAdvanceDays)
	if p.localDay(day).After(limit) {
		return fmt.Errorf("%w: more than %d days ahead", domain.ErrTooFarAhead, p.MaxAdvanceDays)
	}
	return nil
}

// resolveService loads a bookable service.
func resolveService(ctx context.Context, catalog domain.ServiceCatalog, id uint) (*models.Service, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: service_id is required", domain.ErrInvalidInput)
	}

	svc, err := catalog.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, domain.ErrServiceInactive
	}
	if svc.DurationMin <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	return svc, nil
}

// dayQuery reads everything ComputeSlots needs for (barberID, day).
func dayQuery(
	ctx context.Context,
	calendar domain.CalendarRepository,
	ledger domain.Ledger,
	p Policy,
	barberID uint,
	day time.Time,
	duration time.Duration,
	now time.Time,
) (domain.SlotQuery, error) {

	wh, err := calendar.GetWorkingHours(ctx, barberID, day.Weekday())
	if err != nil {
		return domain.SlotQuery{}, err
	}

	blocked, err := calendar.ListBlockedTimes(ctx, barberID, day, day)
	if err != nil {
		return domain.SlotQuery{}, err
	}

	bookings, err := ledger.ListOccupyingBookings(ctx, barberID, day)
	if err != nil {
		return domain.SlotQuery{}, err
	}

	return domain.SlotQuery{
		Date:         day,
		Duration:     duration,
		Step:         p.Step,
		WorkingHours: wh,
		Blocked:      blocked,
		Bookings:     bookings,
		Now:          now,
		MinNotice:    p.MinNotice,
	}, nil
}

func isKind(err error, k domain.Kind) bool {
	return err != nil && domain.KindOf(err) == k
}
