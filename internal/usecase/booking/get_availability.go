package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

type GetAvailability struct {
	calendar domain.CalendarRepository
	ledger   domain.Ledger
	catalog  domain.ServiceCatalog
	clock    domain.Clock
	policy   Policy
}

func NewGetAvailability(
	calendar domain.CalendarRepository,
	ledger domain.Ledger,
	catalog domain.ServiceCatalog,
	clock domain.Clock,
	policy Policy,
) *GetAvailability {
	return &GetAvailability{
		calendar: calendar,
		ledger:   ledger,
		catalog:  catalog,
		clock:    clock,
		policy:   policy.normalized(),
	}
}

// Execute lists every candidate slot of the day with its availability.
// It never writes.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (domain.Availability, error) {

	if in.BarberID == 0 || in.Date.IsZero() {
		return domain.Availability{}, domain.ErrInvalidInput
	}

	svc, err := resolveService(ctx, uc.catalog, in.ServiceID)
	if err != nil {
		return domain.Availability{}, err
	}

	now := uc.clock.Now().In(uc.policy.Location)
	day := uc.policy.localDay(in.Date)

	if err := uc.policy.checkHorizon(day, now); err != nil {
		return domain.Availability{}, err
	}

	q, err := dayQuery(
		ctx,
		uc.calendar,
		uc.ledger,
		uc.policy,
		in.BarberID,
		day,
		time.Duration(svc.DurationMin)*time.Minute,
		now,
	)
	if err != nil {
		return domain.Availability{}, err
	}

	return domain.ComputeSlots(q)
}
