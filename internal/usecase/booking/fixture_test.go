package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const barberID uint = 1

var shopLoc = time.FixedZone("BRT", -3*60*60)

// Monday 2026-10-19 08:00 shop time.
var mondayMorning = time.Date(2026, 10, 19, 8, 0, 0, 0, shopLoc)

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Dispatch(ev events.Event) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return true
}

func (p *capturePublisher) ofType(t events.Type) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []events.Event
	for _, ev := range p.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

type fixture struct {
	store   *memory.Store
	now     time.Time
	service *models.Service
	pub     *capturePublisher
	policy  Policy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store: memory.NewStore(),
		now:   mondayMorning,
		pub:   &capturePublisher{},
		policy: Policy{
			Location:         shopLoc,
			Step:             30 * time.Minute,
			AdmissionRetries: 3,
		},
	}

	week := []models.WorkingHours{
		{Weekday: int(time.Monday), StartTime: "09:00", EndTime: "17:00", Active: true},
		{Weekday: int(time.Tuesday), StartTime: "09:00", EndTime: "17:00", Active: true},
		{Weekday: int(time.Sunday), StartTime: "09:00", EndTime: "12:00", Active: false},
	}
	require.NoError(t, f.store.ReplaceWorkingHours(context.Background(), barberID, week))

	f.service = &models.Service{
		Name:        "Corte + Barba",
		DurationMin: 60,
		Price:       decimal.RequireFromString("45.50"),
		Active:      true,
	}
	f.store.SaveService(f.service)

	return f
}

func (f *fixture) clock() domain.Clock {
	return domain.ClockFunc(func() time.Time { return f.now })
}

func (f *fixture) availability() *GetAvailability {
	return NewGetAvailability(f.store, f.store, f.store, f.clock(), f.policy)
}

func (f *fixture) creator() *CreateBooking {
	return NewCreateBooking(f.store, f.store, f.store, f.clock(), f.policy, f.pub, nil, nil)
}

func (f *fixture) lifecycle() *ChangeStatus {
	return NewChangeStatus(f.store, f.clock(), f.pub, nil, nil)
}

func (f *fixture) book(t *testing.T, customer, date, hm string) *models.Booking {
	t.Helper()

	b, err := f.creator().Execute(context.Background(), CreateBookingInput{
		CustomerID: customer,
		BarberID:   barberID,
		ServiceID:  f.service.ID,
		Date:       date,
		Time:       hm,
	})
	require.NoError(t, err)
	return b
}
