package booking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, "cust-1", "2026-10-19", "10:00")

	assert.NotZero(t, b.ID)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, time.Date(2026, 10, 19, 10, 0, 0, 0, shopLoc), b.StartTime)
	assert.Equal(t, b.StartTime.Add(time.Hour), b.EndTime)
	assert.Equal(t, 60, b.DurationMin)
	assert.True(t, decimal.RequireFromString("45.50").Equal(b.TotalPrice))

	created := f.pub.ofType(events.BookingCreated)
	require.Len(t, created, 1)
	assert.Equal(t, b.ID, created[0].AggregateID)
}

func TestCreateBooking_PriceIsSnapshot(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "cust-1", "2026-10-19", "10:00")

	f.service.Price = decimal.NewFromInt(80)
	f.store.SaveService(f.service)

	stored, err := f.store.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("45.50").Equal(stored.TotalPrice))
}

func TestCreateBooking_Rejections(t *testing.T) {
	f := newFixture(t)
	f.book(t, "cust-1", "2026-10-19", "10:00")
	require.NoError(t, f.store.CreateBlockedTime(context.Background(), &models.BlockedTime{
		BarberID:  barberID,
		Date:      domain.CivilDate(day(2026, 10, 19)),
		StartTime: "14:00",
		EndTime:   "15:00",
	}))

	cases := []struct {
		name string
		in   CreateBookingInput
		want error
	}{
		{"overlap", CreateBookingInput{Date: "2026-10-19", Time: "10:30"}, domain.ErrSlotTaken},
		{"same start", CreateBookingInput{Date: "2026-10-19", Time: "10:00"}, domain.ErrSlotTaken},
		{"off grid", CreateBookingInput{Date: "2026-10-19", Time: "11:15"}, domain.ErrSlotUnavailable},
		{"ends after closing", CreateBookingInput{Date: "2026-10-19", Time: "16:30"}, domain.ErrSlotUnavailable},
		{"closed day", CreateBookingInput{Date: "2026-10-25", Time: "10:00"}, domain.ErrSlotUnavailable},
		{"blocked", CreateBookingInput{Date: "2026-10-19", Time: "13:30"}, domain.ErrSlotUnavailable},
		{"past", CreateBookingInput{Date: "2026-10-19", Time: "07:00"}, domain.ErrPastSlot},
		{"bad date", CreateBookingInput{Date: "19/10/2026", Time: "10:00"}, domain.ErrInvalidDateTime},
		{"bad time", CreateBookingInput{Date: "2026-10-19", Time: "25:00"}, domain.ErrInvalidDateTime},
		{"no customer", CreateBookingInput{CustomerID: " ", Date: "2026-10-19", Time: "12:00"}, domain.ErrInvalidInput},
		{"unknown service", CreateBookingInput{ServiceID: 999, Date: "2026-10-19", Time: "12:00"}, domain.ErrServiceNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.in
			if in.CustomerID == "" {
				in.CustomerID = "cust-2"
			}
			if in.ServiceID == 0 {
				in.ServiceID = f.service.ID
			}
			in.BarberID = barberID

			_, err := f.creator().Execute(context.Background(), in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	list, err := f.store.ListBookingsForDay(context.Background(), barberID, day(2026, 10, 19))
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateBooking_AdjacentBookingsAllowed(t *testing.T) {
	f := newFixture(t)

	f.book(t, "cust-1", "2026-10-19", "10:00")
	f.book(t, "cust-2", "2026-10-19", "11:00")
	f.book(t, "cust-3", "2026-10-19", "09:00")
}

func TestCreateBooking_MinNotice(t *testing.T) {
	f := newFixture(t)
	f.policy.MinNotice = 2 * time.Hour

	_, err := f.creator().Execute(context.Background(), CreateBookingInput{
		CustomerID: "cust-1",
		BarberID:   barberID,
		ServiceID:  f.service.ID,
		Date:       "2026-10-19",
		Time:       "09:30",
	})
	assert.ErrorIs(t, err, domain.ErrTooSoon)

	f.book(t, "cust-1", "2026-10-19", "10:00")
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	uc := f.creator()

	const n = 25
	var (
		wg      sync.WaitGroup
		wins    int32
		taken   int32
		unknown int32
	)
	start := make(chan struct{})

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start

			_, err := uc.Execute(context.Background(), CreateBookingInput{
				CustomerID: "cust",
				BarberID:   barberID,
				ServiceID:  f.service.ID,
				Date:       "2026-10-19",
				Time:       "10:00",
			})
			switch {
			case err == nil:
				atomic.AddInt32(&wins, 1)
			case errors.Is(err, domain.ErrSlotTaken):
				atomic.AddInt32(&taken, 1)
			default:
				atomic.AddInt32(&unknown, 1)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	assert.Equal(t, int32(n-1), taken)
	assert.Zero(t, unknown)
}

func TestCreateBooking_ConcurrentOverlappingStarts(t *testing.T) {
	f := newFixture(t)
	uc := f.creator()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, hm := range []string{"10:00", "10:30"} {
		wg.Add(1)
		go func(i int, hm string) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), CreateBookingInput{
				CustomerID: "cust",
				BarberID:   barberID,
				ServiceID:  f.service.ID,
				Date:       "2026-10-19",
				Time:       hm,
			})
		}(i, hm)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestCreateBooking_CancelFreesSlot(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, "cust-1", "2026-10-19", "10:00")
	_, err := f.lifecycle().Cancel(context.Background(), b.ID, "cust-1", "mudou de ideia")
	require.NoError(t, err)

	again := f.book(t, "cust-2", "2026-10-19", "10:00")
	assert.NotEqual(t, b.ID, again.ID)
}

// flakyLedger fails the first n critical sections with a transient conflict.
type flakyLedger struct {
	*memory.Store
	failures int32
	calls    int32
}

func (l *flakyLedger) WithinDay(ctx context.Context, barberID uint, day time.Time, fn func(context.Context) error) error {
	atomic.AddInt32(&l.calls, 1)
	if atomic.AddInt32(&l.failures, -1) >= 0 {
		return domain.ErrTransientConflict
	}
	return l.Store.WithinDay(ctx, barberID, day, fn)
}

func TestCreateBooking_RetriesTransientConflicts(t *testing.T) {
	f := newFixture(t)
	ledger := &flakyLedger{Store: f.store, failures: 2}

	uc := NewCreateBooking(f.store, ledger, f.store, f.clock(), f.policy, f.pub, nil, nil)
	uc.backoff = func(int) time.Duration { return 0 }

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: "cust-1",
		BarberID:   barberID,
		ServiceID:  f.service.ID,
		Date:       "2026-10-19",
		Time:       "10:00",
	})
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Equal(t, int32(3), ledger.calls)
}

func TestCreateBooking_RetriesExhausted(t *testing.T) {
	f := newFixture(t)
	ledger := &flakyLedger{Store: f.store, failures: 100}

	uc := NewCreateBooking(f.store, ledger, f.store, f.clock(), f.policy, f.pub, nil, nil)
	uc.backoff = func(int) time.Duration { return 0 }

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: "cust-1",
		BarberID:   barberID,
		ServiceID:  f.service.ID,
		Date:       "2026-10-19",
		Time:       "10:00",
	})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.Equal(t, int32(f.policy.AdmissionRetries+1), ledger.calls)
	assert.Empty(t, f.pub.ofType(events.BookingCreated))
}
