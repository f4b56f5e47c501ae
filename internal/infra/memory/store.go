// Package memory keeps the whole booking state in process. It backs the
// STORAGE_DRIVER=memory mode and the use case tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/datelock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Store struct {
	mu    sync.RWMutex
	locks *datelock.Locker

	workingHours map[uint]map[int]models.WorkingHours
	blocked      map[uint]models.BlockedTime
	bookings     map[uint]models.Booking
	services     map[uint]models.Service
	ratings      map[uint]models.Rating // by booking id
	events       []models.EventLog

	nextID uint
}

func NewStore() *Store {
	return &Store{
		locks:        datelock.New(),
		workingHours: make(map[uint]map[int]models.WorkingHours),
		blocked:      make(map[uint]models.BlockedTime),
		bookings:     make(map[uint]models.Booking),
		services:     make(map[uint]models.Service),
		ratings:      make(map[uint]models.Rating),
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// --------------------------------------------------
// Calendar policy
// --------------------------------------------------

func (s *Store) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday time.Weekday,
) (*models.WorkingHours, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	wh, ok := s.workingHours[barberID][int(weekday)]
	if !ok {
		return nil, nil
	}
	return &wh, nil
}

func (s *Store) ListWorkingHours(
	ctx context.Context,
	barberID uint,
) ([]models.WorkingHours, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.WorkingHours, 0, len(s.workingHours[barberID]))
	for _, wh := range s.workingHours[barberID] {
		out = append(out, wh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (s *Store) ReplaceWorkingHours(
	ctx context.Context,
	barberID uint,
	week []models.WorkingHours,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	days := make(map[int]models.WorkingHours, len(week))
	for _, wh := range week {
		wh.ID = s.id()
		wh.BarberID = barberID
		wh.CreatedAt = now
		wh.UpdatedAt = now
		days[wh.Weekday] = wh
	}
	s.workingHours[barberID] = days
	return nil
}

func (s *Store) ListBlockedTimes(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.BlockedTime, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := domain.CivilDate(from), domain.CivilDate(to)

	var out []models.BlockedTime
	for _, bt := range s.blocked {
		if bt.BarberID != barberID {
			continue
		}
		d := domain.CivilDate(bt.Date)
		if d.Before(lo) || d.After(hi) {
			continue
		}
		out = append(out, bt)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (s *Store) CreateBlockedTime(
	ctx context.Context,
	bt *models.BlockedTime,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	bt.ID = s.id()
	bt.CreatedAt = time.Now()
	s.blocked[bt.ID] = *bt
	return nil
}

func (s *Store) DeleteBlockedTime(
	ctx context.Context,
	barberID uint,
	id uint,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	bt, ok := s.blocked[id]
	if !ok || bt.BarberID != barberID {
		return domain.ErrBlockedTimeNotFound
	}
	delete(s.blocked, id)
	return nil
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

// WithinDay holds the (barber, date) lock while fn runs. Requests for other
// dates proceed in parallel.
func (s *Store) WithinDay(
	ctx context.Context,
	barberID uint,
	day time.Time,
	fn func(ctx context.Context) error,
) error {

	release, err := s.locks.Acquire(ctx, datelock.Key(barberID, day))
	if err != nil {
		return err
	}
	defer release()

	return fn(ctx)
}

func (s *Store) ListOccupyingBookings(
	ctx context.Context,
	barberID uint,
	day time.Time,
) ([]models.Booking, error) {

	all, err := s.ListBookingsForDay(ctx, barberID, day)
	if err != nil {
		return nil, err
	}

	out := all[:0]
	for _, b := range all {
		if domain.Status(b.Status).Occupies() {
			out = append(out, b)
		}
	}
	return out, nil
}

// CreateBooking enforces the no-overlap rule itself, the way the exclusion
// constraint does in Postgres.
func (s *Store) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if !b.EndTime.After(b.StartTime) {
		return fmt.Errorf("%w: empty interval", domain.ErrInvalidInput)
	}

	for _, other := range s.bookings {
		if other.BarberID != b.BarberID || !domain.Status(other.Status).Occupies() {
			continue
		}
		if domain.Overlaps(b.StartTime, b.EndTime, other.StartTime, other.EndTime) {
			return fmt.Errorf("%w: overlaps booking %d", domain.ErrSlotTaken, other.ID)
		}
	}

	now := time.Now()
	b.ID = s.id()
	b.CreatedAt = now
	b.UpdatedAt = now
	s.bookings[b.ID] = *b
	return nil
}

func (s *Store) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (s *Store) UpdateStatus(
	ctx context.Context,
	b *models.Booking,
	from domain.Status,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.bookings[b.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if domain.Status(stored.Status) != from {
		return fmt.Errorf("%w: status changed to %s", domain.ErrIllegalTransition, stored.Status)
	}

	stored.Status = b.Status
	stored.CancelReason = b.CancelReason
	stored.ConfirmedAt = b.ConfirmedAt
	stored.CompletedAt = b.CompletedAt
	stored.CancelledAt = b.CancelledAt
	stored.UpdatedAt = b.UpdatedAt
	s.bookings[b.ID] = stored
	return nil
}

func (s *Store) ListBookingsForDay(
	ctx context.Context,
	barberID uint,
	day time.Time,
) ([]models.Booking, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Booking
	for _, b := range s.bookings {
		if b.BarberID == barberID && domain.SameDate(b.AppointmentDate, day) {
			b.Service = s.services[b.ServiceID]
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) ListBookingsForPeriod(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := domain.CivilDate(from), domain.CivilDate(to)

	var out []models.Booking
	for _, b := range s.bookings {
		if b.BarberID != barberID {
			continue
		}
		d := domain.CivilDate(b.AppointmentDate)
		if d.Before(lo) || d.After(hi) {
			continue
		}
		b.Service = s.services[b.ServiceID]
		out = append(out, b)
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) ListCustomerBookings(
	ctx context.Context,
	customerID string,
) ([]models.Booking, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Booking
	for _, b := range s.bookings {
		if b.CustomerID == customerID {
			b.Service = s.services[b.ServiceID]
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(bs []models.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].StartTime.Equal(bs[j].StartTime) {
			return bs[i].StartTime.Before(bs[j].StartTime)
		}
		return bs[i].ID < bs[j].ID
	})
}

// --------------------------------------------------
// Ratings
// --------------------------------------------------

func (s *Store) GetRatingByBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Rating, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.ratings[bookingID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *Store) CreateRating(
	ctx context.Context,
	r *models.Rating,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ratings[r.BookingID]; ok {
		return domain.ErrAlreadyRated
	}
	r.ID = s.id()
	r.CreatedAt = time.Now()
	s.ratings[r.BookingID] = *r
	return nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

// SaveService inserts or replaces a service. The catalog is owned elsewhere;
// this is how the memory mode and tests seed it.
func (s *Store) SaveService(svc *models.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == 0 {
		svc.ID = s.id()
	}
	s.services[svc.ID] = *svc
}

func (s *Store) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return &svc, nil
}

func (s *Store) ListServices(
	ctx context.Context,
	activeOnly bool,
) ([]models.Service, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		if activeOnly && !svc.Active {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RatingSummary(
	ctx context.Context,
	serviceID uint,
) (float64, int, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum, n int
	for _, r := range s.ratings {
		if r.ServiceID == serviceID {
			sum += r.Stars
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

func (s *Store) UpdateRatingAggregate(
	ctx context.Context,
	serviceID uint,
	avg float64,
	count int,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[serviceID]
	if !ok {
		return domain.ErrServiceNotFound
	}
	svc.RatingAvg = avg
	svc.RatingCount = count
	svc.UpdatedAt = time.Now()
	s.services[serviceID] = svc
	return nil
}

// --------------------------------------------------
// Event log
// --------------------------------------------------

func (s *Store) AppendEventLog(
	ctx context.Context,
	entry *models.EventLog,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.id()
	entry.CreatedAt = time.Now()
	s.events = append(s.events, *entry)
	return nil
}

// ListEventLogs returns matching entries newest first, plus the total match count.
func (s *Store) ListEventLogs(
	ctx context.Context,
	f models.EventLogFilter,
) ([]models.EventLog, int64, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.EventLog
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		switch {
		case f.BarberID != 0 && e.BarberID != f.BarberID,
			f.Type != "" && e.Type != f.Type,
			f.Aggregate != "" && e.Aggregate != f.Aggregate,
			f.AggregateID != 0 && e.AggregateID != f.AggregateID,
			f.From != nil && e.CreatedAt.Before(*f.From),
			f.To != nil && !e.CreatedAt.Before(*f.To):
			continue
		}
		matched = append(matched, e)
	}

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []models.EventLog{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (s *Store) EventLogs() []models.EventLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.EventLog(nil), s.events...)
}

var (
	_ domain.CalendarRepository = (*Store)(nil)
	_ domain.Ledger             = (*Store)(nil)
	_ domain.RatingRepository   = (*Store)(nil)
	_ domain.ServiceCatalog     = (*Store)(nil)
)
