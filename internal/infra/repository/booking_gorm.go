package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingGormRepository struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

func NewBookingGormRepository(db *gorm.DB, lockTimeout time.Duration) *BookingGormRepository {
	return &BookingGormRepository{db: db, lockTimeout: lockTimeout}
}

// --------------------------------------------------
// Critical section
// --------------------------------------------------

// WithinDay runs fn in a transaction holding the advisory lock of
// (barberID, day). The lock is released on commit or rollback.
func (r *BookingGormRepository) WithinDay(
	ctx context.Context,
	barberID uint,
	day time.Time,
	fn func(ctx context.Context) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.lockTimeout > 0 {
			if err := tx.Exec(
				fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds()),
			).Error; err != nil {
				return err
			}
		}

		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(CAST(? AS int4), CAST(? AS int4))",
			int32(barberID),
			dayNumber(day),
		).Error; err != nil {
			return err
		}

		return fn(withTx(ctx, tx))
	})

	return classify(err)
}

// dayNumber is the calendar date of day counted in days since 1970-01-01.
func dayNumber(day time.Time) int32 {
	return int32(domain.CivilDate(day).Unix() / 86400)
}

// dateParam renders day's calendar date for comparison with a date column,
// independent of the session time zone.
func dateParam(day time.Time) string {
	return day.Format(domain.DateLayout)
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *BookingGormRepository) ListOccupyingBookings(
	ctx context.Context,
	barberID uint,
	day time.Time,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := conn(ctx, r.db).
		Where(
			"barber_id = ? AND appointment_date = ? AND status IN ?",
			barberID, dateParam(day), domain.OccupyingStatuses,
		).
		Order("start_time ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := conn(ctx, r.db).First(&b, id).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	barberID uint,
	day time.Time,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := conn(ctx, r.db).
		Preload("Service").
		Where("barber_id = ? AND appointment_date = ?", barberID, dateParam(day)).
		Order("start_time ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := conn(ctx, r.db).
		Preload("Service").
		Where("barber_id = ? AND appointment_date BETWEEN ? AND ?", barberID, dateParam(from), dateParam(to)).
		Order("start_time ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) ListCustomerBookings(
	ctx context.Context,
	customerID string,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := conn(ctx, r.db).
		Preload("Service").
		Where("customer_id = ?", customerID).
		Order("start_time ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

// CreateBooking relies on the bookings_no_overlap exclusion constraint as
// the last line of defence against overlapping intervals.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return classify(
		conn(ctx, r.db).Omit(clause.Associations).Create(b).Error,
	)
}

func (r *BookingGormRepository) UpdateStatus(
	ctx context.Context,
	b *models.Booking,
	from domain.Status,
) error {

	res := conn(ctx, r.db).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, string(from)).
		Updates(map[string]any{
			"status":        b.Status,
			"cancel_reason": b.CancelReason,
			"confirmed_at":  b.ConfirmedAt,
			"completed_at":  b.CompletedAt,
			"cancelled_at":  b.CancelledAt,
			"updated_at":    b.UpdatedAt,
		})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: booking %d is no longer %s", domain.ErrIllegalTransition, b.ID, from)
	}
	return nil
}

// Compile-time check
var _ domain.Ledger = (*BookingGormRepository)(nil)
