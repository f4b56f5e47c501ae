package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CalendarGormRepository struct {
	db *gorm.DB
}

func NewCalendarGormRepository(db *gorm.DB) *CalendarGormRepository {
	return &CalendarGormRepository{db: db}
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *CalendarGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday time.Weekday,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := conn(ctx, r.db).
		Where("barber_id = ? AND weekday = ?", barberID, int(weekday)).
		First(&wh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *CalendarGormRepository) ListWorkingHours(
	ctx context.Context,
	barberID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := conn(ctx, r.db).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *CalendarGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	barberID uint,
	week []models.WorkingHours,
) error {

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		if len(week) == 0 {
			return nil
		}
		for i := range week {
			week[i].ID = 0
			week[i].BarberID = barberID
		}
		return tx.Create(&week).Error
	})
}

// --------------------------------------------------
// Blocked times
// --------------------------------------------------

func (r *CalendarGormRepository) ListBlockedTimes(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.BlockedTime, error) {

	var list []models.BlockedTime
	if err := conn(ctx, r.db).
		Where(
			"barber_id = ? AND date BETWEEN ? AND ?",
			barberID, dateParam(from), dateParam(to),
		).
		Order("date ASC, start_time ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CalendarGormRepository) CreateBlockedTime(
	ctx context.Context,
	bt *models.BlockedTime,
) error {
	return conn(ctx, r.db).Create(bt).Error
}

func (r *CalendarGormRepository) DeleteBlockedTime(
	ctx context.Context,
	barberID uint,
	id uint,
) error {

	res := conn(ctx, r.db).
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.BlockedTime{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBlockedTimeNotFound
	}
	return nil
}

var _ domain.CalendarRepository = (*CalendarGormRepository)(nil)
