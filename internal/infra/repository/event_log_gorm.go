package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type EventLogGormRepository struct {
	db *gorm.DB
}

func NewEventLogGormRepository(db *gorm.DB) *EventLogGormRepository {
	return &EventLogGormRepository{db: db}
}

// AppendEventLog ignores duplicates by event id.
func (r *EventLogGormRepository) AppendEventLog(
	ctx context.Context,
	entry *models.EventLog,
) error {
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(entry).Error
}

// ListEventLogs returns matching entries newest first, plus the total match count.
func (r *EventLogGormRepository) ListEventLogs(
	ctx context.Context,
	f models.EventLogFilter,
) ([]models.EventLog, int64, error) {

	q := conn(ctx, r.db).Model(&models.EventLog{})

	if f.BarberID != 0 {
		q = q.Where("barber_id = ?", f.BarberID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Aggregate != "" {
		q = q.Where("aggregate = ?", f.Aggregate)
	}
	if f.AggregateID != 0 {
		q = q.Where("aggregate_id = ?", f.AggregateID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var logs []models.EventLog
	if err := q.
		Order("created_at DESC, id DESC").
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
