// Package catalog is the booking engine's view of the service catalog:
// lookups plus the rating aggregate the catalog exposes.
package catalog

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Store interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	RatingSummary(ctx context.Context, serviceID uint) (avg float64, count int, err error)
	UpdateRatingAggregate(ctx context.Context, serviceID uint, avg float64, count int) error
}

type Reader struct {
	store Store
}

func NewReader(store Store) *Reader {
	return &Reader{store: store}
}

func (r *Reader) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return r.store.GetService(ctx, id)
}

// ListActive returns the services customers can book.
func (r *Reader) ListActive(ctx context.Context) ([]models.Service, error) {
	return r.store.ListServices(ctx, true)
}

// RatingAggregator keeps rating_avg and rating_count in step with the
// ratings table. It recomputes from source so redelivery is harmless.
type RatingAggregator struct {
	store Store
	log   *zap.Logger
}

func NewRatingAggregator(store Store, log *zap.Logger) *RatingAggregator {
	return &RatingAggregator{store: store, log: logger.OrNop(log)}
}

func (a *RatingAggregator) Name() string { return "catalog.ratings" }

func (a *RatingAggregator) Publish(ctx context.Context, ev events.Event) error {
	if ev.Type != events.RatingAttached {
		return nil
	}

	p, ok := ev.Payload.(events.RatingAttachedPayload)
	if !ok {
		return fmt.Errorf("catalog: unexpected payload %T for %s", ev.Payload, ev.Type)
	}
	return a.Refresh(ctx, p.ServiceID)
}

func (a *RatingAggregator) Refresh(ctx context.Context, serviceID uint) error {
	avg, count, err := a.store.RatingSummary(ctx, serviceID)
	if err != nil {
		return err
	}

	avg = math.Round(avg*100) / 100
	if err := a.store.UpdateRatingAggregate(ctx, serviceID, avg, count); err != nil {
		return err
	}

	a.log.Debug("rating aggregate refreshed",
		zap.Uint("service_id", serviceID),
		zap.Float64("rating_avg", avg),
		zap.Int("rating_count", count),
	)
	return nil
}
