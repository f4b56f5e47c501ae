package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := conn(ctx, r.db).First(&svc, id).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &svc, nil
}

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	activeOnly bool,
) ([]models.Service, error) {

	q := conn(ctx, r.db).Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var list []models.Service
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CatalogGormRepository) RatingSummary(
	ctx context.Context,
	serviceID uint,
) (float64, int, error) {

	var row struct {
		Avg   float64
		Count int
	}
	if err := conn(ctx, r.db).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(stars), 0) AS avg, COUNT(*) AS count").
		Where("service_id = ?", serviceID).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}

func (r *CatalogGormRepository) UpdateRatingAggregate(
	ctx context.Context,
	serviceID uint,
	avg float64,
	count int,
) error {

	res := conn(ctx, r.db).
		Model(&models.Service{}).
		Where("id = ?", serviceID).
		Updates(map[string]any{"rating_avg": avg, "rating_count": count})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

var _ domain.ServiceCatalog = (*CatalogGormRepository)(nil)
