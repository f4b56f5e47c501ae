package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

func (r *RatingGormRepository) GetRatingByBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Rating, error) {

	var rating models.Rating
	err := conn(ctx, r.db).Where("booking_id = ?", bookingID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// CreateRating leans on the unique index on booking_id when two requests race.
func (r *RatingGormRepository) CreateRating(
	ctx context.Context,
	rating *models.Rating,
) error {

	err := conn(ctx, r.db).Create(rating).Error
	if isUniqueViolation(err) {
		return domain.ErrAlreadyRated
	}
	return err
}

var _ domain.RatingRepository = (*RatingGormRepository)(nil)
