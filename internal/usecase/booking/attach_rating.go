package booking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AttachRatingInput struct {
	BookingID  uint
	CustomerID string
	Stars      int
	Comment    string
}

type AttachRating struct {
	ledger  domain.Ledger
	ratings domain.RatingRepository
	events  events.Publisher
	log     *zap.Logger
}

func NewAttachRating(
	ledger domain.Ledger,
	ratings domain.RatingRepository,
	publisher events.Publisher,
	log *zap.Logger,
) *AttachRating {
	if publisher == nil {
		publisher = events.Discard{}
	}
	return &AttachRating{
		ledger:  ledger,
		ratings: ratings,
		events:  publisher,
		log:     logger.OrNop(log).Named("ratings"),
	}
}

// Execute attaches the single rating a completed booking may carry.
func (uc *AttachRating) Execute(
	ctx context.Context,
	in AttachRatingInput,
) (*models.Rating, error) {

	if err := domain.ValidateStars(in.Stars); err != nil {
		return nil, err
	}
	comment := strings.TrimSpace(in.Comment)
	if len(comment) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment too long", domain.ErrInvalidInput)
	}

	b, err := uc.ledger.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if in.CustomerID != "" && b.CustomerID != in.CustomerID {
		return nil, domain.ErrBookingNotFound
	}
	if domain.Status(b.Status) != domain.StatusCompleted {
		return nil, domain.ErrNotCompleted
	}

	existing, err := uc.ratings.GetRatingByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyRated
	}

	r := &models.Rating{
		BookingID: b.ID,
		BarberID:  b.BarberID,
		ServiceID: b.ServiceID,
		Stars:     in.Stars,
		Comment:   comment,
	}
	if err := uc.ratings.CreateRating(ctx, r); err != nil {
		return nil, err
	}

	uc.log.Info("rating attached",
		zap.Uint("booking_id", b.ID),
		zap.Int("stars", r.Stars),
	)

	uc.events.Dispatch(events.New(
		events.RatingAttached,
		b.BarberID,
		events.AggregateRating,
		r.ID,
		events.RatingAttachedPayload{
			RatingID:  r.ID,
			BookingID: b.ID,
			ServiceID: b.ServiceID,
			Stars:     r.Stars,
		},
	))

	return r, nil
}
