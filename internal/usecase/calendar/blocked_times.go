package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BlockedTimeInput struct {
	BarberID  uint
	Date      string // YYYY-MM-DD
	AllDay    bool
	StartTime string
	EndTime   string
	Reason    string
}

// AddBlockedTime declares an exclusion. Existing bookings inside it are
// left alone; the barber settles them through the lifecycle.
type AddBlockedTime struct {
	repo domain.CalendarRepository
	log  *zap.Logger
}

func NewAddBlockedTime(repo domain.CalendarRepository, log *zap.Logger) *AddBlockedTime {
	return &AddBlockedTime{repo: repo, log: logger.OrNop(log).Named("calendar")}
}

func (uc *AddBlockedTime) Execute(ctx context.Context, in BlockedTimeInput) (*models.BlockedTime, error) {
	date, err := time.Parse(domain.DateLayout, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", domain.ErrInvalidBlockedTime, in.Date)
	}

	bt := &models.BlockedTime{
		BarberID: in.BarberID,
		Date:     domain.CivilDate(date),
		AllDay:   in.AllDay,
		Reason:   strings.TrimSpace(in.Reason),
	}
	if !bt.AllDay {
		bt.StartTime = strings.TrimSpace(in.StartTime)
		bt.EndTime = strings.TrimSpace(in.EndTime)
	}

	if err := domain.ValidateBlockedTime(*bt); err != nil {
		return nil, err
	}
	if len(bt.Reason) > 255 {
		return nil, fmt.Errorf("%w: reason too long", domain.ErrInvalidBlockedTime)
	}

	if err := uc.repo.CreateBlockedTime(ctx, bt); err != nil {
		return nil, err
	}

	uc.log.Info("blocked time added",
		zap.Uint("barber_id", bt.BarberID),
		zap.String("date", in.Date),
		zap.Bool("all_day", bt.AllDay),
	)
	return bt, nil
}

type ListBlockedTimes struct {
	repo domain.CalendarRepository
}

func NewListBlockedTimes(repo domain.CalendarRepository) *ListBlockedTimes {
	return &ListBlockedTimes{repo: repo}
}

// Execute lists blocks with a date in [from, to]. An empty to means from.
func (uc *ListBlockedTimes) Execute(ctx context.Context, barberID uint, from, to string) ([]models.BlockedTime, error) {
	lo, err := time.Parse(domain.DateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("%w: from %q", domain.ErrInvalidDateTime, from)
	}

	hi := lo
	if to != "" {
		if hi, err = time.Parse(domain.DateLayout, to); err != nil {
			return nil, fmt.Errorf("%w: to %q", domain.ErrInvalidDateTime, to)
		}
	}
	if hi.Before(lo) {
		return nil, fmt.Errorf("%w: to before from", domain.ErrInvalidInput)
	}

	return uc.repo.ListBlockedTimes(ctx, barberID, lo, hi)
}

type DeleteBlockedTime struct {
	repo domain.CalendarRepository
	log  *zap.Logger
}

func NewDeleteBlockedTime(repo domain.CalendarRepository, log *zap.Logger) *DeleteBlockedTime {
	return &DeleteBlockedTime{repo: repo, log: logger.OrNop(log).Named("calendar")}
}

func (uc *DeleteBlockedTime) Execute(ctx context.Context, barberID, id uint) error {
	if err := uc.repo.DeleteBlockedTime(ctx, barberID, id); err != nil {
		return err
	}
	uc.log.Info("blocked time deleted", zap.Uint("barber_id", barberID), zap.Uint("id", id))
	return nil
}
