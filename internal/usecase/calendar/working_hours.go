package calendar

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingDay struct {
	Weekday   int
	Active    bool
	StartTime string
	EndTime   string
}

// SetWorkingHours replaces the whole week of a barber. Weekdays missing
// from the input become closed days.
type SetWorkingHours struct {
	repo domain.CalendarRepository
	log  *zap.Logger
}

func NewSetWorkingHours(repo domain.CalendarRepository, log *zap.Logger) *SetWorkingHours {
	return &SetWorkingHours{repo: repo, log: logger.OrNop(log).Named("calendar")}
}

func (uc *SetWorkingHours) Execute(
	ctx context.Context,
	barberID uint,
	days []WorkingDay,
) ([]models.WorkingHours, error) {

	week := make([]models.WorkingHours, 0, len(days))
	for _, d := range days {
		wh := models.WorkingHours{
			BarberID:  barberID,
			Weekday:   d.Weekday,
			Active:    d.Active,
			StartTime: strings.TrimSpace(d.StartTime),
			EndTime:   strings.TrimSpace(d.EndTime),
		}
		if !wh.Active {
			wh.StartTime, wh.EndTime = "", ""
		}
		week = append(week, wh)
	}

	if err := domain.ValidateWorkingHours(week); err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceWorkingHours(ctx, barberID, week); err != nil {
		return nil, err
	}

	uc.log.Info("working hours replaced", zap.Uint("barber_id", barberID), zap.Int("days", len(week)))
	return uc.repo.ListWorkingHours(ctx, barberID)
}

type GetWorkingHours struct {
	repo domain.CalendarRepository
}

func NewGetWorkingHours(repo domain.CalendarRepository) *GetWorkingHours {
	return &GetWorkingHours{repo: repo}
}

func (uc *GetWorkingHours) Execute(ctx context.Context, barberID uint) ([]models.WorkingHours, error) {
	return uc.repo.ListWorkingHours(ctx, barberID)
}
