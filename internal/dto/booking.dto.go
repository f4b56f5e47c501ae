package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingDTO struct {
	ID          uint       `json:"id"`
	BarberID    uint       `json:"barber_id"`
	CustomerID  string     `json:"customer_id"`
	ServiceID   uint       `json:"service_id"`
	ServiceName string     `json:"service_name,omitempty"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	DurationMin int        `json:"duration_min"`
	Status      string     `json:"status"`
	TotalPrice  string     `json:"total_price"`
	Notes       string     `json:"notes,omitempty"`
	Reason      string     `json:"cancel_reason,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// BookingListDTO is a day sheet row.
type BookingListDTO struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	CustomerID  string    `json:"customer_id"`
	ServiceName string    `json:"service_name"`
	TotalPrice  string    `json:"total_price"`
}

// ToBooking renders b with its times in loc.
func ToBooking(b *models.Booking, loc *time.Location) BookingDTO {
	start := b.StartTime.In(loc)
	return BookingDTO{
		ID:          b.ID,
		BarberID:    b.BarberID,
		CustomerID:  b.CustomerID,
		ServiceID:   b.ServiceID,
		ServiceName: b.Service.Name,
		Date:        start.Format("2006-01-02"),
		Time:        start.Format("15:04"),
		StartTime:   start,
		EndTime:     b.EndTime.In(loc),
		DurationMin: b.DurationMin,
		Status:      b.Status,
		TotalPrice:  b.TotalPrice.StringFixed(2),
		Notes:       b.Notes,
		Reason:      b.CancelReason,
		ConfirmedAt: b.ConfirmedAt,
		CompletedAt: b.CompletedAt,
		CancelledAt: b.CancelledAt,
		CreatedAt:   b.CreatedAt,
	}
}

func ToBookings(list []models.Booking, loc *time.Location) []BookingDTO {
	out := make([]BookingDTO, 0, len(list))
	for i := range list {
		out = append(out, ToBooking(&list[i], loc))
	}
	return out
}

func ToBookingList(list []models.Booking, loc *time.Location) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(list))
	for _, b := range list {
		out = append(out, BookingListDTO{
			ID:          b.ID,
			StartTime:   b.StartTime.In(loc),
			EndTime:     b.EndTime.In(loc),
			Status:      b.Status,
			CustomerID:  b.CustomerID,
			ServiceName: b.Service.Name,
			TotalPrice:  b.TotalPrice.StringFixed(2),
		})
	}
	return out
}

type ServiceDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	DurationMin int     `json:"duration_min"`
	Price       string  `json:"price"`
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int     `json:"rating_count"`
}

func ToServices(list []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(list))
	for _, s := range list {
		out = append(out, ServiceDTO{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			DurationMin: s.DurationMin,
			Price:       s.Price.StringFixed(2),
			RatingAvg:   s.RatingAvg,
			RatingCount: s.RatingCount,
		})
	}
	return out
}
