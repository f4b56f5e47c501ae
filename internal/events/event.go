// Package events carries booking notifications out of the request path.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	BookingCreated       Type = "booking.created"
	BookingStatusChanged Type = "booking.statusChanged"
	RatingAttached       Type = "rating.attached"
)

const (
	AggregateBooking = "booking"
	AggregateRating  = "rating"
)

type Event struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	BarberID    uint      `json:"barber_id"`
	Aggregate   string    `json:"aggregate"`
	AggregateID uint      `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload"`
}

func New(t Type, barberID uint, aggregate string, aggregateID uint, payload any) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        t,
		BarberID:    barberID,
		Aggregate:   aggregate,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// --------------------------------------------------
// Payloads
// --------------------------------------------------

type BookingCreatedPayload struct {
	BookingID  uint            `json:"booking_id"`
	CustomerID string          `json:"customer_id"`
	ServiceID  uint            `json:"service_id"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    time.Time       `json:"end_time"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
}

type StatusChangedPayload struct {
	BookingID  uint   `json:"booking_id"`
	CustomerID string `json:"customer_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	Reason     string `json:"reason,omitempty"`
}

type RatingAttachedPayload struct {
	RatingID  uint `json:"rating_id"`
	BookingID uint `json:"booking_id"`
	ServiceID uint `json:"service_id"`
	Stars     int  `json:"stars"`
}
