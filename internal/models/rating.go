package models

import "time"

type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint `gorm:"uniqueIndex;not null" json:"booking_id"`
	BarberID  uint `gorm:"index" json:"barber_id"`
	ServiceID uint `gorm:"index" json:"service_id"`

	Stars   int    `gorm:"not null" json:"stars"`
	Comment string `gorm:"size:500" json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
