package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID   uint   `gorm:"index:idx_bookings_barber_date,priority:1;not null" json:"barber_id"`
	CustomerID string `gorm:"size:64;index;not null" json:"customer_id"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	AppointmentDate time.Time `gorm:"type:date;index:idx_bookings_barber_date,priority:2;not null" json:"appointment_date"`
	StartTime       time.Time `gorm:"not null" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`
	DurationMin     int       `gorm:"not null" json:"duration_min"`

	Status     string          `gorm:"size:20;default:'pending';not null" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`

	Notes        string `gorm:"size:500" json:"notes"`
	CancelReason string `gorm:"size:500" json:"cancel_reason,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
