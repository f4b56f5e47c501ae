package models

import "time"

type EventLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventID     string `gorm:"size:36;uniqueIndex;not null" json:"event_id"`
	Type        string `gorm:"size:50;not null" json:"type"`
	BarberID    uint   `json:"barber_id"`
	Aggregate   string `gorm:"size:50" json:"aggregate"`
	AggregateID uint   `json:"aggregate_id"`
	Payload     string `gorm:"type:text" json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}

// EventLogFilter narrows an event log listing. Zero fields match everything.
type EventLogFilter struct {
	BarberID    uint
	Type        string
	Aggregate   string
	AggregateID uint
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}
