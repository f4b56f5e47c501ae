package models

import "time"

// BlockedTime excludes an interval of a calendar date from booking.
// When AllDay is set StartTime and EndTime are empty.
type BlockedTime struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_blocked_times_barber_date,priority:1" json:"barber_id"`

	Date      time.Time `gorm:"type:date;index:idx_blocked_times_barber_date,priority:2" json:"date"`
	AllDay    bool      `json:"all_day"`
	StartTime string    `gorm:"size:5" json:"start_time,omitempty"`
	EndTime   string    `gorm:"size:5" json:"end_time,omitempty"`
	Reason    string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
