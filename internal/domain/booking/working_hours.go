package booking

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseClock parses an "HH:MM" time of day into minutes since midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDateTime, hm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DayStart returns midnight of t's calendar date in t's location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CivilDate normalizes t's calendar date to UTC midnight, the form used for date columns.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// At returns the instant hm on day's calendar date, in day's location.
func At(day time.Time, hm string) (time.Time, error) {
	m, err := ParseClock(hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), m/60, m%60, 0, 0, day.Location()), nil
}

// DayWindow resolves the opening interval of wh on day.
// ok is false when the day is closed or the record is unusable.
func DayWindow(wh *models.WorkingHours, day time.Time) (opensAt, closesAt time.Time, ok bool) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return time.Time{}, time.Time{}, false
	}

	opensAt, err := At(day, wh.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	closesAt, err = At(day, wh.EndTime)
	if err != nil || !closesAt.After(opensAt) {
		return time.Time{}, time.Time{}, false
	}
	return opensAt, closesAt, true
}

// ValidateWorkingHours checks a weekly schedule: one record per weekday and
// well-formed, ordered times on active days.
func ValidateWorkingHours(week []models.WorkingHours) error {
	seen := make(map[int]bool, len(week))
	for _, wh := range week {
		if wh.Weekday < int(time.Sunday) || wh.Weekday > int(time.Saturday) {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidWorkingHours, wh.Weekday)
		}
		if seen[wh.Weekday] {
			return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidWorkingHours, wh.Weekday)
		}
		seen[wh.Weekday] = true

		if !wh.Active {
			continue
		}
		start, err := ParseClock(wh.StartTime)
		if err != nil {
			return fmt.Errorf("%w: start_time %q", ErrInvalidWorkingHours, wh.StartTime)
		}
		end, err := ParseClock(wh.EndTime)
		if err != nil {
			return fmt.Errorf("%w: end_time %q", ErrInvalidWorkingHours, wh.EndTime)
		}
		if start >= end {
			return fmt.Errorf("%w: start must be before end on weekday %d", ErrInvalidWorkingHours, wh.Weekday)
		}
	}
	return nil
}

// ValidateBlockedTime checks that a partial block has an ordered interval.
func ValidateBlockedTime(bt models.BlockedTime) error {
	if bt.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidBlockedTime)
	}
	if bt.AllDay {
		return nil
	}
	start, err := ParseClock(bt.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start_time %q", ErrInvalidBlockedTime, bt.StartTime)
	}
	end, err := ParseClock(bt.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end_time %q", ErrInvalidBlockedTime, bt.EndTime)
	}
	if start >= end {
		return fmt.Errorf("%w: start must be before end", ErrInvalidBlockedTime)
	}
	return nil
}
