package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	ReasonClosed  = "closed"
	ReasonBlocked = "blocked"
	ReasonBooked  = "booked"
	ReasonPast    = "past"
	ReasonTooSoon = "too_soon"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time
}

type Slot struct {
	Time      string    `json:"time"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

// Availability is the ordered candidate list for one date. Reason is set
// when the whole day is unavailable and Slots is then empty.
type Availability struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
	Slots  []Slot `json:"slots"`
}

// SlotQuery holds everything ComputeSlots needs. Date must be expressed in
// the shop location; Bookings and Blocked may contain other dates.
type SlotQuery struct {
	Date         time.Time
	Duration     time.Duration
	Step         time.Duration
	WorkingHours *models.WorkingHours
	Blocked      []models.BlockedTime
	Bookings     []models.Booking
	Now          time.Time
	MinNotice    time.Duration
}

type interval struct {
	start time.Time
	end   time.Time
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) share an instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func overlapsAny(start, end time.Time, busy []interval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.start, b.end) {
			return true
		}
	}
	return false
}

// ComputeSlots lists every candidate start for the date with its availability.
func ComputeSlots(q SlotQuery) (Availability, error) {
	if q.Duration <= 0 {
		return Availability{}, ErrInvalidDuration
	}
	if q.Step <= 0 {
		return Availability{}, ErrInvalidStep
	}

	day := DayStart(q.Date)
	out := Availability{
		Date:  day.Format(DateLayout),
		Slots: []Slot{},
	}

	opensAt, closesAt, ok := DayWindow(q.WorkingHours, day)
	if !ok {
		out.Reason = ReasonClosed
		return out, nil
	}

	var blocked []interval
	for _, bt := range q.Blocked {
		if !SameDate(bt.Date, day) {
			continue
		}
		start, errStart := At(day, bt.StartTime)
		end, errEnd := At(day, bt.EndTime)
		// an unreadable partial block closes the whole day
		if bt.AllDay || errStart != nil || errEnd != nil {
			out.Reason = ReasonBlocked
			return out, nil
		}
		blocked = append(blocked, interval{start: start, end: end})
	}

	var booked []interval
	for _, b := range q.Bookings {
		if !Status(b.Status).Occupies() {
			continue
		}
		booked = append(booked, interval{start: b.StartTime, end: b.EndTime})
	}

	notBefore := q.Now.Add(q.MinNotice)

	for t := opensAt; !t.Add(q.Duration).After(closesAt); t = t.Add(q.Step) {
		end := t.Add(q.Duration)
		slot := Slot{
			Time:      t.Format(ClockLayout),
			Start:     t,
			End:       end,
			Available: true,
		}

		switch {
		case t.Before(q.Now):
			slot.Reason = ReasonPast
		case t.Before(notBefore):
			slot.Reason = ReasonTooSoon
		case overlapsAny(t, end, blocked):
			slot.Reason = ReasonBlocked
		case overlapsAny(t, end, booked):
			slot.Reason = ReasonBooked
		}
		slot.Available = slot.Reason == ""

		out.Slots = append(out.Slots, slot)
	}

	return out, nil
}

// SlotAt returns the candidate starting exactly at start.
func (a Availability) SlotAt(start time.Time) (Slot, bool) {
	for _, s := range a.Slots {
		if s.Start.Equal(start) {
			return s, true
		}
	}
	return Slot{}, false
}

// AvailableSlots filters the candidates down to the bookable ones.
func (a Availability) AvailableSlots() []Slot {
	out := make([]Slot, 0, len(a.Slots))
	for _, s := range a.Slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}
