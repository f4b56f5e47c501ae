package timezone

import (
	"sync"
	"time"

	// shop zones must resolve even on images without zoneinfo
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

var cache sync.Map // name -> *time.Location

func load(tz string) (*time.Location, error) {
	if v, ok := cache.Load(tz); ok {
		return v.(*time.Location), nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	cache.Store(tz, loc)
	return loc, nil
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := load(tz)
	return err == nil
}

// Location resolves tz, falling back to the shop default.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := load(tz); err == nil {
			return loc
		}
	}
	if loc, err := load(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock reads wall time in a fixed location. It satisfies booking.Clock.
type Clock struct {
	loc *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = Location(DefaultTimezone)
	}
	return Clock{loc: loc}
}

func (c Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c Clock) Location() *time.Location {
	return c.loc
}
