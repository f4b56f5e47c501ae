package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var brt = time.FixedZone("BRT", -3*60*60)

func monday() time.Time {
	return time.Date(2026, 10, 19, 0, 0, 0, 0, brt)
}

func nineToFive() *models.WorkingHours {
	return &models.WorkingHours{Weekday: int(time.Monday), Active: true, StartTime: "09:00", EndTime: "17:00"}
}

func baseQuery() SlotQuery {
	return SlotQuery{
		Date:         monday(),
		Duration:     time.Hour,
		Step:         30 * time.Minute,
		WorkingHours: nineToFive(),
		Now:          time.Date(2026, 10, 19, 8, 0, 0, 0, brt),
	}
}

func at(hm string) time.Time {
	t, err := At(monday(), hm)
	if err != nil {
		panic(err)
	}
	return t
}

func times(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func TestComputeSlots_FullDay(t *testing.T) {
	a, err := ComputeSlots(baseQuery())
	require.NoError(t, err)

	assert.Equal(t, "2026-10-19", a.Date)
	assert.Empty(t, a.Reason)
	require.Len(t, a.Slots, 15)
	assert.Equal(t, "09:00", a.Slots[0].Time)
	// last start still ends at closing time
	assert.Equal(t, "16:00", a.Slots[14].Time)
	assert.True(t, a.Slots[14].End.Equal(at("17:00")))
	assert.Len(t, a.AvailableSlots(), 15)
}

func TestComputeSlots_HalfOpenOverlap(t *testing.T) {
	q := baseQuery()
	q.Bookings = []models.Booking{
		{Status: string(StatusPending), StartTime: at("10:00"), EndTime: at("11:00")},
	}

	a, err := ComputeSlots(q)
	require.NoError(t, err)

	reasons := map[string]string{}
	for _, s := range a.Slots {
		reasons[s.Time] = s.Reason
	}
	assert.Equal(t, ReasonBooked, reasons["09:30"])
	assert.Equal(t, ReasonBooked, reasons["10:00"])
	assert.Equal(t, ReasonBooked, reasons["10:30"])
	assert.Empty(t, reasons["09:00"], "ending exactly at 10:00 is adjacent")
	assert.Empty(t, reasons["11:00"], "starting exactly at 11:00 is adjacent")
}

func TestComputeSlots_IgnoresReleasedBookings(t *testing.T) {
	q := baseQuery()
	q.Bookings = []models.Booking{
		{Status: string(StatusCancelled), StartTime: at("10:00"), EndTime: at("11:00")},
		{Status: string(StatusNoShow), StartTime: at("12:00"), EndTime: at("13:00")},
	}

	a, err := ComputeSlots(q)
	require.NoError(t, err)
	assert.Len(t, a.AvailableSlots(), 15)
}

func TestComputeSlots_PastAndNotice(t *testing.T) {
	q := baseQuery()
	q.Now = at("10:15")
	q.MinNotice = time.Hour
	q.Bookings = []models.Booking{
		{Status: string(StatusConfirmed), StartTime: at("09:00"), EndTime: at("10:00")},
	}

	a, err := ComputeSlots(q)
	require.NoError(t, err)

	s, ok := a.SlotAt(at("09:00"))
	require.True(t, ok)
	assert.Equal(t, ReasonPast, s.Reason, "past wins over booked")

	s, _ = a.SlotAt(at("11:00"))
	assert.Equal(t, ReasonTooSoon, s.Reason)

	s, _ = a.SlotAt(at("11:30"))
	assert.True(t, s.Available)

	_, ok = a.SlotAt(at("09:10"))
	assert.False(t, ok)
}

func TestComputeSlots_Blocked(t *testing.T) {
	q := baseQuery()
	q.Blocked = []models.BlockedTime{
		{Date: CivilDate(monday()), StartTime: "12:00", EndTime: "13:00"},
		{Date: CivilDate(monday().AddDate(0, 0, 1)), AllDay: true},
	}

	a, err := ComputeSlots(q)
	require.NoError(t, err)

	s, _ := a.SlotAt(at("11:30"))
	assert.Equal(t, ReasonBlocked, s.Reason)
	s, _ = a.SlotAt(at("12:30"))
	assert.Equal(t, ReasonBlocked, s.Reason)
	s, _ = a.SlotAt(at("13:00"))
	assert.True(t, s.Available)

	q.Blocked = append(q.Blocked, models.BlockedTime{Date: CivilDate(monday()), AllDay: true})
	a, err = ComputeSlots(q)
	require.NoError(t, err)
	assert.Equal(t, ReasonBlocked, a.Reason)
	assert.Empty(t, a.Slots)
}

func TestComputeSlots_Closed(t *testing.T) {
	q := baseQuery()
	q.WorkingHours = nil
	a, err := ComputeSlots(q)
	require.NoError(t, err)
	assert.Equal(t, ReasonClosed, a.Reason)
	assert.NotNil(t, a.Slots)
	assert.Empty(t, a.Slots)

	q.WorkingHours = &models.WorkingHours{Active: false, StartTime: "09:00", EndTime: "17:00"}
	a, _ = ComputeSlots(q)
	assert.Equal(t, ReasonClosed, a.Reason)
}

func TestComputeSlots_ClosedWinsOverBookingsAndBlocks(t *testing.T) {
	q := baseQuery()
	q.WorkingHours = &models.WorkingHours{Weekday: int(time.Monday), Active: false}
	q.Bookings = []models.Booking{
		{Status: string(StatusConfirmed), StartTime: at("10:00"), EndTime: at("11:00")},
	}
	q.Blocked = []models.BlockedTime{
		{Date: CivilDate(monday()), StartTime: "12:00", EndTime: "13:00"},
	}

	a, err := ComputeSlots(q)
	require.NoError(t, err)
	assert.Equal(t, ReasonClosed, a.Reason)
	assert.Empty(t, a.Slots)
}

func TestComputeSlots_TomorrowKeepsMorningSlots(t *testing.T) {
	q := baseQuery()
	q.Now = at("12:10")
	q.Date = monday().AddDate(0, 0, 1)
	q.WorkingHours.Weekday = int(time.Tuesday)

	a, err := ComputeSlots(q)
	require.NoError(t, err)
	require.Len(t, a.Slots, 15)
	for _, s := range a.Slots {
		assert.True(t, s.Available, s.Time)
	}
}

func TestComputeSlots_ServiceLongerThanDay(t *testing.T) {
	q := baseQuery()
	q.Duration = 9 * time.Hour
	a, err := ComputeSlots(q)
	require.NoError(t, err)
	assert.Empty(t, a.Slots)
}

func TestComputeSlots_StepDoesNotAlignWithClose(t *testing.T) {
	q := baseQuery()
	q.WorkingHours = &models.WorkingHours{Active: true, StartTime: "09:00", EndTime: "10:45"}
	q.Duration = 45 * time.Minute
	a, err := ComputeSlots(q)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, times(a.Slots))
}

func TestComputeSlots_InvalidInput(t *testing.T) {
	q := baseQuery()
	q.Duration = 0
	_, err := ComputeSlots(q)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	q = baseQuery()
	q.Step = 0
	_, err = ComputeSlots(q)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(at("09:30"), at("10:30"), at("10:00"), at("11:00")))
	assert.False(t, Overlaps(at("09:00"), at("10:00"), at("10:00"), at("11:00")))
	assert.True(t, Overlaps(at("09:00"), at("12:00"), at("10:00"), at("11:00")))
}

func TestComputeSlots_UnreadableBlockClosesDay(t *testing.T) {
	for _, bt := range []models.BlockedTime{
		{Date: CivilDate(monday()), StartTime: "xx", EndTime: "13:00"},
		{Date: CivilDate(monday()), StartTime: "12:00", EndTime: "25:99"},
	} {
		q := baseQuery()
		q.Blocked = []models.BlockedTime{bt}

		a, err := ComputeSlots(q)
		require.NoError(t, err)
		assert.Equal(t, ReasonBlocked, a.Reason, bt.StartTime+"-"+bt.EndTime)
		assert.Empty(t, a.Slots)
	}
}
