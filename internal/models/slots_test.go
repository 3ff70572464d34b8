package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func weekday(d time.Weekday) *time.Weekday { return &d }

func recurring(d time.Weekday, start, end string) AvailabilityWindow {
	return AvailabilityWindow{
		DayOfWeek:   weekday(d),
		StartTime:   MustParseClock(start),
		EndTime:     MustParseClock(end),
		IsRecurring: true,
	}
}

func interval(start, end string) Interval {
	return Interval{Start: MustParseClock(start), End: MustParseClock(end)}
}

func slot(start, end string) Slot {
	return Slot{Start: MustParseClock(start), End: MustParseClock(end)}
}

func TestBuildSlots_excludesBookedIntervals(t *testing.T) {
	windows := []AvailabilityWindow{recurring(time.Monday, "09:00", "12:00")}
	busy := []Interval{interval("10:00", "10:30"), interval("11:00", "11:30")}

	slots := BuildSlots(windows, busy, 30*time.Minute)

	assert.Equal(t, []Slot{
		slot("09:00", "09:30"),
		slot("09:30", "10:00"),
		slot("10:30", "11:00"),
		slot("11:30", "12:00"),
	}, slots)
}

func TestBuildSlots_touchingIntervalsDoNotBlock(t *testing.T) {
	windows := []AvailabilityWindow{recurring(time.Monday, "09:00", "10:00")}
	busy := []Interval{interval("08:00", "09:00"), interval("10:00", "11:00")}

	slots := BuildSlots(windows, busy, 30*time.Minute)

	assert.Len(t, slots, 2)
}

func TestBuildSlots_partialTrailingSlotIsDropped(t *testing.T) {
	windows := []AvailabilityWindow{recurring(time.Monday, "09:00", "10:15")}

	slots := BuildSlots(windows, nil, 30*time.Minute)

	assert.Equal(t, []Slot{slot("09:00", "09:30"), slot("09:30", "10:00")}, slots)
}

func TestBuildSlots_busyIntervalInsideSlot(t *testing.T) {
	windows := []AvailabilityWindow{recurring(time.Monday, "09:00", "10:00")}
	busy := []Interval{interval("09:10", "09:20")}

	slots := BuildSlots(windows, busy, 30*time.Minute)

	assert.Equal(t, []Slot{slot("09:30", "10:00")}, slots)
}

func TestBuildSlots_ordersAcrossWindows(t *testing.T) {
	windows := []AvailabilityWindow{
		recurring(time.Monday, "14:00", "15:00"),
		recurring(time.Monday, "09:00", "10:00"),
	}

	slots := BuildSlots(windows, nil, time.Hour)

	assert.Equal(t, []Slot{slot("09:00", "10:00"), slot("14:00", "15:00")}, slots)
}

func TestBuildSlots_neverOverlapsBusy(t *testing.T) {
	windows := []AvailabilityWindow{recurring(time.Monday, "00:00", "24:00")}
	busy := []Interval{
		interval("01:15", "02:05"),
		interval("07:00", "07:01"),
		interval("12:00", "18:45"),
		interval("23:59", "24:00"),
	}
	for _, d := range []time.Duration{15 * time.Minute, 20 * time.Minute, 30 * time.Minute, 45 * time.Minute} {
		for _, s := range BuildSlots(windows, busy, d) {
			assert.False(t, OverlapsAny(Interval(s), busy), "slot %s-%s overlaps", s.Start, s.End)
		}
	}
}

func TestBuildSlots_isDeterministic(t *testing.T) {
	windows := []AvailabilityWindow{recurring(time.Monday, "09:00", "12:00")}
	busy := []Interval{interval("10:00", "10:30")}

	assert.Equal(t, BuildSlots(windows, busy, 30*time.Minute), BuildSlots(windows, busy, 30*time.Minute))
}

func TestSlotsResult_Message(t *testing.T) {
	assert.NotEqual(t,
		SlotsResult{Outcome: SlotsNoAvailability}.Message(),
		SlotsResult{Outcome: SlotsFullyBooked}.Message())
}

func TestBuildSlots_overlappingRecurringAndDatedWindows(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	dated := AvailabilityWindow{
		SpecificDate: &monday,
		StartTime:    MustParseClock("10:00"),
		EndTime:      MustParseClock("11:00"),
	}
	windows := WindowsForDate([]AvailabilityWindow{recurring(time.Monday, "09:00", "11:00"), dated},
		time.Monday, monday, DateModeUnion)

	slots := BuildSlots(windows, []Interval{interval("09:30", "10:00")}, 30*time.Minute)

	assert.Equal(t, []Slot{
		slot("09:00", "09:30"),
		slot("10:00", "10:30"),
		slot("10:30", "11:00"),
	}, slots)
}
