package models

import (
	"cmp"
	"slices"
	"time"
)

const DefaultSlotDuration = 30 * time.Minute

type Slot struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

type SlotsOutcome string

const (
	SlotsAvailable      SlotsOutcome = "available"
	SlotsNoAvailability SlotsOutcome = "no_availability"
	SlotsFullyBooked    SlotsOutcome = "fully_booked"
)

type SlotsResult struct {
	Date      time.Time
	DayOfWeek time.Weekday
	Slots     []Slot
	Outcome   SlotsOutcome
}

func (r SlotsResult) Message() string {
	switch r.Outcome {
	case SlotsNoAvailability:
		return "no availability configured for this date"
	case SlotsFullyBooked:
		return "availability exists but is fully booked"
	default:
		return "slots available"
	}
}

// BuildSlots walks each window in steps of duration and keeps the full-length
// slots that do not overlap any busy interval. Overlapping windows may yield
// the same slot twice; the result is sorted by start and end without
// duplicates.
func BuildSlots(windows []AvailabilityWindow, busy []Interval, duration time.Duration) []Slot {
	if duration < time.Minute {
		return nil
	}
	slots := make([]Slot, 0)
	for _, w := range windows {
		for start := w.StartTime; start.Add(duration) <= w.EndTime; start = start.Add(duration) {
			candidate := Interval{Start: start, End: start.Add(duration)}
			if OverlapsAny(candidate, busy) {
				continue
			}
			slots = append(slots, Slot{Start: candidate.Start, End: candidate.End})
		}
	}
	slices.SortFunc(slots, func(a, b Slot) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
	return slices.Compact(slots)
}
