package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// Clock is a wall-clock time of day, in minutes since midnight. 24:00 is
// allowed as an end-of-day bound.
type Clock int

const EndOfDay Clock = 24 * 60

// ParseClock accepts "HH:MM" and the "HH:MM:SS[.ffffff]" form postgres returns for TIME columns.
func ParseClock(s string) (Clock, error) {
	if len(s) < 5 {
		return 0, errors.Wrapf(ValidationError, "invalid time string: %q", s)
	}
	s = s[:5]
	if s == "24:00" {
		return EndOfDay, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, errors.Wrapf(ValidationError, "invalid time string: %q", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func ClockFromTime(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d/time.Minute)
}

func (c Clock) Duration() time.Duration {
	return time.Duration(c) * time.Minute
}

// On returns the instant at this clock time on the calendar day of date, in loc.
func (c Clock) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(c.Duration())
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(ValidationError, "time must be a \"HH:MM\" string")
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Interval is a half-open [Start, End) range of wall-clock times within one day.
type Interval struct {
	Start Clock
	End   Clock
}

// Overlaps uses a strict test on both ends: touching intervals do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

func (i Interval) Valid() bool {
	return i.Start >= 0 && i.End <= EndOfDay && i.Start < i.End
}

func OverlapsAny(i Interval, others []Interval) bool {
	for _, o := range others {
		if i.Overlaps(o) {
			return true
		}
	}
	return false
}

// CalendarDate strips the time and location from t, keeping only the calendar
// components, so that weekday computations never shift across a day boundary.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(ValidationError, "invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DayBounds returns the instants delimiting the calendar day of date in loc.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// ClipToDay projects an instant range onto the wall-clock interval it covers
// on the given day. ok is false when the range does not touch the day.
func ClipToDay(from, to time.Time, date time.Time, loc *time.Location) (Interval, bool) {
	dayStart, dayEnd := DayBounds(date, loc)
	if !from.Before(dayEnd) || !to.After(dayStart) {
		return Interval{}, false
	}
	start := Clock(0)
	if from.After(dayStart) {
		start = ClockFromTime(from.In(loc))
	}
	end := EndOfDay
	if to.Before(dayEnd) {
		local := to.In(loc)
		end = ClockFromTime(local)
		if local.Second() > 0 || local.Nanosecond() > 0 {
			end++
		}
	}
	return Interval{Start: start, End: end}, start < end
}
