package models

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
)

type AvailabilityWindow struct {
	ID           string
	UserID       string
	DayOfWeek    *time.Weekday
	SpecificDate *time.Time
	StartTime    Clock
	EndTime      Clock
	IsRecurring  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (w AvailabilityWindow) Interval() Interval {
	return Interval{Start: w.StartTime, End: w.EndTime}
}

// dayKey identifies the calendar bucket of the window: a weekday for recurring
// windows, a date for the others.
func (w AvailabilityWindow) dayKey() string {
	if w.IsRecurring {
		return fmt.Sprintf("dow:%d", *w.DayOfWeek)
	}
	return "date:" + w.SpecificDate.Format(time.DateOnly)
}

// DateMode controls how date-specific windows combine with recurring ones for the same day.
type DateMode string

const (
	// DateModeUnion adds date-specific windows to the recurring windows of that weekday.
	DateModeUnion DateMode = "union"
	// DateModeOverride makes date-specific windows replace the recurring ones for that date.
	DateModeOverride DateMode = "override"
)

func DateModeFromString(s string) DateMode {
	if s == string(DateModeOverride) {
		return DateModeOverride
	}
	return DateModeUnion
}

type AvailabilityPolicy struct {
	DateMode DateMode
	// AllowDisjointWindows lets a day carry several windows as long as they do not
	// overlap. When false, a day carries at most one window.
	AllowDisjointWindows bool
}

func (p AvailabilityPolicy) key(w AvailabilityWindow) string {
	if p.AllowDisjointWindows {
		return w.dayKey() + "@" + w.StartTime.String()
	}
	return w.dayKey()
}

// ValidateAvailabilityBatch checks a full replacement set and returns it
// normalized: fields that do not apply to the window kind are cleared and
// dates are reduced to their calendar components.
func ValidateAvailabilityBatch(windows []AvailabilityWindow, policy AvailabilityPolicy) ([]AvailabilityWindow, error) {
	out := make([]AvailabilityWindow, 0, len(windows))
	for i, w := range windows {
		if !w.Interval().Valid() {
			return nil, errors.Wrapf(ErrInvalidWindow, "window %d: start_time must be before end_time", i)
		}
		if w.IsRecurring {
			if w.DayOfWeek == nil || *w.DayOfWeek < time.Sunday || *w.DayOfWeek > time.Saturday {
				return nil, errors.Wrapf(ErrInvalidWindow, "window %d: recurring windows need a day_of_week between 0 and 6", i)
			}
			w.SpecificDate = nil
		} else {
			if w.SpecificDate == nil {
				return nil, errors.Wrapf(ErrInvalidWindow, "window %d: non-recurring windows need a specific_date", i)
			}
			date := CalendarDate(*w.SpecificDate)
			w.SpecificDate = &date
			w.DayOfWeek = nil
		}
		out = append(out, w)
	}

	byDay := make(map[string][]AvailabilityWindow)
	for _, w := range out {
		byDay[w.dayKey()] = append(byDay[w.dayKey()], w)
	}
	for _, group := range byDay {
		if len(group) < 2 {
			continue
		}
		if !policy.AllowDisjointWindows {
			if group[0].IsRecurring {
				return nil, errors.Wrapf(ErrDuplicateRecurringDay, "day_of_week %d", *group[0].DayOfWeek)
			}
			return nil, errors.Wrapf(ErrDuplicateSpecificDate, "specific_date %s",
				group[0].SpecificDate.Format(time.DateOnly))
		}
		slices.SortFunc(group, func(a, b AvailabilityWindow) int { return cmp.Compare(a.StartTime, b.StartTime) })
		for i := 1; i < len(group); i++ {
			if group[i].Interval().Overlaps(group[i-1].Interval()) {
				return nil, errors.Wrapf(ErrOverlappingWindows, "%s and %s",
					group[i-1].StartTime, group[i].StartTime)
			}
		}
	}
	return out, nil
}

type AvailabilityDiff struct {
	ToInsert []AvailabilityWindow
	ToUpdate []AvailabilityWindow
	ToDelete []string
}

func (d AvailabilityDiff) Empty() bool {
	return len(d.ToInsert) == 0 && len(d.ToUpdate) == 0 && len(d.ToDelete) == 0
}

// DiffAvailability computes the writes turning existing into desired. Rows are
// matched by their calendar bucket (and start time when disjoint windows are
// allowed); a matched row keeps its id.
func DiffAvailability(existing, desired []AvailabilityWindow, policy AvailabilityPolicy) AvailabilityDiff {
	current := make(map[string]AvailabilityWindow, len(existing))
	var diff AvailabilityDiff
	for _, w := range existing {
		k := policy.key(w)
		if _, dup := current[k]; dup {
			diff.ToDelete = append(diff.ToDelete, w.ID)
			continue
		}
		current[k] = w
	}

	for _, w := range desired {
		k := policy.key(w)
		old, ok := current[k]
		if !ok {
			diff.ToInsert = append(diff.ToInsert, w)
			continue
		}
		delete(current, k)
		if old.StartTime != w.StartTime || old.EndTime != w.EndTime {
			w.ID = old.ID
			w.CreatedAt = old.CreatedAt
			diff.ToUpdate = append(diff.ToUpdate, w)
		}
	}

	for _, w := range existing {
		if old, ok := current[policy.key(w)]; ok && old.ID == w.ID {
			diff.ToDelete = append(diff.ToDelete, w.ID)
		}
	}
	return diff
}

// SortAvailability orders recurring windows by (day_of_week, start_time), then
// date-specific windows by (specific_date, start_time).
func SortAvailability(windows []AvailabilityWindow) {
	slices.SortStableFunc(windows, func(a, b AvailabilityWindow) int {
		if a.IsRecurring != b.IsRecurring {
			if a.IsRecurring {
				return -1
			}
			return 1
		}
		if a.IsRecurring {
			if c := cmp.Compare(*a.DayOfWeek, *b.DayOfWeek); c != 0 {
				return c
			}
		} else if c := a.SpecificDate.Compare(*b.SpecificDate); c != 0 {
			return c
		}
		return cmp.Compare(a.StartTime, b.StartTime)
	})
}

// WindowsForDate keeps the windows applying to the given calendar date and
// weekday, ordered by start time.
func WindowsForDate(windows []AvailabilityWindow, weekday time.Weekday, date time.Time, mode DateMode) []AvailabilityWindow {
	date = CalendarDate(date)
	var recurring, specific []AvailabilityWindow
	for _, w := range windows {
		switch {
		case w.IsRecurring && w.DayOfWeek != nil && *w.DayOfWeek == weekday:
			recurring = append(recurring, w)
		case !w.IsRecurring && w.SpecificDate != nil && CalendarDate(*w.SpecificDate).Equal(date):
			specific = append(specific, w)
		}
	}
	selected := append(recurring, specific...)
	if mode == DateModeOverride && len(specific) > 0 {
		selected = specific
	}
	slices.SortStableFunc(selected, func(a, b AvailabilityWindow) int { return cmp.Compare(a.StartTime, b.StartTime) })
	return selected
}
