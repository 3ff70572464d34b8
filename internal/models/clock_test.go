package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := map[string]Clock{
		"00:00":           0,
		"09:30":           9*60 + 30,
		"17:45:00":        17*60 + 45,
		"08:15:00.000000": 8*60 + 15,
		"24:00":           EndOfDay,
	}
	for in, expected := range cases {
		c, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, c, in)
	}

	for _, in := range []string{"", "9:3", "25:00", "ab:cd"} {
		_, err := ParseClock(in)
		assert.ErrorIs(t, err, ValidationError, in)
	}
}

func TestClock_JSON(t *testing.T) {
	out, err := json.Marshal(Slot{Start: MustParseClock("09:00"), End: MustParseClock("09:30")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"09:00","end":"09:30"}`, string(out))

	var s Slot
	require.NoError(t, json.Unmarshal(out, &s))
	assert.Equal(t, MustParseClock("09:30"), s.End)
}

func TestInterval_Overlaps(t *testing.T) {
	a := Interval{Start: MustParseClock("10:00"), End: MustParseClock("10:30")}

	assert.True(t, a.Overlaps(Interval{Start: MustParseClock("10:15"), End: MustParseClock("10:45")}))
	assert.True(t, a.Overlaps(Interval{Start: MustParseClock("09:00"), End: MustParseClock("11:00")}))
	assert.False(t, a.Overlaps(Interval{Start: MustParseClock("10:30"), End: MustParseClock("11:00")}))
	assert.False(t, a.Overlaps(Interval{Start: MustParseClock("09:30"), End: MustParseClock("10:00")}))
}

func TestCalendarDate_keepsLocalDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2024-01-15 is a Monday in Tokyo but still Sunday in UTC.
	local := time.Date(2024, 1, 15, 1, 0, 0, 0, tokyo)

	assert.Equal(t, time.Sunday, local.UTC().Weekday())
	assert.Equal(t, time.Monday, CalendarDate(local).Weekday())
}

func TestClipToDay(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	multiDay, ok := ClipToDay(
		time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC),
		day, time.UTC)
	require.True(t, ok)
	assert.Equal(t, Interval{Start: 0, End: EndOfDay}, multiDay)

	partial, ok := ClipToDay(
		time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 14, 30, 20, 0, time.UTC),
		day, time.UTC)
	require.True(t, ok)
	assert.Equal(t, Interval{Start: MustParseClock("13:00"), End: MustParseClock("14:31")}, partial)

	_, ok = ClipToDay(
		time.Date(2024, 1, 14, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		day, time.UTC)
	assert.False(t, ok)
}
