package timeclock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, chicago)
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2026, time.October, 12, 9), date(2026, time.October, 12, 0)},
		{date(2026, time.October, 16, 23), date(2026, time.October, 12, 0)},
		{date(2026, time.October, 18, 1), date(2026, time.October, 12, 0)},
		{date(2026, time.October, 19, 0), date(2026, time.October, 19, 0)},
		{date(2026, time.March, 1, 12), date(2026, time.February, 23, 0)},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, WeekStart(tc.in), "WeekStart(%s)", tc.in)
	}
}

func TestWeekSpan_Label(t *testing.T) {
	span := WeekSpanOf(date(2026, time.September, 16, 10))

	assert.Equal(t, "2026-09-14", span.Key())
	assert.Equal(t, "9/14/26–9/20/26", span.Label())
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "September 2026", MonthLabel("2026-09"))
	assert.Equal(t, "garbage", MonthLabel("garbage"))
}

func TestParseISOWeek(t *testing.T) {
	got, err := ParseISOWeek("2026-W42", chicago)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.October, 12, 0), got)

	got, err = ParseISOWeek("2026-w1", chicago)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.December, 29, 0), got)

	got, err = ParseISOWeek("2026-W53", chicago)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.December, 28, 0), got)

	for _, bad := range []string{"", "2026", "2026-42", "2026-W00", "2025-W53", "20x6-W10", "2026-W100"} {
		_, err := ParseISOWeek(bad, chicago)
		assert.True(t, errors.Is(err, ErrInvalidWeekSelector), "selector %q", bad)
	}
}

func TestISOWeekLabel_RoundTrip(t *testing.T) {
	label := ISOWeekLabel(date(2026, time.October, 14, 8))
	assert.Equal(t, "2026-W42", label)

	start, err := ParseISOWeek(label, chicago)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.October, 12, 0), start)
}

func TestSelectWeek(t *testing.T) {
	now := date(2026, time.October, 16, 12)

	got, err := SelectWeek("", now)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.October, 12, 0), got)

	got, err = SelectWeek("2026-W41", now)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.October, 5, 0), got)

	got, err = SelectWeek("last week", now)
	assert.ErrorIs(t, err, ErrInvalidWeekSelector)
	assert.Equal(t, date(2026, time.October, 12, 0), got)
}

func TestBucketWeeksAndMonths(t *testing.T) {
	now := date(2026, time.October, 16, 12)
	events := []LocalizedEvent{
		{EmployeeID: "a", Type: PunchIn, Local: date(2026, time.August, 31, 9)},
		{EmployeeID: "a", Type: PunchOut, Local: date(2026, time.September, 1, 17)},
		{EmployeeID: "a", Type: PunchIn, Local: date(2026, time.September, 8, 9)},
		{EmployeeID: "b", Type: PunchIn, Local: date(2026, time.September, 15, 9)},
		{EmployeeID: "b", Type: PunchIn, Local: date(2026, time.October, 13, 9)},
	}

	b := BucketWeeksAndMonths(events, now, 4)

	require.Len(t, b.Weeks, 2)
	assert.Equal(t, "2026-09-14", b.Weeks[0].Key)
	assert.Equal(t, "9/14/26–9/20/26", b.Weeks[0].Label)
	assert.Equal(t, "2026-10-12", b.Weeks[1].Key)

	require.Len(t, b.Months, 2)
	assert.Equal(t, "2026-08", b.Months[0].Key)
	assert.Equal(t, "August 2026", b.Months[0].Label)
	assert.Len(t, b.Months[0].Events, 1)
	assert.Equal(t, "2026-09", b.Months[1].Key)
	assert.Len(t, b.Months[1].Events, 2)
}

func TestBucketWeeksAndMonths_Empty(t *testing.T) {
	b := BucketWeeksAndMonths(nil, date(2026, time.October, 16, 12), 4)

	assert.Empty(t, b.Weeks)
	assert.Empty(t, b.Months)
}

func TestRecent(t *testing.T) {
	now := date(2026, time.October, 16, 12)
	events := []LocalizedEvent{
		{EmployeeID: "a", Type: PunchIn, Local: date(2026, time.October, 15, 9)},
		{EmployeeID: "a", Type: PunchIn, Local: date(2026, time.October, 16, 8)},
		{EmployeeID: "b", Type: PunchIn, Local: date(2026, time.October, 16, 9)},
		{EmployeeID: "a", Type: PunchOut, Local: date(2026, time.October, 16, 11)},
	}

	got := Recent(events, now, 2)

	require.Len(t, got, 2)
	assert.Equal(t, 11, got[0].Local.Hour())
	assert.Equal(t, 9, got[1].Local.Hour())
}

func TestNextPunchType(t *testing.T) {
	in, out := PunchIn, PunchOut

	assert.Equal(t, PunchIn, NextPunchType(nil))
	assert.Equal(t, PunchOut, NextPunchType(&in))
	assert.Equal(t, PunchIn, NextPunchType(&out))
}
