package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(typ PunchType, ts time.Time) LocalizedEvent {
	return LocalizedEvent{EmployeeID: "emp-1", Type: typ, Local: ts}
}

func TestPairer_Pair_Malformed(t *testing.T) {
	p := NewPairer(BreakDeduction{})

	assert.Empty(t, p.Pair(nil))
	assert.NotNil(t, p.Pair(nil))
	assert.Empty(t, p.Pair([]LocalizedEvent{ev(PunchIn, at(12, 9, 0, 0))}))
	assert.Empty(t, p.Pair([]LocalizedEvent{ev(PunchOut, at(12, 9, 0, 0))}))
}

func TestPairer_Pair_DoubleInUsesSecond(t *testing.T) {
	p := NewPairer(BreakDeduction{})

	shifts := p.Pair([]LocalizedEvent{
		ev(PunchIn, at(12, 8, 0, 0)),
		ev(PunchIn, at(12, 9, 0, 0)),
		ev(PunchOut, at(12, 12, 0, 0)),
	})

	require.Len(t, shifts, 1)
	assert.Equal(t, at(12, 9, 0, 0), shifts[0].Start.Local)
	assert.Equal(t, 3*time.Hour, shifts[0].Duration)
}

func TestPairer_Pair_LeadingOutAndTrailingIn(t *testing.T) {
	p := NewPairer(BreakDeduction{})

	shifts := p.Pair([]LocalizedEvent{
		ev(PunchOut, at(12, 7, 0, 0)),
		ev(PunchIn, at(12, 8, 0, 0)),
		ev(PunchOut, at(12, 12, 0, 0)),
		ev(PunchOut, at(12, 12, 30, 0)),
		ev(PunchIn, at(12, 13, 0, 0)),
	})

	require.Len(t, shifts, 1)
	assert.Equal(t, 4*time.Hour, TotalDuration(shifts))
}

func TestPairer_Pair_NegativeDurationClamped(t *testing.T) {
	p := NewPairer(BreakDeduction{})

	shifts := p.Pair([]LocalizedEvent{
		ev(PunchIn, at(12, 23, 0, 0)),
		ev(PunchOut, at(12, 0, 0, 0)),
	})

	require.Len(t, shifts, 1)
	assert.Zero(t, shifts[0].Duration)
}

func TestPairer_Pair_BreakDeduction(t *testing.T) {
	p := NewPairer(LegacyPolicy().Break)

	cases := []struct {
		name string
		out  time.Time
		want time.Duration
	}{
		{"under threshold", at(12, 13, 59, 0), 4*time.Hour + 59*time.Minute},
		{"exactly threshold", at(12, 14, 0, 0), 4*time.Hour + 30*time.Minute},
		{"five and a half", at(12, 14, 30, 0), 5 * time.Hour},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shifts := p.Pair([]LocalizedEvent{ev(PunchIn, at(12, 9, 0, 0)), ev(PunchOut, tc.out)})
			require.Len(t, shifts, 1)
			assert.Equal(t, tc.want, shifts[0].Duration)
		})
	}
}

func TestPairer_Pair_DeductionNeverNegative(t *testing.T) {
	p := NewPairer(BreakDeduction{Enabled: true, MinShift: time.Hour, Deduction: 3 * time.Hour})

	shifts := p.Pair([]LocalizedEvent{ev(PunchIn, at(12, 9, 0, 0)), ev(PunchOut, at(12, 11, 0, 0))})

	require.Len(t, shifts, 1)
	assert.Zero(t, shifts[0].Duration)
}

func TestGroupByEmployee(t *testing.T) {
	events := []LocalizedEvent{
		{EmployeeID: "b", Type: PunchOut, Local: at(12, 17, 0, 0)},
		{EmployeeID: "a", Type: PunchIn, Local: at(12, 9, 0, 0)},
		{EmployeeID: "b", Type: PunchIn, Local: at(12, 8, 0, 0)},
	}

	grouped := GroupByEmployee(events)

	require.Len(t, grouped, 2)
	require.Len(t, grouped["b"], 2)
	assert.Equal(t, PunchIn, grouped["b"][0].Type)
	assert.Equal(t, PunchOut, grouped["b"][1].Type)
}

func TestLocalize(t *testing.T) {
	utc := time.Date(2026, time.October, 12, 14, 0, 0, 0, time.UTC)
	out := Localize([]PunchEvent{{EmployeeID: "e", Timestamp: utc, Type: PunchIn}}, chicago)

	require.Len(t, out, 1)
	assert.Equal(t, 9, out[0].Local.Hour())
	assert.True(t, out[0].Local.Equal(utc))
}
