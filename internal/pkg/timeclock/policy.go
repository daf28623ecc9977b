// Package timeclock turns raw IN/OUT punches into rounded worked-hour totals.
//
// Every rounding constant lives in a Policy value that callers pass in, so the
// legacy report mode and the current one can be computed side by side.
package timeclock

import (
	"fmt"
	"time"
)

type RoundingMode int

const (
	// RoundHalfEven snaps minute+second to the nearest interval multiple,
	// ties going to the even multiple.
	RoundHalfEven RoundingMode = iota
	// RoundTippingPoint rounds the minute down while its remainder is below
	// TippingMinute and up otherwise (the 7/8 rule for 15 minute intervals).
	RoundTippingPoint
)

func (m RoundingMode) String() string {
	switch m {
	case RoundHalfEven:
		return "half_even"
	case RoundTippingPoint:
		return "tipping_point"
	default:
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
}

// ClockRounding describes how a single punch time is rounded.
type ClockRounding struct {
	Mode            RoundingMode
	IntervalMinutes int
	TippingMinute   int
}

// BreakDeduction removes an unpaid break from long shifts.
type BreakDeduction struct {
	Enabled   bool
	MinShift  time.Duration
	Deduction time.Duration
}

type Policy struct {
	Name     string
	Rounding ClockRounding
	Break    BreakDeduction

	// TotalRoundingSeconds rounds a summed week total; 0 leaves it untouched.
	TotalRoundingSeconds int64

	DailyCap  time.Duration
	WeeklyCap time.Duration
}

// LegacyPolicy reproduces the original daily-cap reports: 5 minute half-even
// rounding, a 30 minute break on shifts of 5 hours or more and an 8 hour cap.
func LegacyPolicy() Policy {
	return Policy{
		Name: "legacy",
		Rounding: ClockRounding{
			Mode:            RoundHalfEven,
			IntervalMinutes: 5,
		},
		Break: BreakDeduction{
			Enabled:   true,
			MinShift:  5 * time.Hour,
			Deduction: 30 * time.Minute,
		},
		DailyCap:  8 * time.Hour,
		WeeklyCap: 40 * time.Hour,
	}
}

// CurrentPolicy is the 15 minute 7/8 rule with weekly totals rounded to 900s
// and overtime past 40 hours.
func CurrentPolicy() Policy {
	return Policy{
		Name: "current",
		Rounding: ClockRounding{
			Mode:            RoundTippingPoint,
			IntervalMinutes: 15,
			TippingMinute:   8,
		},
		TotalRoundingSeconds: 900,
		DailyCap:             8 * time.Hour,
		WeeklyCap:            40 * time.Hour,
	}
}

// Cap returns the regular-time ceiling for the given granularity.
func (p Policy) Cap(g Granularity) time.Duration {
	if g == GranularityWeek {
		return p.WeeklyCap
	}
	return p.DailyCap
}

func (p Policy) Validate() error {
	if p.Rounding.IntervalMinutes <= 0 || p.Rounding.IntervalMinutes > 60 {
		return fmt.Errorf("%s policy: rounding interval must be between 1 and 60 minutes, got %d", p.Name, p.Rounding.IntervalMinutes)
	}
	if p.Rounding.Mode == RoundTippingPoint {
		if p.Rounding.TippingMinute <= 0 || p.Rounding.TippingMinute > p.Rounding.IntervalMinutes {
			return fmt.Errorf("%s policy: tipping minute must be between 1 and %d, got %d", p.Name, p.Rounding.IntervalMinutes, p.Rounding.TippingMinute)
		}
	}
	if p.Break.Enabled && (p.Break.MinShift <= 0 || p.Break.Deduction <= 0) {
		return fmt.Errorf("%s policy: break deduction needs a positive threshold and deduction", p.Name)
	}
	if p.Break.Enabled && p.Break.Deduction > p.Break.MinShift {
		return fmt.Errorf("%s policy: break deduction %s exceeds its threshold %s", p.Name, p.Break.Deduction, p.Break.MinShift)
	}
	if p.TotalRoundingSeconds < 0 {
		return fmt.Errorf("%s policy: total rounding must not be negative", p.Name)
	}
	if p.DailyCap <= 0 || p.WeeklyCap <= 0 {
		return fmt.Errorf("%s policy: overtime caps must be positive", p.Name)
	}
	return nil
}
