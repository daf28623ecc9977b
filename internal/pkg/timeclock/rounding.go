package timeclock

import (
	"math"
	"time"
)

// RoundClock rounds the minute-of-hour of t according to r. Seconds and
// sub-seconds are always dropped.
func RoundClock(t time.Time, r ClockRounding) time.Time {
	if r.IntervalMinutes <= 0 {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	}

	switch r.Mode {
	case RoundTippingPoint:
		return roundTippingPoint(t, r.IntervalMinutes, r.TippingMinute)
	default:
		return roundHalfEven(t, r.IntervalMinutes)
	}
}

// roundTippingPoint keeps the calendar date: rolling past :59 moves the hour
// forward mod 24 and never advances the day.
func roundTippingPoint(t time.Time, interval, tipping int) time.Time {
	hour, minute := t.Hour(), t.Minute()

	rem := minute % interval
	if rem < tipping {
		minute -= rem
	} else {
		minute += interval - rem
	}

	if minute >= 60 {
		minute = 0
		hour = (hour + 1) % 24
	}

	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

// roundHalfEven adds the rounded offset to the top of the hour as wall-clock
// arithmetic, so :58 with a 5 minute interval lands on the next hour (and day).
func roundHalfEven(t time.Time, interval int) time.Time {
	seconds := float64(t.Minute()*60 + t.Second())
	step := float64(interval * 60)
	offset := int(math.RoundToEven(seconds/step) * step)

	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, offset, 0, t.Location())
}

// RoundSeconds rounds an aggregated duration in seconds to a multiple of
// interval: remainders below half the interval round down, the rest round up.
func RoundSeconds(total, interval int64) int64 {
	if interval <= 0 {
		return total
	}

	rem := total % interval
	if rem*2 < interval {
		return total - rem
	}
	return total + interval - rem
}
