package timeclock

import "time"

// Shift is one IN matched with the next OUT.
type Shift struct {
	Start    LocalizedEvent
	End      LocalizedEvent
	Duration time.Duration
}

type pairState int

const (
	awaitingIn pairState = iota
	holdingIn
)

// Pairer matches IN/OUT punches. Malformed sequences never fail: a repeated IN
// replaces the pending one, an OUT with nothing pending is ignored and a
// trailing IN is dropped.
type Pairer struct {
	Break BreakDeduction
}

func NewPairer(b BreakDeduction) Pairer {
	return Pairer{Break: b}
}

// Pair expects events already sorted ascending.
func (p Pairer) Pair(events []LocalizedEvent) []Shift {
	shifts := make([]Shift, 0, len(events)/2)

	state := awaitingIn
	var pending LocalizedEvent

	for _, ev := range events {
		switch ev.Type {
		case PunchIn:
			pending = ev
			state = holdingIn
		case PunchOut:
			if state != holdingIn {
				continue
			}
			shifts = append(shifts, p.closeShift(pending, ev))
			pending = LocalizedEvent{}
			state = awaitingIn
		}
	}

	return shifts
}

func (p Pairer) closeShift(in, out LocalizedEvent) Shift {
	d := out.Local.Sub(in.Local)
	if d < 0 {
		d = 0
	}
	if p.Break.Enabled && d >= p.Break.MinShift {
		d = max(0, d-p.Break.Deduction)
	}
	return Shift{Start: in, End: out, Duration: d}
}

// TotalDuration sums shift durations.
func TotalDuration(shifts []Shift) time.Duration {
	var total time.Duration
	for _, s := range shifts {
		total += s.Duration
	}
	return total
}
