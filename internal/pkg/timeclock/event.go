package timeclock

import (
	"sort"
	"time"
)

type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

func (t PunchType) Valid() bool {
	return t == PunchIn || t == PunchOut
}

// PunchEvent is a stored punch: a UTC instant for one employee.
type PunchEvent struct {
	EmployeeID string
	Timestamp  time.Time
	Type       PunchType
}

// LocalizedEvent is a punch expressed as civil time in the location's zone.
type LocalizedEvent struct {
	EmployeeID string
	Type       PunchType
	Local      time.Time
}

// Localize converts punches into loc, preserving input order.
func Localize(events []PunchEvent, loc *time.Location) []LocalizedEvent {
	out := make([]LocalizedEvent, 0, len(events))
	for _, e := range events {
		out = append(out, LocalizedEvent{
			EmployeeID: e.EmployeeID,
			Type:       e.Type,
			Local:      e.Timestamp.In(loc),
		})
	}
	return out
}

// SortEvents orders events by local time ascending; equal instants keep
// their input order.
func SortEvents(events []LocalizedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Local.Before(events[j].Local)
	})
}

// GroupByEmployee splits events per employee, each group sorted ascending.
func GroupByEmployee(events []LocalizedEvent) map[string][]LocalizedEvent {
	grouped := make(map[string][]LocalizedEvent)
	for _, e := range events {
		grouped[e.EmployeeID] = append(grouped[e.EmployeeID], e)
	}
	for id := range grouped {
		SortEvents(grouped[id])
	}
	return grouped
}

func roundEvents(events []LocalizedEvent, r ClockRounding) []LocalizedEvent {
	out := make([]LocalizedEvent, len(events))
	for i, e := range events {
		e.Local = RoundClock(e.Local, r)
		out[i] = e
	}
	return out
}
