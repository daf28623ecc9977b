package timeclock

import (
	"sort"
	"time"
)

// Bucket is a labelled slice of events ready for aggregation.
type Bucket struct {
	Key    string
	Label  string
	Events []LocalizedEvent
}

// Buckets holds the summary split: recent weeks and older months, each
// ordered ascending by key.
type Buckets struct {
	Weeks  []Bucket
	Months []Bucket
}

// BucketWeeksAndMonths groups events into Monday-start weeks. A week whose
// Sunday falls before today minus staleWeeks moves to the monthly map, with
// every punch keyed by its own local month.
func BucketWeeksAndMonths(events []LocalizedEvent, now time.Time, staleWeeks int) Buckets {
	cutoff := StartOfDay(now).AddDate(0, 0, -7*staleWeeks)

	weeks := make(map[string]*Bucket)
	spans := make(map[string]WeekSpan)
	for _, ev := range events {
		span := WeekSpanOf(ev.Local)
		key := span.Key()
		b, ok := weeks[key]
		if !ok {
			b = &Bucket{Key: key, Label: span.Label()}
			weeks[key] = b
			spans[key] = span
		}
		b.Events = append(b.Events, ev)
	}

	months := make(map[string]*Bucket)
	for key, b := range weeks {
		if !spans[key].Sunday.Before(cutoff) {
			continue
		}
		for _, ev := range b.Events {
			mk := MonthKey(ev.Local)
			m, ok := months[mk]
			if !ok {
				m = &Bucket{Key: mk, Label: MonthLabel(mk)}
				months[mk] = m
			}
			m.Events = append(m.Events, ev)
		}
		delete(weeks, key)
	}

	return Buckets{Weeks: sortedBuckets(weeks), Months: sortedBuckets(months)}
}

func sortedBuckets(m map[string]*Bucket) []Bucket {
	out := make([]Bucket, 0, len(m))
	for _, b := range m {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Recent returns up to limit events from the same local date as now, newest
// first.
func Recent(events []LocalizedEvent, now time.Time, limit int) []LocalizedEvent {
	today := make([]LocalizedEvent, 0, len(events))
	for _, ev := range events {
		if SameDate(ev.Local, now) {
			today = append(today, ev)
		}
	}
	sort.SliceStable(today, func(i, j int) bool {
		return today[i].Local.After(today[j].Local)
	})
	if limit > 0 && len(today) > limit {
		today = today[:limit]
	}
	return today
}

// NextPunchType toggles from the most recent punch: after an IN comes an OUT,
// anything else starts with IN.
func NextPunchType(last *PunchType) PunchType {
	if last != nil && *last == PunchIn {
		return PunchOut
	}
	return PunchIn
}
