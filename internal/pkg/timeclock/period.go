package timeclock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidWeekSelector = errors.New("invalid week selector")

// Granularity picks which overtime cap applies.
type Granularity int

const (
	GranularityDay Granularity = iota
	GranularityWeek
)

// StartOfDay returns local midnight of t's calendar date in t's zone.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns local midnight of the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// SameDate reports whether a and b fall on the same civil date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekSpan is a Monday-start week keyed by its civil dates.
type WeekSpan struct {
	Monday time.Time
	Sunday time.Time
}

func WeekSpanOf(t time.Time) WeekSpan {
	monday := WeekStart(t)
	return WeekSpan{Monday: monday, Sunday: monday.AddDate(0, 0, 6)}
}

// Key sorts chronologically.
func (w WeekSpan) Key() string {
	return w.Monday.Format("2006-01-02")
}

// Label renders the span as 1/2/06–1/8/06.
func (w WeekSpan) Label() string {
	return w.Monday.Format("1/2/06") + "–" + w.Sunday.Format("1/2/06")
}

// MonthKey returns YYYY-MM of t's local date.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthLabel turns a YYYY-MM key into "January 2006".
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}

// ISOWeekLabel formats the ISO week containing t as 2006-W01.
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ParseISOWeek resolves "YYYY-Www" to local midnight of that week's Monday.
func ParseISOWeek(selector string, loc *time.Location) (time.Time, error) {
	s := strings.ToUpper(strings.TrimSpace(selector))
	yearPart, weekPart, ok := strings.Cut(s, "-W")
	if !ok || len(yearPart) != 4 || len(weekPart) < 1 || len(weekPart) > 2 {
		return time.Time{}, fmt.Errorf("%w: %q must look like 2006-W01", ErrInvalidWeekSelector, selector)
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil || year < 1970 {
		return time.Time{}, fmt.Errorf("%w: bad year in %q", ErrInvalidWeekSelector, selector)
	}
	week, err := strconv.Atoi(weekPart)
	if err != nil || week < 1 || week > isoWeeksInYear(year) {
		return time.Time{}, fmt.Errorf("%w: week out of range in %q", ErrInvalidWeekSelector, selector)
	}

	// January 4th always sits in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	return WeekStart(jan4).AddDate(0, 0, (week-1)*7), nil
}

func isoWeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 12, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// SelectWeek resolves a week selector relative to now. An empty selector means
// the current week. An invalid one still yields the current week, alongside
// the error so the caller can report it.
func SelectWeek(selector string, now time.Time) (time.Time, error) {
	current := WeekStart(now)
	if strings.TrimSpace(selector) == "" {
		return current, nil
	}

	start, err := ParseISOWeek(selector, now.Location())
	if err != nil {
		return current, err
	}
	return start, nil
}
