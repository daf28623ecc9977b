package timeclock

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	secondsPerHour = decimal.NewFromInt(3600)
	hoursPlaces    = int32(2)
)

// PeriodTotal is one employee's worked time in one period.
type PeriodTotal struct {
	EmployeeID string
	PeriodKey  string
	Total      time.Duration
	Regular    time.Duration
	Overtime   time.Duration
}

// SplitOvertime caps regular time and returns the excess as overtime.
func SplitOvertime(total, limit time.Duration) (regular, overtime time.Duration) {
	if total <= limit {
		return total, 0
	}
	return limit, total - limit
}

// Aggregate sums already paired shifts per employee for a single period.
func Aggregate(periodKey string, shiftsByEmployee map[string][]Shift, g Granularity, p Policy) map[string]PeriodTotal {
	totals := make(map[string]PeriodTotal, len(shiftsByEmployee))
	for employeeID, shifts := range shiftsByEmployee {
		total := TotalDuration(shifts)
		regular, overtime := SplitOvertime(total, p.Cap(g))
		totals[employeeID] = PeriodTotal{
			EmployeeID: employeeID,
			PeriodKey:  periodKey,
			Total:      total,
			Regular:    regular,
			Overtime:   overtime,
		}
	}
	return totals
}

// DailyCapTotals rounds every clock time, pairs with the policy's break rule
// and caps the whole window at DailyCap. The window is whatever the caller
// passes in, so a multi-week window still gets a single 8h cap.
func DailyCapTotals(periodKey string, eventsByEmployee map[string][]LocalizedEvent, p Policy) map[string]PeriodTotal {
	pairer := NewPairer(p.Break)

	shifts := make(map[string][]Shift, len(eventsByEmployee))
	for employeeID, events := range eventsByEmployee {
		sorted := append([]LocalizedEvent(nil), events...)
		SortEvents(sorted)
		shifts[employeeID] = pairer.Pair(roundEvents(sorted, p.Rounding))
	}

	return Aggregate(periodKey, shifts, GranularityDay, p)
}

// DayResult is one cell of the weekly grid.
type DayResult struct {
	Date    time.Time
	In      *time.Time
	Out     *time.Time
	Seconds int64
	Hours   decimal.Decimal
}

// WeekResult is one employee's row under the weekly-rounded policy.
type WeekResult struct {
	EmployeeID    string
	WeekStart     time.Time
	Days          [7]DayResult
	TotalSeconds  int64
	TotalHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
}

// WeeklyRounded computes the current policy for the week starting at
// weekStart (local midnight of a Monday). Each day is paired on its own, so
// a shift never crosses midnight. Every employee key in eventsByEmployee gets
// a result, including those whose events all fall outside the week.
func WeeklyRounded(weekStart time.Time, eventsByEmployee map[string][]LocalizedEvent, p Policy) map[string]WeekResult {
	results := make(map[string]WeekResult, len(eventsByEmployee))
	for employeeID, events := range eventsByEmployee {
		results[employeeID] = weeklyRoundedFor(employeeID, weekStart, events, p)
	}
	return results
}

func weeklyRoundedFor(employeeID string, weekStart time.Time, events []LocalizedEvent, p Policy) WeekResult {
	pairer := NewPairer(BreakDeduction{})

	sorted := append([]LocalizedEvent(nil), events...)
	SortEvents(sorted)

	res := WeekResult{EmployeeID: employeeID, WeekStart: weekStart}

	var weekSeconds int64
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)

		var dayEvents []LocalizedEvent
		for _, ev := range sorted {
			if SameDate(ev.Local, date) {
				dayEvents = append(dayEvents, ev)
			}
		}
		rounded := roundEvents(dayEvents, p.Rounding)

		day := DayResult{Date: date}
		for _, ev := range rounded {
			local := ev.Local
			switch ev.Type {
			case PunchIn:
				if day.In == nil {
					day.In = &local
				}
			case PunchOut:
				day.Out = &local
			}
		}

		day.Seconds = int64(TotalDuration(pairer.Pair(rounded)) / time.Second)
		day.Hours = secondsToHours(day.Seconds)
		weekSeconds += day.Seconds
		res.Days[i] = day
	}

	res.TotalSeconds = RoundSeconds(weekSeconds, p.TotalRoundingSeconds)
	res.TotalHours = secondsToHours(res.TotalSeconds)
	res.RegularHours, res.OvertimeHours = SplitHours(res.TotalHours, p.WeeklyCap)
	return res
}

// SplitHours applies the regular/overtime split to decimal hours.
func SplitHours(total decimal.Decimal, limit time.Duration) (regular, overtime decimal.Decimal) {
	capHours := decimal.NewFromFloat(limit.Hours())
	regular = decimal.Min(total, capHours)
	overtime = decimal.Max(total.Sub(capHours), decimal.Zero)
	return regular.Round(hoursPlaces), overtime.Round(hoursPlaces)
}

func secondsToHours(seconds int64) decimal.Decimal {
	return decimal.NewFromInt(seconds).Div(secondsPerHour).Round(hoursPlaces)
}

// DurationHours converts a duration to hours with two decimals.
func DurationHours(d time.Duration) decimal.Decimal {
	return secondsToHours(int64(d / time.Second))
}
