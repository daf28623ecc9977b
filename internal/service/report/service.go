package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timeclock"
	"golang.org/x/sync/errgroup"
)

const (
	feedTimeLayout = "03:04:05 PM"
	feedDateLayout = "Monday, January 02, 2006"
	gridTimeLayout = "03:04 PM"
	dateLayout     = "2006-01-02"
)

// Settings carries the report knobs loaded from configuration.
type Settings struct {
	FeedLimit    int
	LookbackDays int
	StaleWeeks   int
	Legacy       timeclock.Policy
	Current      timeclock.Policy
}

// NextTypeLookup resolves the type an employee's next punch should have.
type NextTypeLookup interface {
	NextType(ctx context.Context, employeeID string) (string, error)
}

type ReportServiceImpl struct {
	source   report.Source
	nextType NextTypeLookup
	settings Settings
	now      func() time.Time
}

func NewReportService(source report.Source, nextType NextTypeLookup, settings Settings) report.ReportService {
	return &ReportServiceImpl{
		source:   source,
		nextType: nextType,
		settings: settings,
		now:      time.Now,
	}
}

// snapshot is the fetched input of one report call.
type snapshot struct {
	zone   string
	loc    *time.Location
	now    time.Time
	events []timeclock.LocalizedEvent
	roster []employee.RosterEntry
}

func (s *ReportServiceImpl) locationZone(ctx context.Context, locationID string) (string, *time.Location, error) {
	zone, err := s.source.LocationTimezone(ctx, locationID)
	if err != nil {
		return "", nil, err
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q for location %s", report.ErrInvalidTimezone, zone, locationID)
	}
	return zone, loc, nil
}

// fetch loads the full roster and the punches in [start, end) concurrently.
func (s *ReportServiceImpl) fetch(ctx context.Context, locationID string, start, end time.Time) ([]timeclock.PunchEvent, []employee.RosterEntry, error) {
	var (
		events []timeclock.PunchEvent
		roster []employee.RosterEntry
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := s.source.FetchPunches(gCtx, locationID, start, end)
		if err != nil {
			return fmt.Errorf("failed to fetch punches: %w", err)
		}
		events = data
		return nil
	})
	g.Go(func() error {
		data, err := s.source.EmployeeRoster(gCtx, locationID, false)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		roster = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return events, roster, nil
}

func (s *ReportServiceImpl) load(ctx context.Context, locationID string, window func(now time.Time) (time.Time, time.Time)) (snapshot, error) {
	zone, loc, err := s.locationZone(ctx, locationID)
	if err != nil {
		return snapshot{}, err
	}

	now := s.now().In(loc)
	start, end := window(now)

	events, roster, err := s.fetch(ctx, locationID, start, end)
	if err != nil {
		return snapshot{}, err
	}

	return snapshot{
		zone:   zone,
		loc:    loc,
		now:    now,
		events: timeclock.Localize(events, loc),
		roster: roster,
	}, nil
}

// BuildDailyFeed implements report.ReportService.
func (s *ReportServiceImpl) BuildDailyFeed(ctx context.Context, req report.DailyFeedRequest) (report.DailyFeed, error) {
	if err := req.Validate(); err != nil {
		return report.DailyFeed{}, err
	}

	snap, err := s.load(ctx, req.LocationID, func(now time.Time) (time.Time, time.Time) {
		start := timeclock.StartOfDay(now)
		return start, start.AddDate(0, 0, 1)
	})
	if err != nil {
		return report.DailyFeed{}, err
	}

	names := nameIndex(snap.roster)
	recent := timeclock.Recent(snap.events, snap.now, s.settings.FeedLimit)

	items := make([]report.FeedItem, 0, len(recent))
	for _, ev := range recent {
		items = append(items, report.FeedItem{
			TimeStr:    ev.Local.Format(feedTimeLayout),
			EmployeeID: ev.EmployeeID,
			Employee:   names.name(ev.EmployeeID),
			Type:       string(ev.Type),
		})
	}

	feed := report.DailyFeed{
		LocationID:  req.LocationID,
		Timezone:    snap.zone,
		CurrentDate: snap.now.Format(feedDateLayout),
		Items:       items,
	}

	if req.EmployeeID != nil && *req.EmployeeID != "" && s.nextType != nil {
		next, err := s.nextType.NextType(ctx, *req.EmployeeID)
		if err != nil {
			return report.DailyFeed{}, err
		}
		feed.NextType = &next
	}

	return feed, nil
}

// BuildPeriodSummary implements report.ReportService.
func (s *ReportServiceImpl) BuildPeriodSummary(ctx context.Context, req report.PeriodSummaryRequest) (report.PeriodSummary, error) {
	if err := req.Validate(); err != nil {
		return report.PeriodSummary{}, err
	}

	snap, err := s.load(ctx, req.LocationID, func(now time.Time) (time.Time, time.Time) {
		today := timeclock.StartOfDay(now)
		return today.AddDate(0, 0, -s.settings.LookbackDays), today.AddDate(0, 0, 1)
	})
	if err != nil {
		return report.PeriodSummary{}, err
	}

	buckets := timeclock.BucketWeeksAndMonths(snap.events, snap.now, s.settings.StaleWeeks)
	names := nameIndex(snap.roster)
	policy := s.settings.Legacy

	summarize := func(in []timeclock.Bucket) []report.PeriodBucket {
		out := make([]report.PeriodBucket, 0, len(in))
		for _, b := range in {
			grouped := timeclock.GroupByEmployee(b.Events)
			totals := timeclock.DailyCapTotals(b.Key, grouped, policy)

			ids := names.rowIDs(grouped)
			rows := make([]report.SummaryRow, 0, len(ids))
			for _, id := range ids {
				rows = append(rows, summaryRow(id, names.name(id), totals[id]))
			}
			out = append(out, report.PeriodBucket{Key: b.Key, Label: b.Label, Rows: rows})
		}
		return out
	}

	return report.PeriodSummary{
		LocationID:  req.LocationID,
		Timezone:    snap.zone,
		Policy:      policy.Name,
		GeneratedAt: snap.now.Format(time.RFC3339),
		Weeks:       summarize(buckets.Weeks),
		Months:      summarize(buckets.Months),
	}, nil
}

func summaryRow(id, name string, total timeclock.PeriodTotal) report.SummaryRow {
	seconds := int64(total.Total / time.Second)
	return report.SummaryRow{
		EmployeeID:    id,
		Employee:      name,
		TotalSeconds:  seconds,
		Total:         formatHoursMinutes(seconds),
		TotalHours:    timeclock.DurationHours(total.Total),
		RegularHours:  timeclock.DurationHours(total.Regular),
		OvertimeHours: timeclock.DurationHours(total.Overtime),
	}
}

// formatHoursMinutes renders seconds as H:MM.
func formatHoursMinutes(seconds int64) string {
	minutes := seconds / 60
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// week holds the weekly-rounded results for one selected week.
type week struct {
	snapshot
	start    time.Time
	results  map[string]timeclock.WeekResult
	ids      []string
	names    rosterIndex
	warnings []string
}

func (s *ReportServiceImpl) loadWeek(ctx context.Context, locationID, selector string) (week, error) {
	var (
		start    time.Time
		warnings []string
	)

	snap, err := s.load(ctx, locationID, func(now time.Time) (time.Time, time.Time) {
		var selErr error
		start, selErr = timeclock.SelectWeek(selector, now)
		if selErr != nil {
			slog.WarnContext(ctx, "invalid week selector, using current week",
				"location_id", locationID, "week", selector, "error", selErr)
			warnings = append(warnings, fmt.Sprintf("%s: %q, showing the current week", report.ErrInvalidPeriodSelector, selector))
		}
		return start, start.AddDate(0, 0, 7)
	})
	if err != nil {
		return week{}, err
	}

	grouped := timeclock.GroupByEmployee(snap.events)
	names := nameIndex(snap.roster)
	ids := names.rowIDs(grouped)
	for _, id := range ids {
		if _, ok := grouped[id]; !ok {
			grouped[id] = nil
		}
	}

	return week{
		snapshot: snap,
		start:    start,
		results:  timeclock.WeeklyRounded(start, grouped, s.settings.Current),
		ids:      ids,
		names:    names,
		warnings: warnings,
	}, nil
}

// BuildWeeklyGrid implements report.ReportService.
func (s *ReportServiceImpl) BuildWeeklyGrid(ctx context.Context, req report.WeeklyGridRequest) (report.WeeklyGrid, error) {
	if err := req.Validate(); err != nil {
		return report.WeeklyGrid{}, err
	}

	wk, err := s.loadWeek(ctx, req.LocationID, req.Week)
	if err != nil {
		return report.WeeklyGrid{}, err
	}

	rows := make([]report.GridRow, 0, len(wk.ids))
	for _, id := range wk.ids {
		res := wk.results[id]
		days := make([]report.GridDay, 0, len(res.Days))
		for _, d := range res.Days {
			days = append(days, report.GridDay{
				Date:    d.Date.Format(dateLayout),
				Weekday: d.Date.Weekday().String(),
				In:      formatClock(d.In),
				Out:     formatClock(d.Out),
				Hours:   d.Hours,
				Seconds: d.Seconds,
			})
		}
		rows = append(rows, report.GridRow{
			EmployeeID:    id,
			EmployeeName:  wk.names.name(id),
			Days:          days,
			TotalHours:    res.TotalHours,
			RegularHours:  res.RegularHours,
			OvertimeHours: res.OvertimeHours,
		})
	}

	span := timeclock.WeekSpanOf(wk.start)
	return report.WeeklyGrid{
		LocationID: req.LocationID,
		Timezone:   wk.zone,
		Week:       timeclock.ISOWeekLabel(wk.start),
		WeekStart:  span.Monday.Format(dateLayout),
		WeekEnd:    span.Sunday.Format(dateLayout),
		Label:      span.Label(),
		Rows:       rows,
		Warnings:   wk.warnings,
	}, nil
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(gridTimeLayout)
	return &s
}

// BuildPayrollRows implements report.ReportService.
func (s *ReportServiceImpl) BuildPayrollRows(ctx context.Context, req report.PayrollRequest) (report.PayrollReport, error) {
	if err := req.Validate(); err != nil {
		return report.PayrollReport{}, err
	}

	wk, err := s.loadWeek(ctx, req.LocationID, req.Week)
	if err != nil {
		return report.PayrollReport{}, err
	}

	rows := make([]report.PayrollRow, 0, len(wk.ids))
	for _, id := range wk.ids {
		res := wk.results[id]
		active := wk.names.active(id)
		if !active && res.TotalHours.IsZero() {
			continue
		}
		rows = append(rows, report.PayrollRow{
			EmployeeID:    id,
			Employee:      wk.names.name(id),
			Active:        active,
			TotalHours:    res.TotalHours,
			RegularHours:  res.RegularHours,
			OvertimeHours: res.OvertimeHours,
		})
	}

	return report.PayrollReport{
		LocationID: req.LocationID,
		Week:       timeclock.ISOWeekLabel(wk.start),
		Label:      timeclock.WeekSpanOf(wk.start).Label(),
		Rows:       rows,
		Warnings:   wk.warnings,
	}, nil
}

// rosterIndex indexes the location's employees by id.
type rosterIndex map[string]employee.RosterEntry

func nameIndex(entries []employee.RosterEntry) rosterIndex {
	r := make(rosterIndex, len(entries))
	for _, e := range entries {
		r[e.ID] = e
	}
	return r
}

func (r rosterIndex) name(id string) string {
	if e, ok := r[id]; ok {
		return e.Name
	}
	return id
}

// active treats employees missing from the roster as active so their
// punches are never hidden.
func (r rosterIndex) active(id string) bool {
	if e, ok := r[id]; ok {
		return e.Active
	}
	return true
}

// rowIDs returns every active employee plus anyone with punches, ordered by
// name then id.
func (r rosterIndex) rowIDs(withPunches map[string][]timeclock.LocalizedEvent) []string {
	seen := make(map[string]struct{}, len(r)+len(withPunches))
	ids := make([]string, 0, len(r)+len(withPunches))
	for id, e := range r {
		if e.Active {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for id := range withPunches {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, nj := r.name(ids[i]), r.name(ids[j])
		if ni != nj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})
	return ids
}
