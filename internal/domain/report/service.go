package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// BuildDailyFeed lists the most recent punches of the location's local day
	BuildDailyFeed(ctx context.Context, req DailyFeedRequest) (DailyFeed, error)

	// BuildPeriodSummary totals the lookback window per week and, for older
	// weeks, per month
	BuildPeriodSummary(ctx context.Context, req PeriodSummaryRequest) (PeriodSummary, error)

	// BuildWeeklyGrid renders the 7-day in/out/hours grid for one ISO week
	BuildWeeklyGrid(ctx context.Context, req WeeklyGridRequest) (WeeklyGrid, error)

	// BuildPayrollRows splits one week's hours into regular and overtime
	BuildPayrollRows(ctx context.Context, req PayrollRequest) (PayrollReport, error)
}
