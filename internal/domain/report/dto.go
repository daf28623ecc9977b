package report

import (
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// DAILY FEED
// ========================================

type DailyFeedRequest struct {
	LocationID string  `json:"location_id"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *DailyFeedRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FeedItem struct {
	TimeStr    string `json:"time_str"`
	EmployeeID string `json:"employee_id"`
	Employee   string `json:"employee"`
	Type       string `json:"type"`
}

type DailyFeed struct {
	LocationID  string     `json:"location_id"`
	Timezone    string     `json:"timezone"`
	CurrentDate string     `json:"current_date"`
	Items       []FeedItem `json:"items"`
	NextType    *string    `json:"next_type,omitempty"`
}

// ========================================
// WEEK / MONTH SUMMARY
// ========================================

type PeriodSummaryRequest struct {
	LocationID string `json:"location_id"`
}

func (r *PeriodSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SummaryRow struct {
	EmployeeID    string          `json:"employee_id"`
	Employee      string          `json:"employee"`
	TotalSeconds  int64           `json:"total_seconds"`
	Total         string          `json:"total"` // H:MM
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

type PeriodBucket struct {
	Key   string       `json:"key"`
	Label string       `json:"label"`
	Rows  []SummaryRow `json:"rows"`
}

type PeriodSummary struct {
	LocationID  string         `json:"location_id"`
	Timezone    string         `json:"timezone"`
	Policy      string         `json:"policy"`
	GeneratedAt string         `json:"generated_at"`
	Weeks       []PeriodBucket `json:"weeks"`
	Months      []PeriodBucket `json:"months"`
}

// ========================================
// WEEKLY GRID
// ========================================

type WeeklyGridRequest struct {
	LocationID string `json:"location_id"`
	Week       string `json:"week,omitempty"` // 2026-W41, empty for the current week
}

func (r *WeeklyGridRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GridDay struct {
	Date    string          `json:"date"`
	Weekday string          `json:"weekday"`
	In      *string         `json:"in,omitempty"`
	Out     *string         `json:"out,omitempty"`
	Hours   decimal.Decimal `json:"hours"`
	Seconds int64           `json:"seconds"`
}

type GridRow struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	Days          []GridDay       `json:"days"`
	TotalHours    decimal.Decimal `json:"week_total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

type WeeklyGrid struct {
	LocationID string    `json:"location_id"`
	Timezone   string    `json:"timezone"`
	Week       string    `json:"week"`
	WeekStart  string    `json:"week_start"`
	WeekEnd    string    `json:"week_end"`
	Label      string    `json:"label"`
	Rows       []GridRow `json:"rows"`
	Warnings   []string  `json:"warnings,omitempty"`
}

// ========================================
// PAYROLL
// ========================================

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type PayrollRequest struct {
	LocationID string `json:"location_id"`
	Week       string `json:"week,omitempty"`
	Format     string `json:"format,omitempty"`
}

func (r *PayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}

	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
	if r.Format == "" {
		r.Format = FormatCSV
	}
	if !validator.IsInSlice(r.Format, []string{FormatJSON, FormatCSV, FormatXLSX}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of csv, xlsx, json",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRow struct {
	EmployeeID    string          `json:"employee_id"`
	Employee      string          `json:"employee"`
	Active        bool            `json:"active"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

type PayrollReport struct {
	LocationID string       `json:"location_id"`
	Week       string       `json:"week"`
	Label      string       `json:"label"`
	Rows       []PayrollRow `json:"rows"`
	Warnings   []string     `json:"warnings,omitempty"`
}
