package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	reportService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/report"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	// Week and month totals over the lookback window
	GetSummary(w http.ResponseWriter, r *http.Request)

	// 7-day in/out grid
	GetWeeklyGrid(w http.ResponseWriter, r *http.Request)

	// Payroll export (csv, xlsx or json)
	GetPayroll(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetSummary handles GET /locations/{id}/reports/summary
func (h *reportHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	req := report.PeriodSummaryRequest{LocationID: chi.URLParam(r, "id")}

	result, err := h.reportService.BuildPeriodSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeeklyGrid handles GET /locations/{id}/reports/weekly?week=2026-W41
func (h *reportHandlerImpl) GetWeeklyGrid(w http.ResponseWriter, r *http.Request) {
	req := report.WeeklyGridRequest{
		LocationID: chi.URLParam(r, "id"),
		Week:       r.URL.Query().Get("week"),
	}

	result, err := h.reportService.BuildWeeklyGrid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPayroll handles GET /locations/{id}/reports/payroll?week=&format=
func (h *reportHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := report.PayrollRequest{
		LocationID: chi.URLParam(r, "id"),
		Week:       r.URL.Query().Get("week"),
		Format:     r.URL.Query().Get("format"),
	}

	// Validate DTO, normalizes the format
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.BuildPayrollRows(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch req.Format {
	case report.FormatJSON:
		response.Success(w, result)
		return
	case report.FormatXLSX:
		err = reportService.WritePayrollXLSX(&buf, result)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		err = reportService.WritePayrollCSV(&buf, result)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		slog.ErrorContext(ctx, "payroll export failed", "location_id", req.LocationID, "format", req.Format, "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportService.PayrollFilename(result, req.Format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
