package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const payrollSheet = "Payroll"

var payrollHeader = []string{"Employee", "Total Hours", "Regular Hours", "Overtime Hours"}

// WritePayrollCSV writes one row per employee with hours as %.2f.
func WritePayrollCSV(w io.Writer, r report.PayrollReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(payrollHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range r.Rows {
		record := []string{
			row.Employee,
			row.TotalHours.StringFixed(2),
			row.RegularHours.StringFixed(2),
			row.OvertimeHours.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePayrollXLSX writes the same table as WritePayrollCSV into a workbook.
// Hours are stored as numbers formatted with two decimals.
func WritePayrollXLSX(w io.Writer, r report.PayrollReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(payrollHeader))
	for i, h := range payrollHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(payrollSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(payrollSheet, "A1", "D1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	hours, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	for i, row := range r.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Employee,
			row.TotalHours.InexactFloat64(),
			row.RegularHours.InexactFloat64(),
			row.OvertimeHours.InexactFloat64(),
		}
		if err := f.SetSheetRow(payrollSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(r.Rows) > 0 {
		last := len(r.Rows) + 1
		if err := f.SetCellStyle(payrollSheet, "B2", fmt.Sprintf("D%d", last), hours); err != nil {
			return fmt.Errorf("failed to style hours: %w", err)
		}
	}

	if err := f.SetColWidth(payrollSheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(payrollSheet, "B", "D", 16); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// PayrollFilename names the download, e.g. payroll_2026-W42.csv.
func PayrollFilename(r report.PayrollReport, format string) string {
	return fmt.Sprintf("payroll_%s.%s", r.Week, format)
}
