package report

import (
	"context"
	"io"
)

// ReportService derives read-only rollups over the attendance and
// leave ledgers. No method mutates state.
type ReportService interface {
	// MonthlyReport computes attendance and leave statistics for a
	// month, optionally scoped to one employee
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)

	// ExportAttendanceCSV writes the month's attendance records as CSV
	ExportAttendanceCSV(ctx context.Context, req MonthlyReportRequest, w io.Writer) error

	// EmployeeSummary returns the caller's dashboard numbers
	EmployeeSummary(ctx context.Context) (EmployeeSummaryResponse, error)

	// AdminSummary returns company-wide dashboard numbers
	AdminSummary(ctx context.Context) (AdminSummaryResponse, error)
}
