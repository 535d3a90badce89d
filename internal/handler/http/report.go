package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/staffdeck/attendance-backend-go/internal/domain/report"
	"github.com/staffdeck/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	EmployeeSummary(w http.ResponseWriter, r *http.Request)
	AdminSummary(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func monthlyReportRequestFromQuery(r *http.Request) report.MonthlyReportRequest {
	req := report.MonthlyReportRequest{
		Month: r.URL.Query().Get("month"),
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		req.UserID = &userID
	}
	return req
}

// Monthly implements ReportHandler.
func (h *ReportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	reportResponse, err := h.reportService.MonthlyReport(r.Context(), monthlyReportRequestFromQuery(r))
	if err != nil {
		slog.Error("Monthly report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, reportResponse)
}

// ExportCSV implements ReportHandler.
func (h *ReportHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	req := monthlyReportRequestFromQuery(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.csv"`, req.Month))

	if err := h.reportService.ExportAttendanceCSV(r.Context(), req, w); err != nil {
		// Headers are already out; the truncated body is the signal.
		slog.Error("Export CSV service error", "error", err)
		return
	}
}

// EmployeeSummary implements ReportHandler.
func (h *ReportHandlerImpl) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.EmployeeSummary(r.Context())
	if err != nil {
		slog.Error("Employee summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// AdminSummary implements ReportHandler.
func (h *ReportHandlerImpl) AdminSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.AdminSummary(r.Context())
	if err != nil {
		slog.Error("Admin summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
