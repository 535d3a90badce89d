package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/staffdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/staffdeck/attendance-backend-go/internal/handler/http/response"
)

// queryInt parses an integer query parameter, returning 0 when absent
// or malformed so DTO validation applies its defaults.
func queryInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return value
}

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetWeeklyHours(w http.ResponseWriter, r *http.Request)
	GetMonthly(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	attendanceResponse, err := a.attendanceService.ClockIn(r.Context())
	if err != nil {
		slog.Error("ClockIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in", attendanceResponse)
}

// ClockOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	attendanceResponse, err := a.attendanceService.ClockOut(r.Context())
	if err != nil {
		slog.Error("ClockOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if attendanceResponse == nil {
		// No open record today; nothing changed.
		response.SuccessWithMessage(w, "Nothing to clock out", nil)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", attendanceResponse)
}

// GetToday implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	attendanceResponse, err := a.attendanceService.GetToday(r.Context())
	if err != nil {
		slog.Error("GetToday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendanceResponse)
}

// GetWeeklyHours implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetWeeklyHours(w http.ResponseWriter, r *http.Request) {
	weeklyResponse, err := a.attendanceService.GetWeeklyHours(r.Context())
	if err != nil {
		slog.Error("GetWeeklyHours service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, weeklyResponse)
}

// GetMonthly implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	req := attendance.MonthlyAttendanceRequest{
		Month: r.URL.Query().Get("month"),
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		req.UserID = &userID
	}

	records, err := a.attendanceService.GetMonthly(r.Context(), req)
	if err != nil {
		slog.Error("GetMonthly service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// List implements AttendanceHandler.
func (a *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	listResponse, err := a.attendanceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, listResponse.Attendances, &response.Meta{
		Page:       listResponse.Page,
		Limit:      listResponse.Limit,
		TotalItems: listResponse.TotalCount,
		TotalPages: listResponse.TotalPages,
	})
}
