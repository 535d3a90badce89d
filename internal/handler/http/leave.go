package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffdeck/attendance-backend-go/internal/domain/leave"
	"github.com/staffdeck/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var applyReq leave.CreateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&applyReq); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveResponse, err := l.leaveService.Apply(r.Context(), applyReq)
	if err != nil {
		slog.Error("Apply leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request filed", "leave_request_id", leaveResponse.ID)
	response.Created(w, "Leave request submitted", leaveResponse)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")

	leaveResponse, err := l.leaveService.Approve(r.Context(), requestID)
	if err != nil {
		slog.Error("Approve leave service error", "error", err, "leave_request_id", requestID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request approved", "leave_request_id", requestID)
	response.SuccessWithMessage(w, "Leave request approved", leaveResponse)
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")

	leaveResponse, err := l.leaveService.Reject(r.Context(), requestID)
	if err != nil {
		slog.Error("Reject leave service error", "error", err, "leave_request_id", requestID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request rejected", "leave_request_id", requestID)
	response.SuccessWithMessage(w, "Leave request rejected", leaveResponse)
}

func leaveFilterFromQuery(r *http.Request) leave.LeaveRequestFilter {
	var filter leave.LeaveRequestFilter
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if month := r.URL.Query().Get("month"); month != "" {
		filter.Month = &month
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	return filter
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.GetMyRequests(r.Context(), leaveFilterFromQuery(r))
	if err != nil {
		slog.Error("GetMyRequests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// List implements LeaveHandler.
func (l *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.List(r.Context(), leaveFilterFromQuery(r))
	if err != nil {
		slog.Error("List leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}
