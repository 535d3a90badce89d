package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/attendance-backend-go/internal/domain/leave"
	"github.com/staffdeck/attendance-backend-go/internal/handler/http/response"
)

// fakeLeaveService scripts LeaveService outcomes per test.
type fakeLeaveService struct {
	applyResponse leave.LeaveRequestResponse
	applyErr      error
	approveErr    error
}

func (f *fakeLeaveService) Apply(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return f.applyResponse, f.applyErr
}

func (f *fakeLeaveService) Approve(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{ID: requestID, Status: "approved"}, f.approveErr
}

func (f *fakeLeaveService) Reject(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{ID: requestID, Status: "rejected"}, f.approveErr
}

func (f *fakeLeaveService) GetMyRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	return nil, nil
}

func (f *fakeLeaveService) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	return nil, nil
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestLeaveHandler_Apply_Created(t *testing.T) {
	handler := NewLeaveHandler(&fakeLeaveService{
		applyResponse: leave.LeaveRequestResponse{ID: "req-1", Status: "pending"},
	})

	body, _ := json.Marshal(leave.CreateLeaveRequestRequest{
		Type:      "annual",
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
		Reason:    "family trip",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Apply(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestLeaveHandler_Apply_ValidationFailure(t *testing.T) {
	handler := NewLeaveHandler(&fakeLeaveService{})

	body, _ := json.Marshal(leave.CreateLeaveRequestRequest{
		Type:      "annual",
		StartDate: "2026-09-11",
		EndDate:   "2026-09-07",
		Reason:    "family trip",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Apply(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "end_date")
}

func TestLeaveHandler_Apply_MalformedBody(t *testing.T) {
	handler := NewLeaveHandler(&fakeLeaveService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	handler.Apply(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaveHandler_Approve_AlreadyProcessedConflict(t *testing.T) {
	handler := NewLeaveHandler(&fakeLeaveService{approveErr: leave.ErrLeaveRequestAlreadyProcessed})

	r := chi.NewRouter()
	r.Post("/leaves/{id}/approve", handler.Approve)

	req := httptest.NewRequest(http.MethodPost, "/leaves/req-1/approve", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestLeaveHandler_Approve_NotFound(t *testing.T) {
	handler := NewLeaveHandler(&fakeLeaveService{approveErr: leave.ErrLeaveRequestNotFound})

	r := chi.NewRouter()
	r.Post("/leaves/{id}/approve", handler.Approve)

	req := httptest.NewRequest(http.MethodPost, "/leaves/missing/approve", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
