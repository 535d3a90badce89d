package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/staffdeck/attendance-backend-go/internal/domain/leave"
	"github.com/staffdeck/attendance-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leaveRepo leave.LeaveRequestRepository
}

func NewLeaveService(leaveRepo leave.LeaveRequestRepository) leave.LeaveService {
	return &LeaveServiceImpl{leaveRepo: leaveRepo}
}

func callerFromContext(ctx context.Context) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", "", fmt.Errorf("role claim is missing or invalid")
	}

	return userID, user.Role(role), nil
}

func toResponse(req leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:          req.ID,
		UserID:      req.UserID,
		UserName:    req.UserName,
		Type:        string(req.Type),
		StartDate:   req.StartDate.Format("2006-01-02"),
		EndDate:     req.EndDate.Format("2006-01-02"),
		Reason:      req.Reason,
		Status:      string(req.Status),
		AppliedDate: req.AppliedDate.Format("2006-01-02"),
		ApprovedBy:  req.ApprovedBy,
	}
	if req.ApprovedDate != nil {
		approvedDate := req.ApprovedDate.Format("2006-01-02")
		resp.ApprovedDate = &approvedDate
	}
	return resp
}

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	now := time.Now()

	created, err := l.leaveRepo.Create(ctx, leave.LeaveRequest{
		ID:          id.String(),
		UserID:      userID,
		Type:        leave.LeaveType(strings.ToLower(req.Type)),
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
		Status:      leave.LeaveStatusPending,
		AppliedDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toResponse(created), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, requestID, leave.LeaveStatusApproved)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, requestID, leave.LeaveStatusRejected)
}

// decide moves a pending request to a terminal status. The repository
// refuses the update once the request left pending, so a request is
// decided exactly once.
func (l *LeaveServiceImpl) decide(ctx context.Context, requestID string, status leave.LeaveStatus) (leave.LeaveRequestResponse, error) {
	adminID, role, err := callerFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if role != user.RoleAdmin {
		return leave.LeaveRequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	now := time.Now()
	err = l.leaveRepo.Decide(ctx, requestID, leave.LeaveRequest{
		Status:       status,
		ApprovedBy:   &adminID,
		ApprovedDate: &now,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	decided, err := l.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toResponse(decided), nil
}

// GetMyRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) GetMyRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	filter.UserID = &userID

	return l.list(ctx, filter)
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return l.list(ctx, filter)
}

func (l *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toResponse(req))
	}

	return responses, nil
}
