package leave

import "context"

// LeaveService defines the leave request workflow. Decisions are
// strict single-shot transitions: deciding an already-decided request
// is an error, never a silent overwrite.
type LeaveService interface {
	// Apply files a new leave request for the caller with status
	// pending
	Apply(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)

	// Approve transitions a pending request to approved (admin)
	Approve(ctx context.Context, requestID string) (LeaveRequestResponse, error)

	// Reject transitions a pending request to rejected (admin)
	Reject(ctx context.Context, requestID string) (LeaveRequestResponse, error)

	// GetMyRequests lists the caller's own requests
	GetMyRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)

	// List lists requests across users (admin)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
}
