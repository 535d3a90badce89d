package leave

import "context"

type LeaveRequestRepository interface {
	// Create inserts a new leave request
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	// GetByID retrieves a leave request by id
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Decide moves a pending request to a terminal status. The update
	// is conditional on the current status still being pending, so two
	// racing decisions cannot both commit; the loser gets
	// ErrLeaveRequestAlreadyProcessed.
	Decide(ctx context.Context, id string, decision LeaveRequest) error

	// List retrieves leave requests matching the filter, in
	// application order. The month filter matches requests whose start
	// or end date falls within the YYYY-MM month.
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)

	// CountByStatus returns the number of requests with the status
	CountByStatus(ctx context.Context, status LeaveStatus) (int64, error)
}
