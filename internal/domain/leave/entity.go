package leave

import "time"

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

type LeaveType string

const (
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeCasual    LeaveType = "casual"
	LeaveTypeAnnual    LeaveType = "annual"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypeEmergency LeaveType = "emergency"
)

// ValidLeaveTypes lists the accepted leave type values.
var ValidLeaveTypes = []string{
	string(LeaveTypeSick),
	string(LeaveTypeCasual),
	string(LeaveTypeAnnual),
	string(LeaveTypeMaternity),
	string(LeaveTypeEmergency),
}

// LeaveRequest entity. Pending is the only non-terminal status; a
// request is decided at most once, and ApprovedBy/ApprovedDate are
// both set on that transition and never before.
type LeaveRequest struct {
	ID     string
	UserID string
	Type   LeaveType

	StartDate time.Time
	EndDate   time.Time
	Reason    string

	Status       LeaveStatus
	AppliedDate  time.Time
	ApprovedBy   *string
	ApprovedDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserName *string
}

// IsDecided reports whether the request has reached a terminal status.
func (r *LeaveRequest) IsDecided() bool {
	return r.Status != LeaveStatusPending
}
