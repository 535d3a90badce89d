package report

import (
	"github.com/staffdeck/attendance-backend-go/internal/pkg/validator"
)

type MonthlyReportRequest struct {
	Month  string  `json:"month"` // YYYY-MM
	UserID *string `json:"user_id,omitempty"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required",
		})
	} else if _, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthlyStats is the attendance rollup for one month. All fields are
// derived; AvgHoursPerDay and AttendanceRate are zero when their
// denominators are zero.
type MonthlyStats struct {
	WorkingDays    int     `json:"working_days"`
	PresentDays    int     `json:"present_days"`
	TotalHours     float64 `json:"total_hours"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// LeaveTotals counts leave requests by status over a filtered set.
type LeaveTotals struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

type MonthlyReportResponse struct {
	Month      string       `json:"month"`
	UserID     *string      `json:"user_id,omitempty"`
	Attendance MonthlyStats `json:"attendance"`
	Leave      LeaveTotals  `json:"leave"`
}

type EmployeeSummaryResponse struct {
	TodayHours    float64 `json:"today_hours"`
	WeeklyHours   float64 `json:"weekly_hours"`
	HasClockedIn  bool    `json:"has_clocked_in"`
	HasClockedOut bool    `json:"has_clocked_out"`
}

type AdminSummaryResponse struct {
	TotalEmployees int64 `json:"total_employees"`
	ClockedInToday int64 `json:"clocked_in_today"`
	PendingLeaves  int64 `json:"pending_leaves"`
}
