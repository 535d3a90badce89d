package attendance

import "context"

// AttendanceService defines business logic for the clock-in/clock-out
// lifecycle. Guard violations on the mutators are deliberately silent:
// repeated clock-ins return the existing record and clock-out without
// an open record is a no-op, mirroring the lenient attendance policy
// (the leave workflow is strict by contrast).
type AttendanceService interface {
	// ClockIn records the start of the caller's work day. Idempotent:
	// when today's record already has a clock-in it is returned unchanged.
	ClockIn(ctx context.Context) (AttendanceResponse, error)

	// ClockOut records the end of the caller's work day and derives
	// total hours. Returns nil without error when there is nothing to
	// do (no record, not clocked in, or already clocked out returns
	// the current record unchanged).
	ClockOut(ctx context.Context) (*AttendanceResponse, error)

	// GetToday returns the caller's record for today, or nil
	GetToday(ctx context.Context) (*AttendanceResponse, error)

	// GetWeeklyHours sums the caller's total hours for the current
	// week (Sunday through today, inclusive)
	GetWeeklyHours(ctx context.Context) (WeeklyHoursResponse, error)

	// GetMonthly returns records for a calendar month. Non-admin
	// callers are always scoped to their own records.
	GetMonthly(ctx context.Context, req MonthlyAttendanceRequest) ([]AttendanceResponse, error)

	// List retrieves attendance records with filters (admin)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
