package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for the attendance ledger.
// The (user_id, date) pair is unique; Create fails with a duplicate-key
// error when another record for the same day already exists.
type AttendanceRepository interface {
	// Create inserts a new attendance record
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByUserAndDate retrieves the record for a user on a calendar day.
	// Returns (nil, nil) when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// Update persists clock-out data on an existing record
	Update(ctx context.Context, att Attendance) error

	// ListByUserAndDateRange retrieves a user's records with date in
	// [start, end] inclusive, ordered by date
	ListByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]Attendance, error)

	// ListByMonth retrieves records whose date falls in the YYYY-MM
	// month, optionally restricted to one user, in ledger order
	ListByMonth(ctx context.Context, month string, userID *string) ([]Attendance, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// CountByDate returns the number of records on a calendar day
	CountByDate(ctx context.Context, date time.Time) (int64, error)
}
