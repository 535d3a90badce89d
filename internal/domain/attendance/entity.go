package attendance

import (
	"math"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
)

// Attendance is one per-user, per-day ledger entry. At most one record
// exists for a (UserID, Date) pair; ClockOut is only ever set on a
// record that already has ClockIn.
type Attendance struct {
	ID         string
	UserID     string
	Date       time.Time // calendar day, time part zero
	ClockIn    *time.Time
	ClockOut   *time.Time
	TotalHours *float64 // derived at clock-out
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	UserName *string
}

// HoursBetween returns the elapsed hours between clock-in and
// clock-out, rounded to two decimal places.
func HoursBetween(clockIn, clockOut time.Time) float64 {
	hours := clockOut.Sub(clockIn).Hours()
	return math.Round(hours*100) / 100
}
