package report

import (
	"fmt"
	"math"
	"time"

	"github.com/staffdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/staffdeck/attendance-backend-go/internal/domain/leave"
	"github.com/staffdeck/attendance-backend-go/internal/domain/report"
)

// WorkingDaysInMonth counts the days in a YYYY-MM month that are
// neither Saturday nor Sunday.
func WorkingDaysInMonth(month string) (int, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, fmt.Errorf("failed to parse month: %w", err)
	}

	workingDays := 0
	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			workingDays++
		}
	}

	return workingDays, nil
}

// SumHours totals the recorded hours over a set of attendance records.
// Records without a derived total contribute nothing.
func SumHours(records []attendance.Attendance) float64 {
	var total float64
	for _, record := range records {
		if record.TotalHours != nil {
			total += *record.TotalHours
		}
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeMonthlyStats derives the attendance rollup for one month.
// Empty inputs yield all zeros rather than NaN.
func ComputeMonthlyStats(workingDays int, records []attendance.Attendance) report.MonthlyStats {
	stats := report.MonthlyStats{
		WorkingDays: workingDays,
		PresentDays: len(records),
		TotalHours:  round2(SumHours(records)),
	}

	if stats.PresentDays > 0 {
		stats.AvgHoursPerDay = round2(stats.TotalHours / float64(stats.PresentDays))
	}
	if workingDays > 0 {
		stats.AttendanceRate = round2(float64(stats.PresentDays) / float64(workingDays) * 100)
	}

	return stats
}

// ComputeLeaveTotals counts leave requests by status.
func ComputeLeaveTotals(requests []leave.LeaveRequest) report.LeaveTotals {
	totals := report.LeaveTotals{Total: len(requests)}
	for _, req := range requests {
		switch req.Status {
		case leave.LeaveStatusApproved:
			totals.Approved++
		case leave.LeaveStatusPending:
			totals.Pending++
		case leave.LeaveStatusRejected:
			totals.Rejected++
		}
	}
	return totals
}
