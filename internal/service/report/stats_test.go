package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/staffdeck/attendance-backend-go/internal/domain/leave"
)

func hoursPtr(h float64) *float64 { return &h }

func TestWorkingDaysInMonth(t *testing.T) {
	tests := []struct {
		month string
		want  int
	}{
		{"2024-02", 21}, // leap February, starts on a Thursday
		{"2024-01", 23},
		{"2024-03", 21},
		{"2023-02", 20},
		{"2024-12", 22},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			got, err := WorkingDaysInMonth(tt.month)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWorkingDaysInMonth_InvalidFormat(t *testing.T) {
	_, err := WorkingDaysInMonth("02-2024")
	assert.Error(t, err)
}

func TestComputeMonthlyStats(t *testing.T) {
	records := []attendance.Attendance{
		{TotalHours: hoursPtr(8)},
		{TotalHours: hoursPtr(8.5)},
		{TotalHours: hoursPtr(7.5)},
		{TotalHours: nil}, // clocked in but never out
	}

	stats := ComputeMonthlyStats(20, records)

	assert.Equal(t, 20, stats.WorkingDays)
	assert.Equal(t, 4, stats.PresentDays)
	assert.Equal(t, 24.0, stats.TotalHours)
	assert.Equal(t, 6.0, stats.AvgHoursPerDay)
	assert.Equal(t, 20.0, stats.AttendanceRate)
}

func TestComputeMonthlyStats_EmptyMonth(t *testing.T) {
	stats := ComputeMonthlyStats(21, nil)

	assert.Equal(t, 21, stats.WorkingDays)
	assert.Equal(t, 0, stats.PresentDays)
	assert.Equal(t, 0.0, stats.TotalHours)
	assert.Equal(t, 0.0, stats.AvgHoursPerDay)
	assert.Equal(t, 0.0, stats.AttendanceRate)
}

func TestComputeMonthlyStats_ZeroWorkingDays(t *testing.T) {
	stats := ComputeMonthlyStats(0, []attendance.Attendance{{TotalHours: hoursPtr(8)}})

	assert.Equal(t, 0.0, stats.AttendanceRate)
	assert.Equal(t, 8.0, stats.AvgHoursPerDay)
}

func TestSumHours_IgnoresOpenRecords(t *testing.T) {
	records := []attendance.Attendance{
		{TotalHours: hoursPtr(4.25)},
		{TotalHours: nil},
		{TotalHours: hoursPtr(4.25)},
	}

	assert.Equal(t, 8.5, SumHours(records))
}

func TestComputeLeaveTotals(t *testing.T) {
	requests := []leave.LeaveRequest{
		{Status: leave.LeaveStatusPending},
		{Status: leave.LeaveStatusApproved},
		{Status: leave.LeaveStatusApproved},
		{Status: leave.LeaveStatusRejected},
	}

	totals := ComputeLeaveTotals(requests)

	assert.Equal(t, 4, totals.Total)
	assert.Equal(t, 2, totals.Approved)
	assert.Equal(t, 1, totals.Pending)
	assert.Equal(t, 1, totals.Rejected)
}

func TestComputeLeaveTotals_Empty(t *testing.T) {
	totals := ComputeLeaveTotals(nil)

	assert.Equal(t, 0, totals.Total)
	assert.Equal(t, 0, totals.Approved)
	assert.Equal(t, 0, totals.Pending)
	assert.Equal(t, 0, totals.Rejected)
}
