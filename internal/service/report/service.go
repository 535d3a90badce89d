package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/staffdeck/attendance-backend-go/internal/domain/leave"
	"github.com/staffdeck/attendance-backend-go/internal/domain/report"
	"github.com/staffdeck/attendance-backend-go/internal/domain/user"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	userRepo       user.UserRepository
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		userRepo:       userRepo,
	}
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

// scopedUserID applies role scoping: non-admin callers only ever see
// their own data.
func scopedUserID(ctx context.Context, requested *string) (*string, error) {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if role != user.RoleAdmin {
		return &userID, nil
	}
	return requested, nil
}

// MonthlyReport implements report.ReportService.
func (r *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReportResponse{}, err
	}

	scope, err := scopedUserID(ctx, req.UserID)
	if err != nil {
		return report.MonthlyReportResponse{}, err
	}

	workingDays, err := WorkingDaysInMonth(req.Month)
	if err != nil {
		return report.MonthlyReportResponse{}, err
	}

	records, err := r.attendanceRepo.ListByMonth(ctx, req.Month, scope)
	if err != nil {
		return report.MonthlyReportResponse{}, err
	}

	requests, err := r.leaveRepo.List(ctx, leave.LeaveRequestFilter{UserID: scope, Month: &req.Month})
	if err != nil {
		return report.MonthlyReportResponse{}, err
	}

	return report.MonthlyReportResponse{
		Month:      req.Month,
		UserID:     scope,
		Attendance: ComputeMonthlyStats(workingDays, records),
		Leave:      ComputeLeaveTotals(requests),
	}, nil
}

// ExportAttendanceCSV implements report.ReportService.
func (r *ReportServiceImpl) ExportAttendanceCSV(ctx context.Context, req report.MonthlyReportRequest, w io.Writer) error {
	if err := req.Validate(); err != nil {
		return err
	}

	scope, err := scopedUserID(ctx, req.UserID)
	if err != nil {
		return err
	}

	records, err := r.attendanceRepo.ListByMonth(ctx, req.Month, scope)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "user_id", "user_name", "clock_in", "clock_out", "total_hours", "status"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Date.Format("2006-01-02"),
			record.UserID,
			"",
			"",
			"",
			"",
			string(record.Status),
		}
		if record.UserName != nil {
			row[2] = *record.UserName
		}
		if record.ClockIn != nil {
			row[3] = record.ClockIn.Format("15:04:05")
		}
		if record.ClockOut != nil {
			row[4] = record.ClockOut.Format("15:04:05")
		}
		if record.TotalHours != nil {
			row[5] = strconv.FormatFloat(*record.TotalHours, 'f', 2, 64)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfWeek(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// EmployeeSummary implements report.ReportService.
func (r *ReportServiceImpl) EmployeeSummary(ctx context.Context) (report.EmployeeSummaryResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return report.EmployeeSummaryResponse{}, err
	}

	var summary report.EmployeeSummaryResponse

	day := today()
	todayRecord, err := r.attendanceRepo.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return report.EmployeeSummaryResponse{}, err
	}
	if todayRecord != nil {
		summary.HasClockedIn = todayRecord.ClockIn != nil
		summary.HasClockedOut = todayRecord.ClockOut != nil
		if todayRecord.TotalHours != nil {
			summary.TodayHours = *todayRecord.TotalHours
		}
	}

	weekRecords, err := r.attendanceRepo.ListByUserAndDateRange(ctx, userID, startOfWeek(day), day)
	if err != nil {
		return report.EmployeeSummaryResponse{}, err
	}
	summary.WeeklyHours = round2(SumHours(weekRecords))

	return summary, nil
}

// AdminSummary implements report.ReportService.
func (r *ReportServiceImpl) AdminSummary(ctx context.Context) (report.AdminSummaryResponse, error) {
	totalEmployees, err := r.userRepo.Count(ctx)
	if err != nil {
		return report.AdminSummaryResponse{}, err
	}

	clockedInToday, err := r.attendanceRepo.CountByDate(ctx, today())
	if err != nil {
		return report.AdminSummaryResponse{}, err
	}

	pendingLeaves, err := r.leaveRepo.CountByStatus(ctx, leave.LeaveStatusPending)
	if err != nil {
		return report.AdminSummaryResponse{}, err
	}

	return report.AdminSummaryResponse{
		TotalEmployees: totalEmployees,
		ClockedInToday: clockedInToday,
		PendingLeaves:  pendingLeaves,
	}, nil
}
