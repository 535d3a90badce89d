package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/staffdeck/attendance-backend-go/internal/domain/user"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{attendanceRepo: attendanceRepo}
}

// callerFromContext extracts the authenticated user's id and role from
// the JWT claims.
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

// today returns the current calendar day with the time part zeroed.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the Sunday that begins the week containing day.
func startOfWeek(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:         att.ID,
		UserID:     att.UserID,
		UserName:   att.UserName,
		Date:       att.Date.Format("2006-01-02"),
		ClockIn:    timePtrToString(att.ClockIn),
		ClockOut:   timePtrToString(att.ClockOut),
		TotalHours: att.TotalHours,
		Status:     string(att.Status),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ClockIn implements attendance.AttendanceService. When a record with
// a clock-in already exists for today it is returned unchanged; when
// two clock-ins race, the unique index on (user_id, date) decides the
// winner and the loser re-reads the committed record.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day := today()

	existing, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil && existing.ClockIn != nil {
		return toResponse(*existing), nil
	}

	now := time.Now()

	if existing != nil {
		existing.ClockIn = &now
		existing.Status = attendance.StatusPresent
		if err := a.attendanceRepo.Update(ctx, *existing); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return toResponse(*existing), nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	created, err := a.attendanceRepo.Create(ctx, attendance.Attendance{
		ID:      id.String(),
		UserID:  userID,
		Date:    day,
		ClockIn: &now,
		Status:  attendance.StatusPresent,
	})
	if err != nil {
		if isUniqueViolation(err) {
			committed, readErr := a.attendanceRepo.GetByUserAndDate(ctx, userID, day)
			if readErr != nil {
				return attendance.AttendanceResponse{}, readErr
			}
			if committed != nil {
				return toResponse(*committed), nil
			}
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return toResponse(created), nil
}

// ClockOut implements attendance.AttendanceService. Nothing to clock
// out of is not an error: with no record or no clock-in it returns
// (nil, nil), and a second clock-out returns the record unchanged.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (*attendance.AttendanceResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, today())
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.ClockIn == nil {
		return nil, nil
	}
	if existing.ClockOut != nil {
		resp := toResponse(*existing)
		return &resp, nil
	}

	now := time.Now()
	hours := attendance.HoursBetween(*existing.ClockIn, now)

	existing.ClockOut = &now
	existing.TotalHours = &hours

	if err := a.attendanceRepo.Update(ctx, *existing); err != nil {
		return nil, err
	}

	resp := toResponse(*existing)
	return &resp, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (*attendance.AttendanceResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, today())
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	resp := toResponse(*existing)
	return &resp, nil
}

// GetWeeklyHours implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetWeeklyHours(ctx context.Context) (attendance.WeeklyHoursResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return attendance.WeeklyHoursResponse{}, err
	}

	day := today()
	weekStart := startOfWeek(day)

	records, err := a.attendanceRepo.ListByUserAndDateRange(ctx, userID, weekStart, day)
	if err != nil {
		return attendance.WeeklyHoursResponse{}, err
	}

	var total float64
	for _, record := range records {
		if record.TotalHours != nil {
			total += *record.TotalHours
		}
	}

	return attendance.WeeklyHoursResponse{
		WeekStart:  weekStart.Format("2006-01-02"),
		WeekEnd:    day.Format("2006-01-02"),
		TotalHours: total,
	}, nil
}

// GetMonthly implements attendance.AttendanceService. Non-admin
// callers only ever see their own records regardless of the requested
// user filter.
func (a *AttendanceServiceImpl) GetMonthly(ctx context.Context, req attendance.MonthlyAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	scope := req.UserID
	if role != user.RoleAdmin {
		scope = &userID
	}

	records, err := a.attendanceRepo.ListByMonth(ctx, req.Month, scope)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}

	return responses, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, totalCount, err := a.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}

	totalPages := int((totalCount + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount:  totalCount,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}
