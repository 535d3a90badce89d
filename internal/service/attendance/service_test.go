package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/attendance-backend-go/internal/domain/attendance"
)

const testSecret = "test-secret-key-for-jwt"

var uniqueViolation = pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}

// fakeAttendanceRepo is an in-memory attendance.AttendanceRepository.
type fakeAttendanceRepo struct {
	records   map[string]attendance.Attendance // keyed by user_id|date
	createErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func recordKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return attendance.Attendance{}, err
	}
	key := recordKey(att.UserID, att.Date)
	att.CreatedAt = time.Now()
	att.UpdatedAt = att.CreatedAt
	f.records[key] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := f.records[recordKey(userID, date)]
	if !ok {
		return nil, nil
	}
	return &att, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	key := recordKey(att.UserID, att.Date)
	if _, ok := f.records[key]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	att.UpdatedAt = time.Now()
	f.records[key] = att
	return nil
}

func (f *fakeAttendanceRepo) ListByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.UserID != userID {
			continue
		}
		if att.Date.Before(start) || att.Date.After(end) {
			continue
		}
		out = append(out, att)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByMonth(ctx context.Context, month string, userID *string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.Date.Format("2006-01") != month {
			continue
		}
		if userID != nil && att.UserID != *userID {
			continue
		}
		out = append(out, att)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if filter.UserID != nil && att.UserID != *filter.UserID {
			continue
		}
		out = append(out, att)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	for _, att := range f.records {
		if att.Date.Equal(date) {
			count++
		}
	}
	return count, nil
}

// authedContext builds a context carrying verified JWT claims.
func authedContext(t *testing.T, userID string, role string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte(testSecret), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   userID + "@example.com",
		"role":    role,
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestHoursBetween(t *testing.T) {
	clockIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	clockOut := time.Date(2024, 3, 4, 17, 30, 0, 0, time.UTC)

	assert.Equal(t, 8.5, attendance.HoursBetween(clockIn, clockOut))
}

func TestHoursBetween_Rounding(t *testing.T) {
	clockIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(7*time.Hour + 47*time.Minute)

	assert.Equal(t, 7.78, attendance.HoursBetween(clockIn, clockOut))
}

func TestAttendanceService_ClockIn_CreatesRecord(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "user-1", "employee")

	resp, err := svc.ClockIn(ctx)

	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.UserID)
	assert.NotNil(t, resp.ClockIn)
	assert.Nil(t, resp.ClockOut)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, time.Now().Format("2006-01-02"), resp.Date)
}

func TestAttendanceService_ClockIn_Idempotent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "user-1", "employee")

	first, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	second, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ClockIn, second.ClockIn)
	assert.Len(t, repo.records, 1)
}

func TestAttendanceService_ClockIn_RaceLoserGetsCommittedRecord(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "user-1", "employee")

	// The competing writer commits between our existence check and
	// insert, so the insert fails on the unique index.
	now := time.Now()
	winner := attendance.Attendance{
		ID:      "winner-id",
		UserID:  "user-1",
		Date:    today(),
		ClockIn: &now,
		Status:  attendance.StatusPresent,
	}
	repo.createErr = &uniqueViolation
	repo.records[recordKey(winner.UserID, winner.Date)] = winner

	resp, err := svc.ClockIn(ctx)

	require.NoError(t, err)
	assert.Equal(t, "winner-id", resp.ID)
	assert.Len(t, repo.records, 1)
}

func TestAttendanceService_ClockOut_NoRecordIsNoOp(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "user-1", "employee")

	resp, err := svc.ClockOut(ctx)

	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestAttendanceService_ClockOut_DerivesTotalHours(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "user-1", "employee")

	clockIn := time.Now().Add(-8*time.Hour - 30*time.Minute)
	repo.records[recordKey("user-1", today())] = attendance.Attendance{
		ID:      "att-1",
		UserID:  "user-1",
		Date:    today(),
		ClockIn: &clockIn,
		Status:  attendance.StatusPresent,
	}

	resp, err := svc.ClockOut(ctx)

	require.NoError(t, err)
	require.NotNil(t, resp)
	require.NotNil(t, resp.TotalHours)
	assert.InDelta(t, 8.5, *resp.TotalHours, 0.01)
	assert.NotNil(t, resp.ClockOut)
}

func TestAttendanceService_ClockOut_SecondCallReturnsUnchanged(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "user-1", "employee")

	clockIn := time.Now().Add(-4 * time.Hour)
	clockOut := time.Now().Add(-1 * time.Hour)
	hours := attendance.HoursBetween(clockIn, clockOut)
	repo.records[recordKey("user-1", today())] = attendance.Attendance{
		ID:         "att-1",
		UserID:     "user-1",
		Date:       today(),
		ClockIn:    &clockIn,
		ClockOut:   &clockOut,
		TotalHours: &hours,
		Status:     attendance.StatusPresent,
	}

	resp, err := svc.ClockOut(ctx)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, hours, *resp.TotalHours)
	assert.Equal(t, clockOut.Format("2006-01-02 15:04:05"), *resp.ClockOut)
}

func TestAttendanceService_GetToday_NilWhenAbsent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "user-1", "employee")

	resp, err := svc.GetToday(ctx)

	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestAttendanceService_GetWeeklyHours_SumsFromSunday(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "user-1", "employee")

	weekStart := startOfWeek(today())
	seedDay := func(day time.Time, hours float64) {
		h := hours
		repo.records[recordKey("user-1", day)] = attendance.Attendance{
			ID:         "att-" + day.Format("2006-01-02"),
			UserID:     "user-1",
			Date:       day,
			TotalHours: &h,
			Status:     attendance.StatusPresent,
		}
	}
	seedDay(weekStart, 8)
	seedDay(today(), 4.5)
	// Before the current week, must not be counted.
	seedDay(weekStart.AddDate(0, 0, -1), 100)

	expected := 12.5
	if weekStart.Equal(today()) {
		// On Sundays both seeds land on the same day.
		expected = 4.5
	}

	resp, err := svc.GetWeeklyHours(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, resp.TotalHours)
	assert.Equal(t, weekStart.Format("2006-01-02"), resp.WeekStart)
}

func TestAttendanceService_GetMonthly_EmployeeScopedToSelf(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)

	month := today().Format("2006-01")
	repo.records[recordKey("user-1", today())] = attendance.Attendance{
		ID: "mine", UserID: "user-1", Date: today(), Status: attendance.StatusPresent,
	}
	repo.records[recordKey("user-2", today())] = attendance.Attendance{
		ID: "theirs", UserID: "user-2", Date: today(), Status: attendance.StatusPresent,
	}

	otherID := "user-2"
	ctx := authedContext(t, "user-1", "employee")
	resp, err := svc.GetMonthly(ctx, attendance.MonthlyAttendanceRequest{Month: month, UserID: &otherID})

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "mine", resp[0].ID)
}

func TestAttendanceService_GetMonthly_AdminSeesAll(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)

	month := today().Format("2006-01")
	repo.records[recordKey("user-1", today())] = attendance.Attendance{
		ID: "a", UserID: "user-1", Date: today(), Status: attendance.StatusPresent,
	}
	repo.records[recordKey("user-2", today())] = attendance.Attendance{
		ID: "b", UserID: "user-2", Date: today(), Status: attendance.StatusPresent,
	}

	ctx := authedContext(t, "admin-1", "admin")
	resp, err := svc.GetMonthly(ctx, attendance.MonthlyAttendanceRequest{Month: month})

	require.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestAttendanceService_GetMonthly_InvalidMonth(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "user-1", "employee")

	_, err := svc.GetMonthly(ctx, attendance.MonthlyAttendanceRequest{Month: "03-2024"})

	assert.Error(t, err)
}
