package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/staffdeck/attendance-backend-go/internal/domain/user"
	"github.com/staffdeck/attendance-backend-go/internal/repository/postgresql"
)

func newAttendanceID(t *testing.T) string {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func TestAttendanceRepository_CreateAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	owner := createTestUser(ctx, t, setup, "roundtrip@example.com", user.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(setup.DB)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, attendance.Attendance{
		ID:      newAttendanceID(t),
		UserID:  owner.ID,
		Date:    day,
		ClockIn: &clockIn,
		Status:  attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.GetByUserAndDate(ctx, owner.ID, day)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, day.Format("2006-01-02"), found.Date.Format("2006-01-02"))
	require.NotNil(t, found.ClockIn)
	assert.True(t, found.ClockIn.Equal(clockIn))
	assert.Nil(t, found.ClockOut)
	assert.Nil(t, found.TotalHours)
	require.NotNil(t, found.UserName)
	assert.Equal(t, owner.Name, *found.UserName)
}

func TestAttendanceRepository_GetByUserAndDate_NilWhenAbsent(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	owner := createTestUser(ctx, t, setup, "absent@example.com", user.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(setup.DB)

	found, err := repo.GetByUserAndDate(ctx, owner.ID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAttendanceRepository_DuplicateDayRejected(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	owner := createTestUser(ctx, t, setup, "duplicate@example.com", user.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(setup.DB)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	record := attendance.Attendance{
		ID:     newAttendanceID(t),
		UserID: owner.ID,
		Date:   day,
		Status: attendance.StatusPresent,
	}
	_, err := repo.Create(ctx, record)
	require.NoError(t, err)

	record.ID = newAttendanceID(t)
	_, err = repo.Create(ctx, record)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)
}

func TestAttendanceRepository_UpdatePersistsClockOut(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	owner := createTestUser(ctx, t, setup, "update@example.com", user.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(setup.DB)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clockOut := time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)
	hours := attendance.HoursBetween(clockIn, clockOut)

	created, err := repo.Create(ctx, attendance.Attendance{
		ID:      newAttendanceID(t),
		UserID:  owner.ID,
		Date:    day,
		ClockIn: &clockIn,
		Status:  attendance.StatusPresent,
	})
	require.NoError(t, err)

	created.ClockOut = &clockOut
	created.TotalHours = &hours
	require.NoError(t, repo.Update(ctx, created))

	found, err := repo.GetByUserAndDate(ctx, owner.ID, day)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.TotalHours)
	assert.Equal(t, 8.5, *found.TotalHours)
	require.NotNil(t, found.ClockOut)
	assert.True(t, found.ClockOut.Equal(clockOut))
}

func TestAttendanceRepository_ListByMonth(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	first := createTestUser(ctx, t, setup, "first@example.com", user.RoleEmployee)
	second := createTestUser(ctx, t, setup, "second@example.com", user.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(setup.DB)

	seed := func(userID string, day time.Time) {
		_, err := repo.Create(ctx, attendance.Attendance{
			ID:     newAttendanceID(t),
			UserID: userID,
			Date:   day,
			Status: attendance.StatusPresent,
		})
		require.NoError(t, err)
	}
	seed(first.ID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	seed(first.ID, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	seed(second.ID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	seed(first.ID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	all, err := repo.ListByMonth(ctx, "2026-03", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.ListByMonth(ctx, "2026-03", &first.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestAttendanceRepository_CountByDate(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	first := createTestUser(ctx, t, setup, "count1@example.com", user.RoleEmployee)
	second := createTestUser(ctx, t, setup, "count2@example.com", user.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(setup.DB)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{first.ID, second.ID} {
		_, err := repo.Create(ctx, attendance.Attendance{
			ID:     newAttendanceID(t),
			UserID: id,
			Date:   day,
			Status: attendance.StatusPresent,
		})
		require.NoError(t, err)
	}

	count, err := repo.CountByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
