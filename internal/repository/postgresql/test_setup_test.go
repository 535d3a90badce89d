package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/attendance-backend-go/internal/domain/user"
	"github.com/staffdeck/attendance-backend-go/internal/pkg/database"
	"github.com/staffdeck/attendance-backend-go/internal/repository/postgresql"
)

// TestDatabaseSetup wires a live test database. Tests are skipped when
// TEST_DATABASE_URL is unset.
type TestDatabaseSetup struct {
	DB *database.DB
}

func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")

	return &TestDatabaseSetup{DB: db}
}

func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context, t *testing.T) {
	t.Helper()

	tables := []string{
		"refresh_tokens",
		"leave_requests",
		"attendance_records",
		"users",
	}

	for _, table := range tables {
		_, err := s.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

// createTestUser inserts a user row and returns it.
func createTestUser(ctx context.Context, t *testing.T, s *TestDatabaseSetup, email string, role user.Role) user.User {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err)

	repo := postgresql.NewUserRepository(s.DB)
	created, err := repo.Create(ctx, user.User{
		ID:         id.String(),
		Name:       "Test User",
		Email:      email,
		Role:       role,
		Department: "Engineering",
		JoinDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return created
}
