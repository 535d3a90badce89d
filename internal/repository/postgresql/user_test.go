package postgresql_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/attendance-backend-go/internal/domain/user"
	"github.com/staffdeck/attendance-backend-go/internal/repository/postgresql"
)

func TestUserRepository_CreateAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	created := createTestUser(ctx, t, setup, "user@example.com", user.RoleEmployee)
	repo := postgresql.NewUserRepository(setup.DB)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)
	assert.Equal(t, user.RoleEmployee, byID.Role)
	assert.Equal(t, "2024-01-15", byID.JoinDate.Format("2006-01-02"))

	byEmail, err := repo.GetByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	repo := postgresql.NewUserRepository(setup.DB)

	id, err := uuid.NewV7()
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, id.String())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	createTestUser(ctx, t, setup, "exists@example.com", user.RoleEmployee)
	repo := postgresql.NewUserRepository(setup.DB)

	exists, err := repo.ExistsByEmail(ctx, "exists@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdateProfile_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	created := createTestUser(ctx, t, setup, "profile@example.com", user.RoleEmployee)
	repo := postgresql.NewUserRepository(setup.DB)

	newName := "Renamed User"
	updated, err := repo.UpdateProfile(ctx, created.ID, &newName, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", updated.Name)
	assert.Equal(t, created.Email, updated.Email)
}

func TestUserRepository_Count(t *testing.T) {
	ctx := context.Background()
	setup := NewTestDatabase(t)
	defer setup.Close()
	setup.TruncateAllTables(ctx, t)

	createTestUser(ctx, t, setup, "one@example.com", user.RoleEmployee)
	createTestUser(ctx, t, setup, "two@example.com", user.RoleAdmin)
	repo := postgresql.NewUserRepository(setup.DB)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
