package repository

import (
	"context"
	"testing"

	"github.com/benx421/bankcards/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	database := setupTestDB(t)
	repo := NewUserRepository(database)
	ctx := context.Background()

	user := createTestUser(t, database)

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, found.Username)
	assert.Equal(t, models.RoleUser, found.Role)
	assert.False(t, found.Banned)

	byName, err := repo.FindByUsername(ctx, user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	database := setupTestDB(t)
	repo := NewUserRepository(database)
	ctx := context.Background()

	user := createTestUser(t, database)

	_, err := repo.Create(ctx, &models.User{
		Username:     user.Username,
		Email:        "other_" + user.Email,
		PasswordHash: "x",
		Role:         models.RoleUser,
	})
	assert.ErrorIs(t, err, models.ErrDuplicateUser)
}

func TestUserRepository_Exists(t *testing.T) {
	database := setupTestDB(t)
	repo := NewUserRepository(database)
	ctx := context.Background()

	user := createTestUser(t, database)

	taken, err := repo.ExistsByUsername(ctx, user.Username)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByUsername(ctx, "no_such_user_anywhere")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.ExistsByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserRepository_SetBanned(t *testing.T) {
	database := setupTestDB(t)
	repo := NewUserRepository(database)
	ctx := context.Background()

	user := createTestUser(t, database)

	require.NoError(t, repo.SetBanned(ctx, user.ID, true))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.Banned)

	assert.ErrorIs(t, repo.SetBanned(ctx, -1, true), models.ErrNotFound)
}
