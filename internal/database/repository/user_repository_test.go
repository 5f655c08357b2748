package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
	"github.com/EgehanKilicarslan/notekeeper/internal/testutil"
)

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Password: "hash", FirstName: "Test"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))
	require.NotZero(t, user.ID)

	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "test@example.com")

	byEmail, err := repo.FindByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "Test", byEmail.FirstName)
	assert.Equal(t, "hash", byEmail.Password)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", byID.Email)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)

	createUser(t, db, "dup@example.com")

	err := repo.Create(context.Background(), &models.User{Email: "dup@example.com", Password: "hash", FirstName: "Other"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByID(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "pw@example.com")

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", reloaded.Password)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, 404, "x"), repository.ErrUserNotFound)
}
