package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
	"github.com/EgehanKilicarslan/notekeeper/internal/testutil"
)

func TestSessionRepository_SaveAndFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSessionRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "session@example.com")

	session := &models.Session{
		Token:     "token-1",
		UserID:    user.ID,
		Remember:  true,
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, repo.Save(ctx, session))

	found, err := repo.Find(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
	assert.True(t, found.Remember)
}

func TestSessionRepository_Save_Expired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSessionRepository(db)
	user := createUser(t, db, "late@example.com")

	err := repo.Save(context.Background(), &models.Session{
		Token:     "late",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour).UTC(),
	})
	assert.ErrorIs(t, err, repository.ErrSessionExpired)
}

func TestSessionRepository_Find_Missing(t *testing.T) {
	repo := repository.NewSessionRepository(testutil.NewTestDB(t))

	_, err := repo.Find(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_Find_Expired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSessionRepository(db)
	user := createUser(t, db, "expired@example.com")

	// Bypass Save, which refuses expired sessions
	require.NoError(t, db.Create(&models.Session{
		Token:     "expired",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour).UTC(),
	}).Error)

	_, err := repo.Find(context.Background(), "expired")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSessionRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "bye@example.com")

	require.NoError(t, repo.Save(ctx, &models.Session{
		Token:     "bye",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}))

	require.NoError(t, repo.Delete(ctx, "bye"))

	_, err := repo.Find(ctx, "bye")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	assert.NoError(t, repo.Delete(ctx, "bye"))
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSessionRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "sweep@example.com")

	now := time.Now().UTC()
	sessions := []*models.Session{
		{Token: "old-1", UserID: user.ID, ExpiresAt: now.Add(-2 * time.Hour)},
		{Token: "old-2", UserID: user.ID, ExpiresAt: now.Add(-time.Hour)},
		{Token: "live", UserID: user.ID, ExpiresAt: now.Add(time.Hour)},
	}
	for _, s := range sessions {
		require.NoError(t, db.Create(s).Error)
	}

	removed, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = repo.Find(ctx, "live")
	assert.NoError(t, err)
}
