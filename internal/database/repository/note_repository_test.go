package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
	"github.com/EgehanKilicarslan/notekeeper/internal/testutil"
)

func TestNoteRepository_Create_FillsDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	user := createUser(t, db, "notes@example.com")

	note := &models.Note{Content: "Buy milk", UserID: user.ID}
	require.NoError(t, repo.Create(context.Background(), note))

	assert.NotZero(t, note.ID)
	assert.False(t, note.Date.IsZero())
	assert.WithinDuration(t, time.Now(), note.Date, time.Minute)
}

func TestNoteRepository_Create_UnknownUser(t *testing.T) {
	repo := repository.NewNoteRepository(testutil.NewTestDB(t))

	err := repo.Create(context.Background(), &models.Note{Content: "orphan", UserID: 999})
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}

func TestNoteRepository_ListByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &models.Note{Content: content, UserID: alice.ID}))
	}
	require.NoError(t, repo.Create(ctx, &models.Note{Content: "bob's", UserID: bob.ID}))

	notes, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "first", notes[0].Content)
	assert.Equal(t, "second", notes[1].Content)
	assert.Equal(t, "third", notes[2].Content)
	for _, note := range notes {
		assert.Equal(t, alice.ID, note.UserID)
	}

	empty, err := repo.ListByUser(ctx, 404)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNoteRepository_FindByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "find@example.com")

	note := &models.Note{Content: "findable", UserID: user.ID}
	require.NoError(t, repo.Create(ctx, note))

	found, err := repo.FindByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "findable", found.Content)
	assert.True(t, found.OwnedBy(user.ID))

	_, err = repo.FindByID(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func TestNoteRepository_DeleteOwned(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner@example.com")
	other := createUser(t, db, "other@example.com")

	note := &models.Note{Content: "mine", UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, note))

	tests := []struct {
		name        string
		noteID      uint
		userID      uint
		wantDeleted bool
	}{
		{"other user", note.ID, other.ID, false},
		{"unknown note", 404, owner.ID, false},
		{"owner", note.ID, owner.ID, true},
		{"already deleted", note.ID, owner.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted, err := repo.DeleteOwned(ctx, tt.noteID, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)
		})
	}

	_, err := repo.FindByID(ctx, note.ID)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}
