package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/service"
	"github.com/EgehanKilicarslan/notekeeper/internal/testutil"
)

const sampleSeed = `
users:
  - email: jo@example.com
    first_name: Jo
    password: password123
    notes:
      - buy milk
      - call mum
  - email: sam@example.com
    first_name: Sam
    password: password456
`

func TestParseSeed(t *testing.T) {
	seed, err := parseSeed(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	require.Len(t, seed.Users, 2)
	assert.Equal(t, "jo@example.com", seed.Users[0].Email)
	assert.Equal(t, "Jo", seed.Users[0].FirstName)
	assert.Equal(t, []string{"buy milk", "call mum"}, seed.Users[0].Notes)
	assert.Empty(t, seed.Users[1].Notes)
}

func TestParseSeed_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown field", "users:\n  - email: a@b.io\n    nickname: x\n"},
		{"wrong shape", "users: yes\n"},
		{"malformed yaml", "users: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSeed(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseSeed_Empty(t *testing.T) {
	seed, err := parseSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, seed.Users)
}

func newSeedServices(t *testing.T) (service.AuthService, service.NoteService, repository.NoteRepository) {
	db := testutil.NewTestDB(t)
	cfg := testutil.NewTestConfig()
	logger := testutil.NewTestLogger()

	sessions := service.NewSessionService(repository.NewSessionRepository(db), cfg, logger)
	noteRepo := repository.NewNoteRepository(db)

	return service.NewAuthService(repository.NewUserRepository(db), sessions, cfg, logger),
		service.NewNoteService(noteRepo, logger),
		noteRepo
}

func TestApplySeed(t *testing.T) {
	auth, notes, noteRepo := newSeedServices(t)
	ctx := context.Background()

	seed, err := parseSeed(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	result, err := applySeed(ctx, auth, notes, seed)
	require.NoError(t, err)
	assert.Equal(t, seedResult{Users: 2, Notes: 2}, result)

	user, _, err := auth.LogIn(ctx, "jo@example.com", "password123", false)
	require.NoError(t, err)

	stored, err := noteRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "buy milk", stored[0].Content)

	// A second run skips the existing accounts
	result, err = applySeed(ctx, auth, notes, seed)
	require.NoError(t, err)
	assert.Equal(t, seedResult{Skipped: 2}, result)
}

func TestApplySeed_ValidationFailure(t *testing.T) {
	auth, notes, _ := newSeedServices(t)

	seed := &SeedFile{Users: []SeedUser{
		{Email: "ok@example.com", FirstName: "Ok", Password: "password123"},
		{Email: "bad@example.com", FirstName: "Bad", Password: "short"},
	}}

	result, err := applySeed(context.Background(), auth, notes, seed)

	assert.ErrorIs(t, err, service.ErrPasswordTooShort)
	assert.Contains(t, err.Error(), "bad@example.com")
	assert.Equal(t, 1, result.Users)
}

func TestApplySeed_EmptyNote(t *testing.T) {
	auth, notes, _ := newSeedServices(t)

	seed := &SeedFile{Users: []SeedUser{
		{Email: "jo@example.com", FirstName: "Jo", Password: "password123", Notes: []string{""}},
	}}

	_, err := applySeed(context.Background(), auth, notes, seed)
	assert.ErrorIs(t, err, service.ErrEmptyContent)
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(sampleSeed), 0o600))

	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "notes.db"))
	t.Setenv("DATABASE_MAX_RETRIES", "1")
	t.Setenv("SESSION_STORE", "database")
	t.Setenv("BCRYPT_COST", "4")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"seed", "--file", seedPath})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Seeded 2 users (0 skipped) and 2 notes")
}
