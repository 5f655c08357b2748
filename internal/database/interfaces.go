package database

import (
	"context"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
)

// SessionStore persists authenticated sessions keyed by their opaque token.
// Find returns repository.ErrSessionNotFound for unknown or expired tokens and
// Delete is a no-op for unknown tokens.
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}
