package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
)

// SessionRepository stores sessions in the session table
type SessionRepository interface {
	Save(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository instance
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Save(ctx context.Context, session *models.Session) error {
	if session.Expired(time.Now()) {
		return ErrSessionExpired
	}
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// Check if expired
	if session.Expired(time.Now()) {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.Session{}).Error
}

// DeleteExpired purges every session past its expiry and returns how many went
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// Repository errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)
