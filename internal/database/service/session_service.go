package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/EgehanKilicarslan/notekeeper/internal/config"
	"github.com/EgehanKilicarslan/notekeeper/internal/database"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
)

// SessionService issues, resolves and revokes session cookies
type SessionService interface {
	Establish(ctx context.Context, userID uint, remember bool) (*SessionToken, error)
	Resolve(ctx context.Context, value string) (*models.Session, error)
	Invalidate(ctx context.Context, value string) error
}

// SessionToken is the signed cookie value handed to the client
type SessionToken struct {
	Value     string
	ExpiresAt time.Time
	Remember  bool
}

type sessionClaims struct {
	UserID   uint `json:"user_id"`
	Remember bool `json:"remember"`
	jwt.RegisteredClaims
}

type sessionService struct {
	store       database.SessionStore
	secret      []byte
	sessionTTL  time.Duration
	rememberTTL time.Duration
	logger      *slog.Logger
}

// NewSessionService creates a session service backed by store
func NewSessionService(store database.SessionStore, cfg *config.Config, logger *slog.Logger) SessionService {
	return &sessionService{
		store:       store,
		secret:      []byte(cfg.SessionSecret),
		sessionTTL:  cfg.SessionTTL,
		rememberTTL: cfg.RememberTTL,
		logger:      logger,
	}
}

// Establish stores a new session for userID and signs its cookie value.
// Remembered sessions outlive the browser session.
func (s *sessionService) Establish(ctx context.Context, userID uint, remember bool) (*SessionToken, error) {
	ctx, span := tracer.Start(ctx, "SessionService.Establish")
	defer span.End()

	token, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	session := &models.Session{
		Token:     token,
		UserID:    userID,
		Remember:  remember,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Error("❌ [SessionService] Failed to store session", "user_id", userID, "error", err)
		return nil, err
	}

	claims := sessionClaims{
		UserID:   userID,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        token,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("✅ [SessionService] Session established", "user_id", userID, "remember", remember)
	return &SessionToken{Value: value, ExpiresAt: expiresAt, Remember: remember}, nil
}

// Resolve returns the live session behind a cookie value. Every failure is
// reported as ErrInvalidSession except store outages.
func (s *sessionService) Resolve(ctx context.Context, value string) (*models.Session, error) {
	ctx, span := tracer.Start(ctx, "SessionService.Resolve")
	defer span.End()

	claims, err := s.parse(value)
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.store.Find(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		s.logger.Error("❌ [SessionService] Failed to load session", "error", err)
		return nil, err
	}

	if session.UserID != claims.UserID {
		s.logger.Warn("⚠️ [SessionService] Session owner mismatch", "claimed_user_id", claims.UserID)
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Invalidate revokes the session behind a cookie value. Unknown, expired and
// malformed values are a no-op.
func (s *sessionService) Invalidate(ctx context.Context, value string) error {
	ctx, span := tracer.Start(ctx, "SessionService.Invalidate")
	defer span.End()

	claims, err := s.parse(value, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}

	if err := s.store.Delete(ctx, claims.ID); err != nil {
		s.logger.Error("❌ [SessionService] Failed to delete session", "user_id", claims.UserID, "error", err)
		return err
	}

	return nil
}

func (s *sessionService) parse(value string, opts ...jwt.ParserOption) (*sessionClaims, error) {
	if value == "" {
		return nil, ErrInvalidSession
	}

	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// generateSessionID creates a cryptographically secure random session id
func generateSessionID() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(tokenBytes), nil
}
