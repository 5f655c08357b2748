package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/notekeeper/internal/config"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
)

const (
	minEmailLength    = 4
	maxEmailLength    = 150
	minNameLength     = 2
	maxNameLength     = 150
	minPasswordLength = 8
)

// AuthService defines the interface for credential business logic
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*models.User, *SessionToken, error)
	CreateAccount(ctx context.Context, input SignUpInput) (*models.User, error)
	LogIn(ctx context.Context, email, password string, remember bool) (*models.User, *SessionToken, error)
	LogOut(ctx context.Context, sessionValue string) error
	GetUser(ctx context.Context, userID uint) (*models.User, error)
}

// SignUpInput holds the signup form fields
type SignUpInput struct {
	Email     string
	FirstName string
	Password1 string
	Password2 string
}

type authService struct {
	userRepo   repository.UserRepository
	sessions   SessionService
	bcryptCost int
	logger     *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	sessions SessionService,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		sessions:   sessions,
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// SignUp creates the account and logs the new user in with a remembered session
func (s *authService) SignUp(ctx context.Context, input SignUpInput) (*models.User, *SessionToken, error) {
	ctx, span := tracer.Start(ctx, "AuthService.SignUp")
	defer span.End()

	user, err := s.CreateAccount(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.Establish(ctx, user.ID, true)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to establish session", "user_id", user.ID, "error", err)
		return nil, nil, err
	}

	return user, session, nil
}

// CreateAccount validates input in order, stopping at the first failure, and
// persists the user with a hashed password.
func (s *authService) CreateAccount(ctx context.Context, input SignUpInput) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "AuthService.CreateAccount")
	defer span.End()

	s.logger.Info("📝 [AuthService] Registration attempt", "email", input.Email)

	if err := s.validateSignUp(ctx, input); err != nil {
		return nil, err
	}

	hashedPassword, err := HashPassword(input.Password1, s.bcryptCost)
	if err != nil {
		if !errors.Is(err, ErrPasswordTooLong) {
			s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		}
		return nil, err
	}

	user := &models.User{
		Email:     input.Email,
		FirstName: input.FirstName,
		Password:  hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("⚠️ [AuthService] Email already registered", "email", input.Email)
			return nil, ErrAccountExists
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user, nil
}

func (s *authService) validateSignUp(ctx context.Context, input SignUpInput) error {
	existingUser, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return err
	}
	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", input.Email)
		return ErrAccountExists
	}

	emailLength := utf8.RuneCountInString(input.Email)
	nameLength := utf8.RuneCountInString(input.FirstName)

	switch {
	case emailLength < minEmailLength:
		return ErrEmailTooShort
	case nameLength < minNameLength:
		return ErrNameTooShort
	case input.Password1 != input.Password2:
		return ErrPasswordMismatch
	case utf8.RuneCountInString(input.Password1) < minPasswordLength:
		return ErrPasswordTooShort
	case emailLength > maxEmailLength:
		return ErrEmailTooLong
	case nameLength > maxNameLength:
		return ErrNameTooLong
	}

	return nil
}

func (s *authService) LogIn(ctx context.Context, email, password string, remember bool) (*models.User, *SessionToken, error) {
	ctx, span := tracer.Start(ctx, "AuthService.LogIn")
	defer span.End()

	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, nil, ErrNoSuchUser
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	if !CheckPassword(user.Password, password) {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, nil, ErrIncorrectPassword
	}

	if IsLegacyHash(user.Password) {
		s.upgradeHash(ctx, user, password)
	}

	session, err := s.sessions.Establish(ctx, user.ID, remember)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to establish session", "user_id", user.ID, "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return user, session, nil
}

// upgradeHash replaces an imported Werkzeug hash with bcrypt. Failures keep
// the old hash, which still verifies.
func (s *authService) upgradeHash(ctx context.Context, user *models.User, password string) {
	hashedPassword, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Could not rehash legacy password", "user_id", user.ID, "error", err)
		return
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		s.logger.Warn("⚠️ [AuthService] Could not store upgraded password hash", "user_id", user.ID, "error", err)
		return
	}
	user.Password = hashedPassword
	s.logger.Info("🔁 [AuthService] Upgraded legacy password hash", "user_id", user.ID)
}

// LogOut revokes the session behind sessionValue. It is idempotent.
func (s *authService) LogOut(ctx context.Context, sessionValue string) error {
	ctx, span := tracer.Start(ctx, "AuthService.LogOut")
	defer span.End()

	s.logger.Info("👋 [AuthService] Logout attempt")

	if err := s.sessions.Invalidate(ctx, sessionValue); err != nil {
		return err
	}

	s.logger.Info("✅ [AuthService] User logged out successfully")
	return nil
}

func (s *authService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
