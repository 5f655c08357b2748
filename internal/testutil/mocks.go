package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/service"
)

// ==================== MOCK USER REPOSITORY ====================

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	args := m.Called(id, hashedPassword)
	return args.Error(0)
}

// ==================== MOCK NOTE REPOSITORY ====================

// MockNoteRepository implements repository.NoteRepository for testing
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *models.Note) error {
	args := m.Called(note)
	return args.Error(0)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uint) (*models.Note, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Note, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockNoteRepository) DeleteOwned(ctx context.Context, id, userID uint) (bool, error) {
	args := m.Called(id, userID)
	return args.Bool(0), args.Error(1)
}

// ==================== MOCK SESSION STORE ====================

// MockSessionStore implements database.SessionStore for testing
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, session *models.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionStore) Find(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	args := m.Called(token)
	return args.Error(0)
}

// ==================== MOCK SESSION SERVICE ====================

// MockSessionService implements service.SessionService for testing
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Establish(ctx context.Context, userID uint, remember bool) (*service.SessionToken, error) {
	args := m.Called(userID, remember)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionToken), args.Error(1)
}

func (m *MockSessionService) Resolve(ctx context.Context, value string) (*models.Session, error) {
	args := m.Called(value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) Invalidate(ctx context.Context, value string) error {
	args := m.Called(value)
	return args.Error(0)
}
