package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
)

// NoteRepository defines the interface for note data operations
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, id uint) (*models.Note, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Note, error)
	DeleteOwned(ctx context.Context, id, userID uint) (bool, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository instance
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// Create inserts note. When Date is left zero the store's current time is
// used and read back into note.
func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(note).Error; err != nil {
		return err
	}

	// Dialects without RETURNING leave the column default unread.
	if note.Date.IsZero() {
		return db.Select("date").First(note, note.ID).Error
	}

	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).First(&note, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// ListByUser returns the user's notes in ascending id order
func (r *noteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Note, error) {
	var notes []models.Note
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// DeleteOwned deletes the note only if userID owns it, reporting whether a
// row was removed. The ownership check and the delete are one statement.
func (r *noteRepository) DeleteOwned(ctx context.Context, id, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Note{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Repository errors
var (
	ErrNoteNotFound = errors.New("note not found")
)
