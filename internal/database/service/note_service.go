package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
)

// NoteService defines the interface for note business logic. Every operation
// is scoped to the user passed in.
type NoteService interface {
	CreateNote(ctx context.Context, userID uint, content string) (*models.Note, error)
	ListNotes(ctx context.Context, userID uint) ([]models.Note, error)
	DeleteNote(ctx context.Context, requesterID, noteID uint) error
}

type noteService struct {
	noteRepo repository.NoteRepository
	logger   *slog.Logger
}

// NewNoteService creates a new note service instance
func NewNoteService(noteRepo repository.NoteRepository, logger *slog.Logger) NoteService {
	return &noteService{
		noteRepo: noteRepo,
		logger:   logger,
	}
}

func (s *noteService) CreateNote(ctx context.Context, userID uint, content string) (*models.Note, error) {
	ctx, span := tracer.Start(ctx, "NoteService.CreateNote")
	defer span.End()

	length := utf8.RuneCountInString(content)
	if length < 1 {
		return nil, ErrEmptyContent
	}
	if length > models.MaxNoteContentLength {
		return nil, ErrNoteTooLong
	}

	note := &models.Note{
		Content: content,
		UserID:  userID,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			s.logger.Error("❌ [NoteService] Note owner does not exist", "user_id", userID)
			return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
		}
		s.logger.Error("❌ [NoteService] Failed to create note", "user_id", userID, "error", err)
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.logger.Info("📝 [NoteService] Note created", "note_id", note.ID, "user_id", userID)
	return note, nil
}

func (s *noteService) ListNotes(ctx context.Context, userID uint) ([]models.Note, error) {
	ctx, span := tracer.Start(ctx, "NoteService.ListNotes")
	defer span.End()

	notes, err := s.noteRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("❌ [NoteService] Failed to list notes", "user_id", userID, "error", err)
		return nil, err
	}
	return notes, nil
}

// DeleteNote removes the note when requesterID owns it. Missing notes and
// notes owned by someone else are silent no-ops.
func (s *noteService) DeleteNote(ctx context.Context, requesterID, noteID uint) error {
	ctx, span := tracer.Start(ctx, "NoteService.DeleteNote")
	defer span.End()

	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			s.logger.Debug("🗑️ [NoteService] Note already gone", "note_id", noteID)
			return nil
		}
		s.logger.Error("❌ [NoteService] Failed to load note", "note_id", noteID, "error", err)
		return err
	}

	if !note.OwnedBy(requesterID) {
		s.logger.Warn("⚠️ [NoteService] Refused to delete note owned by another user",
			"note_id", noteID,
			"requester_id", requesterID,
		)
		return nil
	}

	deleted, err := s.noteRepo.DeleteOwned(ctx, noteID, requesterID)
	if err != nil {
		s.logger.Error("❌ [NoteService] Failed to delete note", "note_id", noteID, "error", err)
		return err
	}

	if deleted {
		s.logger.Info("🗑️ [NoteService] Note deleted", "note_id", noteID, "user_id", requesterID)
	}
	return nil
}
