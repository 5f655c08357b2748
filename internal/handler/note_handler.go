package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/service"
	"github.com/EgehanKilicarslan/notekeeper/internal/flash"
	"github.com/EgehanKilicarslan/notekeeper/internal/identity"
	"github.com/EgehanKilicarslan/notekeeper/internal/middleware"
)

// NoteHandler handles the home page and note deletion
type NoteHandler struct {
	notes   service.NoteService
	auth    service.AuthService
	flashes *flash.Store
	logger  *slog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(notes service.NoteService, auth service.AuthService, flashes *flash.Store, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		notes:   notes,
		auth:    auth,
		flashes: flashes,
		logger:  logger,
	}
}

type DeleteNoteRequest struct {
	NoteID *int64 `json:"noteId" binding:"required"`
}

// Home handles GET / - lists the current user's notes
func (h *NoteHandler) Home(c *gin.Context) {
	h.renderHome(c, http.StatusOK)
}

// CreateNote handles POST / - adds a note for the current user
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, err := identity.RequireAuthenticated(c.Request.Context())
	if err != nil {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	status := http.StatusOK
	if _, err := h.notes.CreateNote(c.Request.Context(), userID, c.PostForm("note")); err != nil {
		status = flashServiceError(c, h.flashes, h.logger, err)
	} else {
		h.flashes.Add(c, flash.CategorySuccess, "Noted!")
	}

	h.renderHome(c, status)
}

// DeleteNote handles POST /delete-note. The response is {} whether the note
// was deleted, missing, or owned by someone else.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	var req DeleteNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid delete-note request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. noteId required."})
		return
	}

	userID, ok := identity.CurrentUser(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	// No note has a non-positive id
	if *req.NoteID <= 0 {
		h.logger.Debug("🗑️ [Handler] Ignoring non-positive note id", "note_id", *req.NoteID, "user_id", userID)
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	h.logger.Debug("🗑️ [Handler] Deleting note", "note_id", *req.NoteID, "user_id", userID)
	if err := h.notes.DeleteNote(c.Request.Context(), userID, uint(*req.NoteID)); err != nil {
		h.logger.Error("❌ [Handler] Failed to delete note", "note_id", *req.NoteID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (h *NoteHandler) renderHome(c *gin.Context, status int) {
	user := currentUser(c, h.auth, h.logger)

	notes := []models.Note{}
	if user != nil {
		listed, err := h.notes.ListNotes(c.Request.Context(), user.ID)
		if err != nil {
			status = flashServiceError(c, h.flashes, h.logger, err)
		} else {
			notes = listed
		}
	}

	c.HTML(status, "home.html", gin.H{
		"user":    user,
		"notes":   notes,
		"flashes": h.flashes.Consume(c),
	})
}
