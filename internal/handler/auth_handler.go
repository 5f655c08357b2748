package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/service"
	"github.com/EgehanKilicarslan/notekeeper/internal/flash"
	"github.com/EgehanKilicarslan/notekeeper/internal/identity"
	"github.com/EgehanKilicarslan/notekeeper/internal/middleware"
)

// AuthHandler handles the login, signup and logout pages
type AuthHandler struct {
	service      service.AuthService
	flashes      *flash.Store
	cookieSecure bool
	logger       *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service service.AuthService, flashes *flash.Store, cookieSecure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		flashes:      flashes,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// Form DTOs
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Remember bool   `form:"remember"`
}

type SignUpForm struct {
	Email     string `form:"email"`
	FirstName string `form:"firstName"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"email": ""})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid login form", "error", err)
	}

	_, session, err := h.service.LogIn(c.Request.Context(), form.Email, form.Password, form.Remember)
	if err != nil {
		status := h.handleServiceError(c, err)
		h.render(c, status, "login.html", gin.H{"email": form.Email})
		return
	}

	middleware.SetSessionCookie(c, session, h.cookieSecure)
	h.flashes.Add(c, flash.CategorySuccess, "Logged In successfully. Welcome Back!")
	c.Redirect(http.StatusFound, "/")
}

// SignUpPage handles GET /signup
func (h *AuthHandler) SignUpPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", gin.H{"email": "", "firstName": ""})
}

// SignUp handles POST /signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var form SignUpForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid signup form", "error", err)
	}

	_, session, err := h.service.SignUp(c.Request.Context(), service.SignUpInput{
		Email:     form.Email,
		FirstName: form.FirstName,
		Password1: form.Password1,
		Password2: form.Password2,
	})
	if err != nil {
		status := h.handleServiceError(c, err)
		h.render(c, status, "signup.html", gin.H{"email": form.Email, "firstName": form.FirstName})
		return
	}

	middleware.SetSessionCookie(c, session, h.cookieSecure)
	h.flashes.Add(c, flash.CategorySuccess, "Successfully Signed up. Welcome!")
	c.Redirect(http.StatusFound, "/")
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, ok := identity.FromContext(c.Request.Context()); ok {
		if err := h.service.LogOut(c.Request.Context(), id.SessionToken); err != nil {
			h.logger.Error("❌ [Handler] Failed to revoke session", "user_id", id.UserID, "error", err)
		}
	}

	middleware.ClearSessionCookie(c, h.cookieSecure)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// render draws page with the current user and pending flashes
func (h *AuthHandler) render(c *gin.Context, status int, page string, data gin.H) {
	data["user"] = currentUser(c, h.service, h.logger)
	data["flashes"] = h.flashes.Consume(c)
	c.HTML(status, page, data)
}

// handleServiceError flashes the message for err and returns the status the
// page should be rendered with
func (h *AuthHandler) handleServiceError(c *gin.Context, err error) int {
	return flashServiceError(c, h.flashes, h.logger, err)
}

// flashServiceError maps service errors to flash messages. Validation and
// credential failures re-render with 200 like any form page.
func flashServiceError(c *gin.Context, flashes *flash.Store, logger *slog.Logger, err error) int {
	if message, ok := service.UserMessage(err); ok {
		flashes.Add(c, flash.CategoryError, message)
		return http.StatusOK
	}

	logger.Error("❌ [Handler] Internal server error", "error", err)
	flashes.Add(c, flash.CategoryError, "Something went wrong. Please try again.")
	return http.StatusInternalServerError
}

// currentUser loads the signed-in user for templates, or nil
func currentUser(c *gin.Context, auth service.AuthService, logger *slog.Logger) *models.User {
	userID, ok := identity.CurrentUser(c.Request.Context())
	if !ok {
		return nil
	}

	user, err := auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			logger.Warn("⚠️ [Handler] Could not load current user", "user_id", userID, "error", err)
		}
		return nil
	}
	return user
}
