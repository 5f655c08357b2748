package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/service"
	"github.com/EgehanKilicarslan/notekeeper/internal/flash"
	"github.com/EgehanKilicarslan/notekeeper/internal/identity"
)

// LoginPath is where unauthenticated visitors of protected pages are sent
const LoginPath = "/login"

// AuthMiddleware resolves the session cookie into a request identity
type AuthMiddleware struct {
	sessions     service.SessionService
	flashes      *flash.Store
	cookieSecure bool
	logger       *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(sessions service.SessionService, flashes *flash.Store, cookieSecure bool, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:     sessions,
		flashes:      flashes,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// LoadSession attaches the authenticated user, if any, to the request
// context. It never rejects a request.
func (m *AuthMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(SessionCookieName)
		if err != nil || value == "" {
			c.Next()
			return
		}

		session, err := m.sessions.Resolve(c.Request.Context(), value)
		if err != nil {
			if errors.Is(err, service.ErrInvalidSession) {
				m.logger.Debug("⚠️ [Middleware] Discarding invalid session cookie")
				ClearSessionCookie(c, m.cookieSecure)
			} else {
				m.logger.Error("❌ [Middleware] Session lookup failed", "error", err)
			}
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(identity.WithUser(c.Request.Context(), session.UserID, value))
		c.Set("userID", session.UserID)
		m.logger.Debug("✅ [Middleware] Session resolved", "user_id", session.UserID)

		c.Next()
	}
}

// RequireAuth redirects anonymous visitors to the login page
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := identity.RequireAuthenticated(c.Request.Context()); err != nil {
			m.logger.Warn("⚠️ [Middleware] Unauthenticated access", "path", c.Request.URL.Path)
			m.flashes.Add(c, flash.CategoryError, "Please log in to access this page.")
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Next()
	}
}
