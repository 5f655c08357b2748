package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/service"
)

// SessionCookieName names the cookie carrying the signed session token
const SessionCookieName = "session"

// SetSessionCookie hands the session to the client. Remembered sessions get a
// persistent cookie, others end with the browser session.
func SetSessionCookie(c *gin.Context, token *service.SessionToken, secure bool) {
	maxAge := 0
	if token.Remember {
		maxAge = int(time.Until(token.ExpiresAt).Seconds())
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token.Value, maxAge, "/", "", secure, true)
}

// ClearSessionCookie tells the client to drop its session cookie
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
