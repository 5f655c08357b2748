// Package flash keeps one-time status messages across a redirect in a signed
// cookie.
package flash

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "flash"

	CategorySuccess = "success"
	CategoryError   = "error"

	pendingKey = "flash.pending"
	cookieTTL  = 5 * time.Minute
)

// Message is a single flash shown on the next rendered view
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type flashClaims struct {
	Messages []Message `json:"messages"`
	jwt.RegisteredClaims
}

// Store signs flash cookies so clients cannot forge messages
type Store struct {
	secret []byte
	secure bool
	method jwt.SigningMethod
	logger *slog.Logger
}

// NewStore creates a flash store signing with secret
func NewStore(secret string, secure bool, logger *slog.Logger) *Store {
	return &Store{
		secret: []byte(secret),
		secure: secure,
		method: jwt.SigningMethodHS256,
		logger: logger,
	}
}

// Add queues a message for the next view this client renders
func (s *Store) Add(c *gin.Context, category, text string) {
	pending := append(pendingMessages(c), Message{Category: category, Text: text})
	c.Set(pendingKey, pending)

	claims := flashClaims{
		Messages: pending,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cookieTTL)),
		},
	}
	value, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		// The message still reaches a view rendered in this request
		s.logger.Error("❌ [Flash] Failed to sign flash cookie", "category", category, "error", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, int(cookieTTL.Seconds()), "/", "", s.secure, true)
}

// Consume returns every message waiting for this client, oldest first, and
// forgets them.
func (s *Store) Consume(c *gin.Context) []Message {
	var messages []Message

	if value, err := c.Cookie(CookieName); err == nil && value != "" {
		claims := &flashClaims{}
		token, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err == nil && token.Valid {
			messages = append(messages, claims.Messages...)
		}
	}

	pending := pendingMessages(c)
	messages = append(messages, pending...)

	if len(pending) > 0 || hasCookie(c) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, "", -1, "/", "", s.secure, true)
	}
	c.Set(pendingKey, []Message(nil))

	return messages
}

func pendingMessages(c *gin.Context) []Message {
	if v, ok := c.Get(pendingKey); ok {
		if messages, ok := v.([]Message); ok {
			return messages
		}
	}
	return nil
}

func hasCookie(c *gin.Context) bool {
	_, err := c.Cookie(CookieName)
	return err == nil
}
