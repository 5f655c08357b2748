package models

import (
	"time"
)

// Session binds an opaque token to an authenticated user
type Session struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Remember  bool      `gorm:"not null;default:false" json:"remember"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Session) TableName() string {
	return "session"
}

// Expired reports whether the session is past its expiry at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
