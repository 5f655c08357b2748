package models

import "time"

// MaxNoteContentLength is the widest note the note table accepts, in characters
const MaxNoteContentLength = 1000

// Note is a short text owned by exactly one user
type Note struct {
	ID      uint      `gorm:"primarykey" json:"id"`
	Content string    `gorm:"size:1000;not null" json:"content"`
	Date    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"date"`
	UserID  uint      `gorm:"not null;index" json:"user_id"`
}

// TableName overrides the table name
func (Note) TableName() string {
	return "note"
}

// OwnedBy reports whether the note belongs to userID
func (n *Note) OwnedBy(userID uint) bool {
	return n.UserID == userID
}
