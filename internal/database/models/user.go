package models

// User represents an account that owns notes.
// Notes are not embedded; they are listed through NoteRepository.ListByUser.
type User struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Email     string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"`
	FirstName string `gorm:"column:first_name;size:150;not null" json:"first_name"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "user"
}
