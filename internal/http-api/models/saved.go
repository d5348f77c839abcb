package models

import "time"

// SavedBook records a user bookmarking an ebook. Membership is symmetric:
// the user's saved list and the book's saved-by list are both queries over
// this table.
type SavedBook struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_saved_user_book" json:"user_id"`
	BookID  int64     `gorm:"not null;index;uniqueIndex:idx_saved_user_book" json:"book_id"`
	SavedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"saved_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (SavedBook) TableName() string {
	return "saved_books"
}
