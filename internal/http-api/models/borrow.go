package models

import "time"

type BorrowStatus string

const (
	// BorrowRequested: pending request, no copy allocated yet.
	BorrowRequested BorrowStatus = "requested"
	// BorrowActive: copy handed over, due date running.
	BorrowActive BorrowStatus = "borrowed"
)

// BorrowRecord is the single source of truth for active loans and pending
// requests. A book's borrower list and a user's loan list are both queries
// over this table, so the two sides can never disagree.
type BorrowRecord struct {
	ID     int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID int64        `gorm:"not null;index;uniqueIndex:idx_borrow_book_user" json:"book_id"`
	UserID string       `gorm:"type:uuid;not null;index;uniqueIndex:idx_borrow_book_user" json:"user_id"`
	Status BorrowStatus `gorm:"size:20;not null;default:'requested'" json:"status"`

	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	BorrowedAt  *time.Time `json:"borrowed_at,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`

	// Associations
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (BorrowRecord) TableName() string {
	return "borrow_records"
}

// BorrowHistory is the append-only archive of completed loans. Rows are
// written once at return time and never updated.
type BorrowHistory struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID int64  `gorm:"not null;index" json:"book_id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	RequestedAt time.Time `gorm:"not null" json:"requested_at"`
	BorrowedAt  time.Time `gorm:"not null" json:"borrowed_at"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	ReturnedAt  time.Time `gorm:"not null;index" json:"returned_at"`
	LateFine    int64     `gorm:"not null;default:0" json:"late_fine"`

	// Associations
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (BorrowHistory) TableName() string {
	return "borrow_history"
}
