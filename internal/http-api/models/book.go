package models

import "time"

// BookType says which formats a book is offered in.
const (
	BookTypePhysical = "physical"
	BookTypeEbook    = "ebook"
	BookTypeBoth     = "both"
)

type Book struct {
	ID       int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Title    string  `json:"title" gorm:"not null;uniqueIndex:idx_books_title_author"`
	Author   string  `json:"author" gorm:"not null;uniqueIndex:idx_books_title_author"`
	Genre    *string `json:"genre,omitempty"`
	Summary  string  `json:"summary"`
	BookType string  `json:"book_type" gorm:"not null;default:'physical'"`

	// Physical inventory. Both are zero for pure ebooks.
	Count     int `json:"count" gorm:"not null;default:0"`
	Available int `json:"available" gorm:"not null;default:0"`

	// Media references, resolved elsewhere; only URLs are stored.
	ThumbnailURL string  `json:"thumbnail_url" gorm:"not null"`
	PDFURL       *string `json:"pdf_url,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime"`
}

func (Book) TableName() string {
	return "books"
}

// HasPhysical reports whether the book carries physical inventory.
func (b *Book) HasPhysical() bool {
	return b.BookType == BookTypePhysical || b.BookType == BookTypeBoth
}

// IsEbook reports whether the book is readable as an ebook.
func (b *Book) IsEbook() bool {
	return b.BookType == BookTypeEbook || b.BookType == BookTypeBoth
}
