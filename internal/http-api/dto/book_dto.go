package dto

import (
	"time"

	"bookhive/internal/http-api/models"
)

// CreateBookDTO used for POST /api/v1/books
type CreateBookDTO struct {
	Title        string  `json:"title" binding:"required"`
	Author       string  `json:"author" binding:"required"`
	Genre        *string `json:"genre,omitempty"`
	Summary      string  `json:"summary"`
	BookType     string  `json:"book_type" binding:"required,oneof=physical ebook both"`
	Count        int     `json:"count" binding:"gte=0"`
	ThumbnailURL string  `json:"thumbnail_url" binding:"required"`
	PDFURL       *string `json:"pdf_url,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`
}

// UpdateBookDTO used for PUT /api/v1/books/:book_id (metadata only,
// inventory has its own endpoint)
type UpdateBookDTO struct {
	Title        *string `json:"title,omitempty"`
	Author       *string `json:"author,omitempty"`
	Genre        *string `json:"genre,omitempty"`
	Summary      *string `json:"summary,omitempty"`
	BookType     *string `json:"book_type,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	PDFURL       *string `json:"pdf_url,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`
}

// UpdateInventoryDTO used for PUT /api/v1/books/:book_id/inventory
type UpdateInventoryDTO struct {
	Count *int `json:"count" binding:"required,gte=0"`
}

// BookResponse DTO for responses
type BookResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Author       string     `json:"author"`
	Genre        *string    `json:"genre,omitempty"`
	Summary      string     `json:"summary"`
	BookType     string     `json:"book_type"`
	Count        int        `json:"count"`
	Available    int        `json:"available"`
	ThumbnailURL string     `json:"thumbnail_url"`
	PDFURL       *string    `json:"pdf_url,omitempty"`
	VideoURL     *string    `json:"video_url,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// BookListResponse: paginated list of books
type BookListResponse struct {
	Items    []BookResponse `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Converters
func (d CreateBookDTO) ToModel() models.Book {
	return models.Book{
		Title:        d.Title,
		Author:       d.Author,
		Genre:        d.Genre,
		Summary:      d.Summary,
		BookType:     d.BookType,
		Count:        d.Count,
		ThumbnailURL: d.ThumbnailURL,
		PDFURL:       d.PDFURL,
		VideoURL:     d.VideoURL,
	}
}

func (d UpdateBookDTO) ApplyTo(b *models.Book) {
	if d.Title != nil {
		b.Title = *d.Title
	}
	if d.Author != nil {
		b.Author = *d.Author
	}
	if d.Genre != nil {
		b.Genre = d.Genre
	}
	if d.Summary != nil {
		b.Summary = *d.Summary
	}
	if d.BookType != nil {
		b.BookType = *d.BookType
	}
	if d.ThumbnailURL != nil {
		b.ThumbnailURL = *d.ThumbnailURL
	}
	if d.PDFURL != nil {
		b.PDFURL = d.PDFURL
	}
	if d.VideoURL != nil {
		b.VideoURL = d.VideoURL
	}
}

func FromBookToResponse(b models.Book) BookResponse {
	return BookResponse{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		Genre:        b.Genre,
		Summary:      b.Summary,
		BookType:     b.BookType,
		Count:        b.Count,
		Available:    b.Available,
		ThumbnailURL: b.ThumbnailURL,
		PDFURL:       b.PDFURL,
		VideoURL:     b.VideoURL,
		CreatedAt:    b.CreatedAt,
	}
}
