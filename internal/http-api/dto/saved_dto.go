package dto

import (
	"time"

	"bookhive/internal/http-api/models"
)

// SaveBookRequest: payload to bookmark an ebook
type SaveBookRequest struct {
	BookID int64 `json:"book_id" binding:"required"`
}

// SavedBookResponse: one bookmark
type SavedBookResponse struct {
	ID      int64         `json:"id"`
	BookID  int64         `json:"book_id"`
	SavedAt time.Time     `json:"saved_at"`
	Book    *BookResponse `json:"book,omitempty"`
}

// SavedListResponse: list of bookmarks
type SavedListResponse struct {
	Items []SavedBookResponse `json:"items"`
	Total int                 `json:"total"`
}

// SaverResponse: one user who bookmarked a book
type SaverResponse struct {
	ID      int64         `json:"id"`
	UserID  string        `json:"user_id"`
	SavedAt time.Time     `json:"saved_at"`
	User    *BorrowerInfo `json:"user,omitempty"`
}

func FromSavedToResponse(s models.SavedBook) SavedBookResponse {
	resp := SavedBookResponse{
		ID:      s.ID,
		BookID:  s.BookID,
		SavedAt: s.SavedAt,
	}
	if s.Book != nil {
		b := FromBookToResponse(*s.Book)
		resp.Book = &b
	}
	return resp
}

func FromSavedToSaverResponse(s models.SavedBook) SaverResponse {
	resp := SaverResponse{
		ID:      s.ID,
		UserID:  s.UserID,
		SavedAt: s.SavedAt,
	}
	if s.User != nil {
		resp.User = &BorrowerInfo{
			ID:        s.User.ID,
			Name:      s.User.Name,
			Email:     s.User.Email,
			AvatarURL: s.User.AvatarURL,
		}
	}
	return resp
}
