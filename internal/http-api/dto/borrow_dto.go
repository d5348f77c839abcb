package dto

import (
	"time"

	"bookhive/internal/http-api/models"
)

// BorrowActionRequest: payload for request/issue/return, all keyed by book.
// The acting user comes from the auth context except for the admin-driven
// issue/return, which name the borrower explicitly.
type BorrowActionRequest struct {
	BookID int64 `json:"book_id" binding:"required"`
}

// IssueRequest: admin payload to hand a copy to a user
type IssueRequest struct {
	BookID int64  `json:"book_id" binding:"required"`
	UserID string `json:"user_id" binding:"required,uuid"`
}

// ReturnRequest: admin payload to take a copy back
type ReturnRequest struct {
	BookID int64  `json:"book_id" binding:"required"`
	UserID string `json:"user_id" binding:"required,uuid"`
}

// BorrowerInfo: user display fields enriched onto borrower listings
type BorrowerInfo struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// BorrowRecordResponse: one active request or loan
type BorrowRecordResponse struct {
	ID          int64         `json:"id"`
	BookID      int64         `json:"book_id"`
	UserID      string        `json:"user_id"`
	Status      string        `json:"status"`
	RequestedAt time.Time     `json:"requested_at"`
	BorrowedAt  *time.Time    `json:"borrowed_at,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Book        *BookResponse `json:"book,omitempty"`
	Borrower    *BorrowerInfo `json:"borrower,omitempty"`
}

// BorrowHistoryResponse: one archived loan
type BorrowHistoryResponse struct {
	ID          int64         `json:"id"`
	BookID      int64         `json:"book_id"`
	UserID      string        `json:"user_id"`
	RequestedAt time.Time     `json:"requested_at"`
	BorrowedAt  time.Time     `json:"borrowed_at"`
	DueDate     time.Time     `json:"due_date"`
	ReturnedAt  time.Time     `json:"returned_at"`
	LateFine    int64         `json:"late_fine"`
	Book        *BookResponse `json:"book,omitempty"`
	Borrower    *BorrowerInfo `json:"borrower,omitempty"`
}

// BorrowListResponse: list of active records
type BorrowListResponse struct {
	Items []BorrowRecordResponse `json:"items"`
	Total int                    `json:"total"`
}

// BorrowHistoryListResponse: list of archived loans
type BorrowHistoryListResponse struct {
	Items []BorrowHistoryResponse `json:"items"`
	Total int                     `json:"total"`
}

// Converters
func FromBorrowRecordToResponse(rec models.BorrowRecord) BorrowRecordResponse {
	resp := BorrowRecordResponse{
		ID:          rec.ID,
		BookID:      rec.BookID,
		UserID:      rec.UserID,
		Status:      string(rec.Status),
		RequestedAt: rec.RequestedAt,
		BorrowedAt:  rec.BorrowedAt,
		DueDate:     rec.DueDate,
	}
	if rec.Book != nil {
		b := FromBookToResponse(*rec.Book)
		resp.Book = &b
	}
	if rec.User != nil {
		resp.Borrower = &BorrowerInfo{
			ID:        rec.User.ID,
			Name:      rec.User.Name,
			Email:     rec.User.Email,
			AvatarURL: rec.User.AvatarURL,
		}
	}
	return resp
}

func FromBorrowHistoryToResponse(h models.BorrowHistory) BorrowHistoryResponse {
	resp := BorrowHistoryResponse{
		ID:          h.ID,
		BookID:      h.BookID,
		UserID:      h.UserID,
		RequestedAt: h.RequestedAt,
		BorrowedAt:  h.BorrowedAt,
		DueDate:     h.DueDate,
		ReturnedAt:  h.ReturnedAt,
		LateFine:    h.LateFine,
	}
	if h.Book != nil {
		b := FromBookToResponse(*h.Book)
		resp.Book = &b
	}
	if h.User != nil {
		resp.Borrower = &BorrowerInfo{
			ID:        h.User.ID,
			Name:      h.User.Name,
			Email:     h.User.Email,
			AvatarURL: h.User.AvatarURL,
		}
	}
	return resp
}
