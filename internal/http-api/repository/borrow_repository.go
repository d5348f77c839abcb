package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

// ErrNoCopies is returned by Issue when the conditional decrement of
// available finds no loanable copy. Callers map it to their own taxonomy.
var ErrNoCopies = errors.New("no available copies")

type BorrowRepository interface {
	GetActive(ctx context.Context, bookID int64, userID string) (*models.BorrowRecord, error)
	CreateRequest(ctx context.Context, rec *models.BorrowRecord) error
	// DeletePending removes a pending request and reports how many rows went
	// away, so withdraw can stay an idempotent no-op.
	DeletePending(ctx context.Context, bookID int64, userID string) (int64, error)
	Issue(ctx context.Context, bookID int64, userID string, physical bool, borrowedAt, dueDate time.Time) error
	Archive(ctx context.Context, rec *models.BorrowRecord, returnedAt time.Time, lateFine int64, physical bool) error
	ListActiveByBook(ctx context.Context, bookID int64) ([]models.BorrowRecord, error)
	ListActiveByUser(ctx context.Context, userID string) ([]models.BorrowRecord, error)
	CountActiveByBook(ctx context.Context, bookID int64) (int64, error)
	HistoryByUser(ctx context.Context, userID string) ([]models.BorrowHistory, error)
	HistoryByBook(ctx context.Context, bookID int64) ([]models.BorrowHistory, error)
}

type borrowRepository struct {
	db *gorm.DB
}

func NewBorrowRepository(db *gorm.DB) BorrowRepository {
	return &borrowRepository{db: db}
}

func (r *borrowRepository) GetActive(ctx context.Context, bookID int64, userID string) (*models.BorrowRecord, error) {
	var rec models.BorrowRecord
	if err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *borrowRepository) CreateRequest(ctx context.Context, rec *models.BorrowRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create borrow request: %w", err)
	}
	return nil
}

func (r *borrowRepository) DeletePending(ctx context.Context, bookID int64, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ? AND status = ?", bookID, userID, models.BorrowRequested).
		Delete(&models.BorrowRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("withdraw request: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Issue hands a copy over in one transaction: the conditional decrement of
// available and the record write commit together or not at all. The
// "available > 0" guard runs inside the UPDATE itself, so two issues racing
// for the last copy cannot both pass it.
func (r *borrowRepository) Issue(ctx context.Context, bookID int64, userID string, physical bool, borrowedAt, dueDate time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if physical {
			result := tx.Model(&models.Book{}).
				Where("id = ? AND available > 0", bookID).
				UpdateColumn("available", gorm.Expr("available - 1"))
			if result.Error != nil {
				return fmt.Errorf("decrement available: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrNoCopies
			}
		}

		// Promote a pending request in place if one exists.
		result := tx.Model(&models.BorrowRecord{}).
			Where("book_id = ? AND user_id = ? AND status = ?", bookID, userID, models.BorrowRequested).
			Updates(map[string]interface{}{
				"status":      models.BorrowActive,
				"borrowed_at": borrowedAt,
				"due_date":    dueDate,
			})
		if result.Error != nil {
			return fmt.Errorf("promote request: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			return nil
		}

		// Direct issue without a prior request. The unique (book,user) index
		// rejects a duplicate if a borrow slipped in concurrently.
		rec := &models.BorrowRecord{
			BookID:      bookID,
			UserID:      userID,
			Status:      models.BorrowActive,
			RequestedAt: borrowedAt,
			BorrowedAt:  &borrowedAt,
			DueDate:     &dueDate,
		}
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("direct issue: %w", err)
		}
		return nil
	})
}

// Archive completes a loan: writes the history row, removes the active
// record and frees the copy, all in one transaction. The delete is guarded
// on status so a concurrent double return rolls back instead of archiving
// twice.
func (r *borrowRepository) Archive(ctx context.Context, rec *models.BorrowRecord, returnedAt time.Time, lateFine int64, physical bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND status = ?", rec.ID, models.BorrowActive).
			Delete(&models.BorrowRecord{})
		if result.Error != nil {
			return fmt.Errorf("remove active record: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		hist := &models.BorrowHistory{
			BookID:      rec.BookID,
			UserID:      rec.UserID,
			RequestedAt: rec.RequestedAt,
			BorrowedAt:  *rec.BorrowedAt,
			DueDate:     *rec.DueDate,
			ReturnedAt:  returnedAt,
			LateFine:    lateFine,
		}
		if err := tx.Create(hist).Error; err != nil {
			return fmt.Errorf("archive loan: %w", err)
		}

		if physical {
			// LEAST keeps available within count even if the total was
			// shrunk administratively while this copy was out.
			if err := tx.Model(&models.Book{}).
				Where("id = ?", rec.BookID).
				UpdateColumn("available", gorm.Expr("LEAST(available + 1, count)")).Error; err != nil {
				return fmt.Errorf("increment available: %w", err)
			}
		}
		return nil
	})
}

func (r *borrowRepository) ListActiveByBook(ctx context.Context, bookID int64) ([]models.BorrowRecord, error) {
	var list []models.BorrowRecord
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("requested_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list borrowers: %w", err)
	}
	return list, nil
}

func (r *borrowRepository) ListActiveByUser(ctx context.Context, userID string) ([]models.BorrowRecord, error) {
	var list []models.BorrowRecord
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("requested_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return list, nil
}

func (r *borrowRepository) CountActiveByBook(ctx context.Context, bookID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BorrowRecord{}).
		Where("book_id = ?", bookID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *borrowRepository) HistoryByUser(ctx context.Context, userID string) ([]models.BorrowHistory, error) {
	var list []models.BorrowHistory
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("returned_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list user history: %w", err)
	}
	return list, nil
}

func (r *borrowRepository) HistoryByBook(ctx context.Context, bookID int64) ([]models.BorrowHistory, error) {
	var list []models.BorrowHistory
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("returned_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list book history: %w", err)
	}
	return list, nil
}
