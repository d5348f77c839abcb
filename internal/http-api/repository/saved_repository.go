package repository

import (
	"context"
	"fmt"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type SavedRepository interface {
	Add(ctx context.Context, userID string, bookID int64) error
	// Remove reports rows affected so unsave can be an idempotent no-op.
	Remove(ctx context.Context, userID string, bookID int64) (int64, error)
	// RemoveAllForBook clears every user's bookmark of a book; used by the
	// book deletion cascade.
	RemoveAllForBook(ctx context.Context, bookID int64) error
	ListByUser(ctx context.Context, userID string) ([]models.SavedBook, error)
	ListByBook(ctx context.Context, bookID int64) ([]models.SavedBook, error)
	Exists(ctx context.Context, userID string, bookID int64) (bool, error)
}

type savedRepository struct {
	db *gorm.DB
}

func NewSavedRepository(db *gorm.DB) SavedRepository {
	return &savedRepository{db: db}
}

func (r *savedRepository) Add(ctx context.Context, userID string, bookID int64) error {
	saved := &models.SavedBook{
		UserID: userID,
		BookID: bookID,
	}

	if err := r.db.WithContext(ctx).Create(saved).Error; err != nil {
		return fmt.Errorf("save book: %w", err)
	}
	return nil
}

func (r *savedRepository) Remove(ctx context.Context, userID string, bookID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.SavedBook{})
	if result.Error != nil {
		return 0, fmt.Errorf("unsave book: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *savedRepository) RemoveAllForBook(ctx context.Context, bookID int64) error {
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Delete(&models.SavedBook{}).Error; err != nil {
		return fmt.Errorf("clear saved entries: %w", err)
	}
	return nil
}

func (r *savedRepository) ListByUser(ctx context.Context, userID string) ([]models.SavedBook, error) {
	var list []models.SavedBook
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list saved books: %w", err)
	}
	return list, nil
}

func (r *savedRepository) ListByBook(ctx context.Context, bookID int64) ([]models.SavedBook, error) {
	var list []models.SavedBook
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("saved_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list savers: %w", err)
	}
	return list, nil
}

func (r *savedRepository) Exists(ctx context.Context, userID string, bookID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SavedBook{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
