package repository

import (
	"context"
	"fmt"
	"strings"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, id int64, b *models.Book) error
	// UpdateInventory changes the total copy count and moves available by the
	// same delta, clamped into [0, newCount], as one atomic statement.
	UpdateInventory(ctx context.Context, id int64, newCount int) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Book, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *bookRepository) Update(ctx context.Context, id int64, b *models.Book) error {
	// ensure ID set for Save
	b.ID = id
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

func (r *bookRepository) UpdateInventory(ctx context.Context, id int64, newCount int) error {
	// Single statement so the clamp reads the pre-update columns: shrinking
	// count shrinks available with it, growing count makes the new copies
	// loanable. Never lets available go negative or exceed the new count.
	result := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"count":     newCount,
			"available": gorm.Expr("GREATEST(0, LEAST(available + ? - count, ?))", newCount, newCount),
		})
	if result.Error != nil {
		return fmt.Errorf("update inventory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Book{}, id).Error; err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// Search performs case-insensitive partial match on title, author and genre.
// Splits query into tokens and requires each token to appear in at least one
// of the fields.
func (r *bookRepository) Search(ctx context.Context, query string) ([]models.Book, error) {
	var list []models.Book
	tokens := strings.Fields(query)
	db := r.db.WithContext(ctx)

	if len(tokens) == 0 {
		return list, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*3)
	for _, t := range tokens {
		p := "%" + t + "%"
		// COALESCE so a NULL genre does not break the ILIKE
		clauses = append(clauses, "(title ILIKE ? OR author ILIKE ? OR COALESCE(genre,'') ILIKE ?)")
		args = append(args, p, p, p)
	}

	where := strings.Join(clauses, " AND ")
	if err := db.Where(where, args...).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return list, nil
}
