package service

import (
	"context"
	"errors"

	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrAlreadySaved = errors.New("book already saved by this user")
	ErrNotSavable   = errors.New("only ebooks can be saved")
)

// SavedService toggles bookmark membership. One row per (user, book) pair is
// the whole state; both sides of the relationship read from it.
type SavedService interface {
	Save(ctx context.Context, userID string, bookID int64) error
	Unsave(ctx context.Context, userID string, bookID int64) error
	ListSaved(ctx context.Context, userID string) ([]models.SavedBook, error)
	ListSavers(ctx context.Context, bookID int64) ([]models.SavedBook, error)
}

type savedService struct {
	repo     repository.SavedRepository
	bookRepo repository.BookRepository
	userRepo repository.UserRepository
}

func NewSavedService(
	repo repository.SavedRepository,
	bookRepo repository.BookRepository,
	userRepo repository.UserRepository,
) SavedService {
	return &savedService{
		repo:     repo,
		bookRepo: bookRepo,
		userRepo: userRepo,
	}
}

func (s *savedService) Save(ctx context.Context, userID string, bookID int64) error {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !book.IsEbook() {
		return ErrNotSavable
	}

	exists, err := s.repo.Exists(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadySaved
	}

	if err := s.repo.Add(ctx, userID, bookID); err != nil {
		// concurrent save of the same pair hit the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadySaved
		}
		return err
	}
	return nil
}

// Unsave removes the bookmark on both sides; removing an absent bookmark is
// a no-op.
func (s *savedService) Unsave(ctx context.Context, userID string, bookID int64) error {
	_, err := s.repo.Remove(ctx, userID, bookID)
	return err
}

func (s *savedService) ListSaved(ctx context.Context, userID string) ([]models.SavedBook, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *savedService) ListSavers(ctx context.Context, bookID int64) ([]models.SavedBook, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return s.repo.ListByBook(ctx, bookID)
}
