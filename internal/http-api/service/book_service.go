package service

import (
	"context"
	"errors"

	"bookhive/internal/cache"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrInvalidBookType  = errors.New("book type must be physical, ebook or both")
	ErrMissingThumbnail = errors.New("thumbnail is required")
	ErrMissingPDF       = errors.New("ebooks require a pdf reference")
	ErrNegativeCount    = errors.New("copy count cannot be negative")
	ErrBookHasLoans     = errors.New("book still has active borrow records")
)

type BookService interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, id int64, b *models.Book) error
	UpdateInventory(ctx context.Context, id int64, newCount int) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Book, error)
}

type bookService struct {
	repo       repository.BookRepository
	borrowRepo repository.BorrowRepository
	savedRepo  repository.SavedRepository
	cache      *cache.BookCache
}

func NewBookService(
	repo repository.BookRepository,
	borrowRepo repository.BorrowRepository,
	savedRepo repository.SavedRepository,
	bookCache *cache.BookCache,
) BookService {
	return &bookService{
		repo:       repo,
		borrowRepo: borrowRepo,
		savedRepo:  savedRepo,
		cache:      bookCache,
	}
}

func (s *bookService) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.GetAll(ctx, page, pageSize)
}

// GetByID serves book details read-through from the cache.
func (s *bookService) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	_ = s.cache.Set(ctx, book)
	return book, nil
}

func (s *bookService) Create(ctx context.Context, b *models.Book) error {
	if err := validateBook(b); err != nil {
		return err
	}
	if b.BookType == models.BookTypeEbook {
		// no physical accounting for pure ebooks
		b.Count = 0
		b.Available = 0
	} else {
		// fresh copies are all loanable
		b.Available = b.Count
	}
	return s.repo.Create(ctx, b)
}

// Update edits catalog metadata. Inventory counters are deliberately left
// alone here; UpdateInventory owns them.
func (s *bookService) Update(ctx context.Context, id int64, b *models.Book) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	if err := validateBook(b); err != nil {
		return err
	}

	b.Count = current.Count
	b.Available = current.Available
	if b.BookType == models.BookTypeEbook {
		b.Count = 0
		b.Available = 0
	}
	b.CreatedAt = current.CreatedAt

	if err := s.repo.Update(ctx, id, b); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

// UpdateInventory changes the total number of physical copies. Shrinking the
// total clamps available down with it; growing it makes the new copies
// loanable.
func (s *bookService) UpdateInventory(ctx context.Context, id int64, newCount int) (*models.Book, error) {
	if newCount < 0 {
		return nil, ErrNegativeCount
	}
	if err := s.repo.UpdateInventory(ctx, id, newCount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	s.cache.Invalidate(ctx, id)

	return s.repo.GetByID(ctx, id)
}

// Delete refuses while any borrow record is active, then cascades the saved
// entries before removing the book itself.
func (s *bookService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	active, err := s.borrowRepo.CountActiveByBook(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrBookHasLoans
	}

	if err := s.savedRepo.RemoveAllForBook(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

func (s *bookService) Search(ctx context.Context, query string) ([]models.Book, error) {
	return s.repo.Search(ctx, query)
}

func validateBook(b *models.Book) error {
	switch b.BookType {
	case models.BookTypePhysical, models.BookTypeEbook, models.BookTypeBoth:
	default:
		return ErrInvalidBookType
	}
	if b.ThumbnailURL == "" {
		return ErrMissingThumbnail
	}
	if b.IsEbook() && (b.PDFURL == nil || *b.PDFURL == "") {
		return ErrMissingPDF
	}
	if b.Count < 0 {
		return ErrNegativeCount
	}
	return nil
}
