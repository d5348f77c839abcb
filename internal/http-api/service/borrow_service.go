package service

import (
	"context"
	"errors"
	"time"

	"bookhive/internal/cache"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

// LoanPeriod is how long a copy may be kept once issued.
const LoanPeriod = 14 * 24 * time.Hour

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyRequested  = errors.New("book already requested by this user")
	ErrAlreadyBorrowed   = errors.New("book already borrowed by this user")
	ErrNoCopiesAvailable = errors.New("no copies available to borrow right now")
	ErrNotBorrowable     = errors.New("ebooks have no physical copies to borrow")
	ErrNoActiveLoan      = errors.New("no active loan for this user and book")
)

// BorrowService is the lending lifecycle engine: it owns every transition of
// a borrow record (requested -> borrowed -> archived) and the availability
// bookkeeping that goes with it.
type BorrowService interface {
	Request(ctx context.Context, userID string, bookID int64) (*models.BorrowRecord, error)
	Withdraw(ctx context.Context, userID string, bookID int64) error
	Issue(ctx context.Context, userID string, bookID int64) (*models.BorrowRecord, error)
	Return(ctx context.Context, userID string, bookID int64) (*models.BorrowHistory, error)
	ListActiveBorrowers(ctx context.Context, bookID int64) ([]models.BorrowRecord, error)
	ListUserLoans(ctx context.Context, userID string) ([]models.BorrowRecord, error)
	ListUserHistory(ctx context.Context, userID string) ([]models.BorrowHistory, error)
	ListBookHistory(ctx context.Context, bookID int64) ([]models.BorrowHistory, error)
}

type borrowService struct {
	repo          repository.BorrowRepository
	bookRepo      repository.BookRepository
	userRepo      repository.UserRepository
	cache         *cache.BookCache
	dailyFineRate int64
}

func NewBorrowService(
	repo repository.BorrowRepository,
	bookRepo repository.BookRepository,
	userRepo repository.UserRepository,
	bookCache *cache.BookCache,
	dailyFineRate int64,
) BorrowService {
	if dailyFineRate <= 0 {
		dailyFineRate = DefaultDailyFineRate
	}
	return &borrowService{
		repo:          repo,
		bookRepo:      bookRepo,
		userRepo:      userRepo,
		cache:         bookCache,
		dailyFineRate: dailyFineRate,
	}
}

// Request places a soft hold: a pending record with no copy allocated.
// Availability is only checked, never decremented, until issue time.
func (s *borrowService) Request(ctx context.Context, userID string, bookID int64) (*models.BorrowRecord, error) {
	book, err := s.loadBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}
	if !book.HasPhysical() {
		return nil, ErrNotBorrowable
	}

	if existing, err := s.repo.GetActive(ctx, bookID, userID); err == nil {
		if existing.Status == models.BorrowActive {
			return nil, ErrAlreadyBorrowed
		}
		return nil, ErrAlreadyRequested
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if book.Available <= 0 {
		return nil, ErrNoCopiesAvailable
	}

	rec := &models.BorrowRecord{
		BookID:      bookID,
		UserID:      userID,
		Status:      models.BorrowRequested,
		RequestedAt: time.Now(),
	}
	if err := s.repo.CreateRequest(ctx, rec); err != nil {
		// Unique (book,user) index caught a concurrent duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRequested
		}
		return nil, err
	}
	return rec, nil
}

// Withdraw removes a pending request. A withdrawn request leaves no trace,
// and withdrawing when nothing is pending is a deliberate no-op.
func (s *borrowService) Withdraw(ctx context.Context, userID string, bookID int64) error {
	_, err := s.repo.DeletePending(ctx, bookID, userID)
	return err
}

// Issue is the hand-off step: it promotes a pending request in place, or
// creates the record directly when a librarian issues without one. The copy
// is allocated here, atomically with the record write.
func (s *borrowService) Issue(ctx context.Context, userID string, bookID int64) (*models.BorrowRecord, error) {
	book, err := s.loadBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}
	if !book.HasPhysical() {
		return nil, ErrNotBorrowable
	}

	if existing, err := s.repo.GetActive(ctx, bookID, userID); err == nil {
		if existing.Status == models.BorrowActive {
			return nil, ErrAlreadyBorrowed
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	due := now.Add(LoanPeriod)
	if err := s.repo.Issue(ctx, bookID, userID, true, now, due); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoCopies):
			return nil, ErrNoCopiesAvailable
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrAlreadyBorrowed
		}
		return nil, err
	}
	s.cache.Invalidate(ctx, bookID)

	return s.repo.GetActive(ctx, bookID, userID)
}

// Return archives the loan: fine computed, history row written, active
// record removed and the copy freed, in one transaction.
func (s *borrowService) Return(ctx context.Context, userID string, bookID int64) (*models.BorrowHistory, error) {
	rec, err := s.repo.GetActive(ctx, bookID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveLoan
		}
		return nil, err
	}
	if rec.Status != models.BorrowActive {
		return nil, ErrNoActiveLoan
	}

	book, err := s.loadBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	fine := LateFine(*rec.DueDate, now, s.dailyFineRate)
	if err := s.repo.Archive(ctx, rec, now, fine, book.HasPhysical()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// lost a race with another return of the same loan
			return nil, ErrNoActiveLoan
		}
		return nil, err
	}
	s.cache.Invalidate(ctx, bookID)

	return &models.BorrowHistory{
		BookID:      rec.BookID,
		UserID:      rec.UserID,
		RequestedAt: rec.RequestedAt,
		BorrowedAt:  *rec.BorrowedAt,
		DueDate:     *rec.DueDate,
		ReturnedAt:  now,
		LateFine:    fine,
	}, nil
}

func (s *borrowService) ListActiveBorrowers(ctx context.Context, bookID int64) ([]models.BorrowRecord, error) {
	if _, err := s.loadBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repo.ListActiveByBook(ctx, bookID)
}

func (s *borrowService) ListUserLoans(ctx context.Context, userID string) ([]models.BorrowRecord, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListActiveByUser(ctx, userID)
}

func (s *borrowService) ListUserHistory(ctx context.Context, userID string) ([]models.BorrowHistory, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.HistoryByUser(ctx, userID)
}

func (s *borrowService) ListBookHistory(ctx context.Context, bookID int64) ([]models.BorrowHistory, error) {
	if _, err := s.loadBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repo.HistoryByBook(ctx, bookID)
}

func (s *borrowService) loadBook(ctx context.Context, bookID int64) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *borrowService) loadUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
