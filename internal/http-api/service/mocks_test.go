package service

import (
	"context"
	"time"

	"bookhive/internal/http-api/models"

	"github.com/stretchr/testify/mock"
)

// Shared repository mocks for the service tests.

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, id int64, b *models.Book) error {
	args := m.Called(ctx, id, b)
	return args.Error(0)
}

func (m *MockBookRepository) UpdateInventory(ctx context.Context, id int64, newCount int) error {
	args := m.Called(ctx, id, newCount)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) Search(ctx context.Context, query string) ([]models.Book, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockBorrowRepository struct {
	mock.Mock
}

func (m *MockBorrowRepository) GetActive(ctx context.Context, bookID int64, userID string) (*models.BorrowRecord, error) {
	args := m.Called(ctx, bookID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BorrowRecord), args.Error(1)
}

func (m *MockBorrowRepository) CreateRequest(ctx context.Context, rec *models.BorrowRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockBorrowRepository) DeletePending(ctx context.Context, bookID int64, userID string) (int64, error) {
	args := m.Called(ctx, bookID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBorrowRepository) Issue(ctx context.Context, bookID int64, userID string, physical bool, borrowedAt, dueDate time.Time) error {
	args := m.Called(ctx, bookID, userID, physical, borrowedAt, dueDate)
	return args.Error(0)
}

func (m *MockBorrowRepository) Archive(ctx context.Context, rec *models.BorrowRecord, returnedAt time.Time, lateFine int64, physical bool) error {
	args := m.Called(ctx, rec, returnedAt, lateFine, physical)
	return args.Error(0)
}

func (m *MockBorrowRepository) ListActiveByBook(ctx context.Context, bookID int64) ([]models.BorrowRecord, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BorrowRecord), args.Error(1)
}

func (m *MockBorrowRepository) ListActiveByUser(ctx context.Context, userID string) ([]models.BorrowRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BorrowRecord), args.Error(1)
}

func (m *MockBorrowRepository) CountActiveByBook(ctx context.Context, bookID int64) (int64, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBorrowRepository) HistoryByUser(ctx context.Context, userID string) ([]models.BorrowHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BorrowHistory), args.Error(1)
}

func (m *MockBorrowRepository) HistoryByBook(ctx context.Context, bookID int64) ([]models.BorrowHistory, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BorrowHistory), args.Error(1)
}

type MockSavedRepository struct {
	mock.Mock
}

func (m *MockSavedRepository) Add(ctx context.Context, userID string, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockSavedRepository) Remove(ctx context.Context, userID string, bookID int64) (int64, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSavedRepository) RemoveAllForBook(ctx context.Context, bookID int64) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockSavedRepository) ListByUser(ctx context.Context, userID string) ([]models.SavedBook, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedBook), args.Error(1)
}

func (m *MockSavedRepository) ListByBook(ctx context.Context, bookID int64) ([]models.SavedBook, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedBook), args.Error(1)
}

func (m *MockSavedRepository) Exists(ctx context.Context, userID string, bookID int64) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}
