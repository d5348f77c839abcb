package service

import (
	"context"
	"testing"

	"bookhive/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newBookService(bookRepo *MockBookRepository, borrowRepo *MockBorrowRepository, savedRepo *MockSavedRepository) BookService {
	return NewBookService(bookRepo, borrowRepo, savedRepo, nil)
}

func TestCreateBook_PhysicalStartsFullyAvailable(t *testing.T) {
	bookRepo := new(MockBookRepository)
	svc := newBookService(bookRepo, new(MockBorrowRepository), new(MockSavedRepository))

	bookRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Book")).Return(nil)

	b := physicalBook(3, 0)
	err := svc.Create(context.Background(), b)

	assert.NoError(t, err)
	assert.Equal(t, 3, b.Available, "fresh copies are all loanable")
}

func TestCreateBook_EbookHasNoInventory(t *testing.T) {
	bookRepo := new(MockBookRepository)
	svc := newBookService(bookRepo, new(MockBorrowRepository), new(MockSavedRepository))

	bookRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Book")).Return(nil)

	b := ebook()
	b.Count = 5 // must be discarded for pure ebooks
	err := svc.Create(context.Background(), b)

	assert.NoError(t, err)
	assert.Equal(t, 0, b.Count)
	assert.Equal(t, 0, b.Available)
}

func TestCreateBook_Validation(t *testing.T) {
	bookRepo := new(MockBookRepository)
	svc := newBookService(bookRepo, new(MockBorrowRepository), new(MockSavedRepository))

	badType := physicalBook(1, 1)
	badType.BookType = "audiobook"
	assert.ErrorIs(t, svc.Create(context.Background(), badType), ErrInvalidBookType)

	noThumb := physicalBook(1, 1)
	noThumb.ThumbnailURL = ""
	assert.ErrorIs(t, svc.Create(context.Background(), noThumb), ErrMissingThumbnail)

	noPDF := ebook()
	noPDF.PDFURL = nil
	assert.ErrorIs(t, svc.Create(context.Background(), noPDF), ErrMissingPDF)

	bookRepo.AssertNotCalled(t, "Create")
}

func TestUpdateBook_PreservesInventory(t *testing.T) {
	bookRepo := new(MockBookRepository)
	svc := newBookService(bookRepo, new(MockBorrowRepository), new(MockSavedRepository))

	stored := physicalBook(4, 2)
	bookRepo.On("GetByID", mock.Anything, testBookID).Return(stored, nil)

	var saved *models.Book
	bookRepo.On("Update", mock.Anything, testBookID, mock.AnythingOfType("*models.Book")).
		Run(func(args mock.Arguments) { saved = args.Get(2).(*models.Book) }).Return(nil)

	edited := physicalBook(99, 99) // counters in the payload are ignored
	edited.Title = "New Title"
	err := svc.Update(context.Background(), testBookID, edited)

	assert.NoError(t, err)
	assert.Equal(t, 4, saved.Count)
	assert.Equal(t, 2, saved.Available)
	assert.Equal(t, "New Title", saved.Title)
}

func TestUpdateInventory_Negative(t *testing.T) {
	bookRepo := new(MockBookRepository)
	svc := newBookService(bookRepo, new(MockBorrowRepository), new(MockSavedRepository))

	_, err := svc.UpdateInventory(context.Background(), testBookID, -1)

	assert.ErrorIs(t, err, ErrNegativeCount)
	bookRepo.AssertNotCalled(t, "UpdateInventory")
}

func TestUpdateInventory_NotFound(t *testing.T) {
	bookRepo := new(MockBookRepository)
	svc := newBookService(bookRepo, new(MockBorrowRepository), new(MockSavedRepository))

	bookRepo.On("UpdateInventory", mock.Anything, testBookID, 2).Return(gorm.ErrRecordNotFound)

	_, err := svc.UpdateInventory(context.Background(), testBookID, 2)

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestDeleteBook_RefusedWhileBorrowed(t *testing.T) {
	bookRepo := new(MockBookRepository)
	borrowRepo := new(MockBorrowRepository)
	savedRepo := new(MockSavedRepository)
	svc := newBookService(bookRepo, borrowRepo, savedRepo)

	bookRepo.On("GetByID", mock.Anything, testBookID).Return(physicalBook(1, 0), nil)
	borrowRepo.On("CountActiveByBook", mock.Anything, testBookID).Return(int64(1), nil)

	err := svc.Delete(context.Background(), testBookID)

	assert.ErrorIs(t, err, ErrBookHasLoans)
	bookRepo.AssertNotCalled(t, "Delete")
	savedRepo.AssertNotCalled(t, "RemoveAllForBook")
}

func TestDeleteBook_CascadesSavedEntries(t *testing.T) {
	bookRepo := new(MockBookRepository)
	borrowRepo := new(MockBorrowRepository)
	savedRepo := new(MockSavedRepository)
	svc := newBookService(bookRepo, borrowRepo, savedRepo)

	bookRepo.On("GetByID", mock.Anything, testBookID).Return(physicalBook(1, 1), nil)
	borrowRepo.On("CountActiveByBook", mock.Anything, testBookID).Return(int64(0), nil)
	savedRepo.On("RemoveAllForBook", mock.Anything, testBookID).Return(nil)
	bookRepo.On("Delete", mock.Anything, testBookID).Return(nil)

	err := svc.Delete(context.Background(), testBookID)

	assert.NoError(t, err)
	savedRepo.AssertExpectations(t)
	bookRepo.AssertExpectations(t)
}
