package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookhive/internal/http-api/handler"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSavedService struct {
	mock.Mock
}

func (m *MockSavedService) Save(ctx context.Context, userID string, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockSavedService) Unsave(ctx context.Context, userID string, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockSavedService) ListSaved(ctx context.Context, userID string) ([]models.SavedBook, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedBook), args.Error(1)
}

func (m *MockSavedService) ListSavers(ctx context.Context, bookID int64) ([]models.SavedBook, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedBook), args.Error(1)
}

func setupSavedRouter(mockService *MockSavedService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewSavedHandler(mockService)

	rg := r.Group("/api/v1/saved", mockAuthMiddleware(testUserID, "user"))
	h.RegisterRoutes(rg)
	return r
}

func TestSaveEndpoint_Created(t *testing.T) {
	mockService := new(MockSavedService)
	r := setupSavedRouter(mockService)

	mockService.On("Save", mock.Anything, testUserID, testBookID).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/saved",
		jsonBody(t, gin.H{"book_id": testBookID}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSaveEndpoint_PhysicalBookRejected(t *testing.T) {
	mockService := new(MockSavedService)
	r := setupSavedRouter(mockService)

	mockService.On("Save", mock.Anything, testUserID, testBookID).
		Return(service.ErrNotSavable)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/saved",
		jsonBody(t, gin.H{"book_id": testBookID}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "only ebooks")
}

func TestSaveEndpoint_Duplicate(t *testing.T) {
	mockService := new(MockSavedService)
	r := setupSavedRouter(mockService)

	mockService.On("Save", mock.Anything, testUserID, testBookID).
		Return(service.ErrAlreadySaved)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/saved",
		jsonBody(t, gin.H{"book_id": testBookID}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUnsaveEndpoint_NoContentWhenAbsent(t *testing.T) {
	mockService := new(MockSavedService)
	r := setupSavedRouter(mockService)

	mockService.On("Unsave", mock.Anything, testUserID, testBookID).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/saved/42", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestListSavedEndpoint(t *testing.T) {
	mockService := new(MockSavedService)
	r := setupSavedRouter(mockService)

	pdf := "https://cdn.example.com/books/42.pdf"
	list := []models.SavedBook{
		{
			ID: 1, UserID: testUserID, BookID: testBookID, SavedAt: time.Now(),
			Book: &models.Book{
				ID: testBookID, Title: "The Go Programming Language",
				Author: "Donovan & Kernighan", BookType: models.BookTypeEbook,
				ThumbnailURL: "https://cdn.example.com/books/42.jpg", PDFURL: &pdf,
			},
		},
	}
	mockService.On("ListSaved", mock.Anything, testUserID).Return(list, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/saved", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["total"])
	assert.Contains(t, w.Body.String(), "The Go Programming Language")
}
