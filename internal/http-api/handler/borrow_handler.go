package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/middleware"
	"bookhive/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type BorrowHandler struct {
	svc service.BorrowService
}

func NewBorrowHandler(svc service.BorrowService) *BorrowHandler {
	return &BorrowHandler{svc: svc}
}

// RegisterRoutes wires the lending lifecycle. Users request and withdraw for
// themselves; the physical hand-off (issue/return) is a librarian action.
func (h *BorrowHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/request", h.Request)
	rg.DELETE("/request/:book_id", h.Withdraw)
	rg.GET("/me", h.MyLoans)
	rg.GET("/me/history", h.MyHistory)

	rg.POST("/issue", middleware.RequireAdmin(), h.Issue)
	rg.POST("/return", middleware.RequireAdmin(), h.Return)
}

// RegisterBookRoutes wires the per-book views onto the books group.
func (h *BorrowHandler) RegisterBookRoutes(rg *gin.RouterGroup) {
	rg.GET("/:book_id/borrowers", middleware.RequireAdmin(), h.Borrowers)
	rg.GET("/:book_id/history", middleware.RequireAdmin(), h.BookHistory)
}

func (h *BorrowHandler) Request(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.BorrowActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.svc.Request(ctx, userID, req.BookID)
	if err != nil {
		writeBorrowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromBorrowRecordToResponse(*rec))
}

func (h *BorrowHandler) Withdraw(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	bookID, err := parseBookID(c)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// withdrawing a request that no longer exists is still a success
	if err := h.svc.Withdraw(ctx, userID, bookID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BorrowHandler) Issue(c *gin.Context) {
	var req dto.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.svc.Issue(ctx, req.UserID, req.BookID)
	if err != nil {
		writeBorrowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBorrowRecordToResponse(*rec))
}

func (h *BorrowHandler) Return(c *gin.Context) {
	var req dto.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	hist, err := h.svc.Return(ctx, req.UserID, req.BookID)
	if err != nil {
		writeBorrowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBorrowHistoryToResponse(*hist))
}

func (h *BorrowHandler) MyLoans(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListUserLoans(ctx, userID)
	if err != nil {
		writeBorrowError(c, err)
		return
	}

	items := make([]dto.BorrowRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, dto.FromBorrowRecordToResponse(rec))
	}
	c.JSON(http.StatusOK, dto.BorrowListResponse{Items: items, Total: len(items)})
}

func (h *BorrowHandler) MyHistory(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListUserHistory(ctx, userID)
	if err != nil {
		writeBorrowError(c, err)
		return
	}

	items := make([]dto.BorrowHistoryResponse, 0, len(list))
	for _, entry := range list {
		items = append(items, dto.FromBorrowHistoryToResponse(entry))
	}
	c.JSON(http.StatusOK, dto.BorrowHistoryListResponse{Items: items, Total: len(items)})
}

func (h *BorrowHandler) Borrowers(c *gin.Context) {
	bookID, err := parseBookID(c)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListActiveBorrowers(ctx, bookID)
	if err != nil {
		writeBorrowError(c, err)
		return
	}

	items := make([]dto.BorrowRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, dto.FromBorrowRecordToResponse(rec))
	}
	c.JSON(http.StatusOK, dto.BorrowListResponse{Items: items, Total: len(items)})
}

func (h *BorrowHandler) BookHistory(c *gin.Context) {
	bookID, err := parseBookID(c)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListBookHistory(ctx, bookID)
	if err != nil {
		writeBorrowError(c, err)
		return
	}

	items := make([]dto.BorrowHistoryResponse, 0, len(list))
	for _, entry := range list {
		items = append(items, dto.FromBorrowHistoryToResponse(entry))
	}
	c.JSON(http.StatusOK, dto.BorrowHistoryListResponse{Items: items, Total: len(items)})
}

// actingUser pulls the authenticated user id set by the auth middleware.
func actingUser(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return userID.(string), true
}

// writeBorrowError maps lifecycle errors onto status codes with their
// specific messages intact.
func writeBorrowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNoActiveLoan):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyRequested),
		errors.Is(err, service.ErrAlreadyBorrowed),
		errors.Is(err, service.ErrNoCopiesAvailable),
		errors.Is(err, service.ErrNotBorrowable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
