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

type SavedHandler struct {
	svc service.SavedService
}

func NewSavedHandler(svc service.SavedService) *SavedHandler {
	return &SavedHandler{svc: svc}
}

func (h *SavedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Save)
	rg.GET("", h.List)
	rg.DELETE("/:book_id", h.Unsave)
}

// RegisterBookRoutes wires the per-book saved-by view onto the books group.
func (h *SavedHandler) RegisterBookRoutes(rg *gin.RouterGroup) {
	rg.GET("/:book_id/savers", middleware.RequireAdmin(), h.Savers)
}

// Save bookmarks an ebook for the acting user
func (h *SavedHandler) Save(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Save(ctx, userID, req.BookID); err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound), errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadySaved), errors.Is(err, service.ErrNotSavable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "book saved"})
}

// List returns the acting user's bookmarks
func (h *SavedHandler) List(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListSaved(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.SavedBookResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.FromSavedToResponse(s))
	}

	c.JSON(http.StatusOK, dto.SavedListResponse{Items: items, Total: len(items)})
}

// Savers lists the users who bookmarked a book
func (h *SavedHandler) Savers(c *gin.Context) {
	bookID, err := parseBookID(c)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListSavers(ctx, bookID)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.SaverResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.FromSavedToSaverResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// Unsave removes a bookmark; absent bookmarks unsave successfully
func (h *SavedHandler) Unsave(c *gin.Context) {
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

	if err := h.svc.Unsave(ctx, userID, bookID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
