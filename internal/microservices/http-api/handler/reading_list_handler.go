package handler

import (
	"context"
	"errors"
	"net/http"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/service"
	"bookshelf/internal/microservices/http-api/validation"

	"github.com/gin-gonic/gin"
)

const readingListNotFound = "User not found or no books in reading list"

type ReadingListHandler struct {
	svc service.ReadingListService
}

func NewReadingListHandler(svc service.ReadingListService) *ReadingListHandler {
	return &ReadingListHandler{svc: svc}
}

func (h *ReadingListHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reading-list", h.Add)
	rg.POST("/reading-list/delete", h.Remove)
	rg.GET("/reading-list/:userId", h.List)
}

// Add handles POST /api/reading-list
func (h *ReadingListHandler) Add(c *gin.Context) {
	bag := bindFieldBag(c)
	if errs := validation.ValidateReadingList(bag); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	req := dto.AddToReadingListRequest{
		UserID: fieldInt(bag, "userId"),
		BookID: fieldInt(bag, "bookId"),
		Status: fieldString(bag, "status"),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	entry, err := h.svc.Add(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			message(c, http.StatusBadRequest, `Invalid status. Must be "Want to Read", "Reading", or "Finished".`)
		case errors.Is(err, service.ErrInvalidUserOrBook):
			message(c, http.StatusBadRequest, "Invalid user or book ID")
		default:
			internalError(c, "Error occurred while creating the reading list entry.", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Book added to reading list",
		"readingList": entry,
	})
}

// List handles GET /api/reading-list/:userId
func (h *ReadingListHandler) List(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		message(c, http.StatusBadRequest, "UserId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	items, err := h.svc.ListForUser(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			message(c, http.StatusNotFound, readingListNotFound)
		case errors.Is(err, service.ErrEmptyReadingList):
			message(c, http.StatusBadRequest, readingListNotFound)
		default:
			internalError(c, "Error occurred while fetching the user reading list.", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"readingList": items})
}

// Remove handles POST /api/reading-list/delete
func (h *ReadingListHandler) Remove(c *gin.Context) {
	var req dto.RemoveFromReadingListRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ReadingListID <= 0 {
		message(c, http.StatusBadRequest, "Required readingListId to delete")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Remove(ctx, req.ReadingListID); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			message(c, http.StatusNotFound, "Reading list entry not found")
			return
		}
		internalError(c, "Error occurred while removing the reading list entry.", err)
		return
	}

	message(c, http.StatusOK, "Book removed from reading list")
}
