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

type BookHandler struct {
	svc service.BookService
}

func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/books", h.Create)
	rg.GET("/books/search", h.Search)
	rg.POST("/books/:bookId", h.Update)
}

// Create handles POST /api/books. Duplicate books are allowed.
func (h *BookHandler) Create(c *gin.Context) {
	bag := bindFieldBag(c)
	if errs := validation.ValidateBook(bag); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	req := dto.CreateBookRequest{
		Title:           fieldString(bag, "title"),
		Author:          fieldString(bag, "author"),
		Genre:           fieldString(bag, "genre"),
		PublicationYear: int(fieldInt(bag, "publicationYear")),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	book, err := h.svc.Create(ctx, req)
	if err != nil {
		internalError(c, "Error occurred while creating the book.", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book added successfully.",
		"book":    book,
	})
}

// Search handles GET /api/books/search?title=&author=
func (h *BookHandler) Search(c *gin.Context) {
	if errs := validation.ValidateSearch(queryFieldBag(c, "title", "author")); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	var q dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationFailed(c, []string{validation.MsgSearch})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	books, err := h.svc.Search(ctx, q)
	if err != nil {
		// an empty result is a client error here, not an empty 200
		if errors.Is(err, service.ErrNoBooksFound) {
			message(c, http.StatusBadRequest, "No books found")
			return
		}
		internalError(c, "Error occurred while fetching the books.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": dto.FromBookModels(books)})
}

// Update handles POST /api/books/:bookId, changing title and genre only.
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Title and genre is required")
		return
	}

	id, ok := parseID(c, "bookId")
	if !ok {
		message(c, http.StatusBadRequest, "Book not found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	book, err := h.svc.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			message(c, http.StatusBadRequest, "Book not found")
			return
		}
		internalError(c, "Error occurred while updating the book.", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book details updated successfully",
		"book":    book,
	})
}
