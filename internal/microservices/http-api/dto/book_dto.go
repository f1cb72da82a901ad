package dto

import "bookshelf/internal/microservices/http-api/models"

// CreateBookRequest used for POST /api/books
type CreateBookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationYear int    `json:"publicationYear"`
}

// UpdateBookRequest used for POST /api/books/:bookId. Author and publication year are immutable.
type UpdateBookRequest struct {
	Title string `json:"title" binding:"required"`
	Genre string `json:"genre" binding:"required"`
}

// SearchBooksQuery holds the ?title= and ?author= filters.
type SearchBooksQuery struct {
	Title  string `form:"title"`
	Author string `form:"author"`
}

// BookResponse is the search projection of a book.
type BookResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationYear int    `json:"publicationYear"`
}

func (r CreateBookRequest) ToModel() models.Book {
	return models.Book{
		Title:           r.Title,
		Author:          r.Author,
		Genre:           r.Genre,
		PublicationYear: r.PublicationYear,
	}
}

func (r UpdateBookRequest) ApplyTo(b *models.Book) {
	b.Title = r.Title
	b.Genre = r.Genre
}

func FromBookModel(b models.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genre,
		PublicationYear: b.PublicationYear,
	}
}

func FromBookModels(list []models.Book) []BookResponse {
	resp := make([]BookResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, FromBookModel(b))
	}
	return resp
}
