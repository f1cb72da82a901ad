package repository

import (
	"context"
	"fmt"

	"bookshelf/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	FindByID(ctx context.Context, id int64) (*models.Book, error)
	FindByTitle(ctx context.Context, title string) ([]models.Book, error)
	FindByAuthor(ctx context.Context, author string) ([]models.Book, error)
	Update(ctx context.Context, book *models.Book) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM populates book.ID and the timestamps
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	return &b, nil
}

// FindByTitle returns every book whose title matches exactly, ordered by id.
func (r *bookRepository) FindByTitle(ctx context.Context, title string) ([]models.Book, error) {
	return r.findBy(ctx, "title", title)
}

// FindByAuthor returns every book whose author matches exactly, ordered by id.
func (r *bookRepository) FindByAuthor(ctx context.Context, author string) ([]models.Book, error) {
	return r.findBy(ctx, "author", author)
}

func (r *bookRepository) findBy(ctx context.Context, column, value string) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).
		Select("id", "title", "author", "genre", "publication_year").
		Where(column+" = ?", value).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find books by %s: %w", column, err)
	}
	return list, nil
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}
	return nil
}
