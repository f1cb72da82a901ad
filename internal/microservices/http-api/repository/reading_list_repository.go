package repository

import (
	"context"
	"fmt"

	"bookshelf/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReadingListRepository interface {
	Create(ctx context.Context, entry *models.ReadingList) error
	FindByID(ctx context.Context, id int64) (*models.ReadingList, error)
	ListByUser(ctx context.Context, userID int64) ([]models.ReadingList, error)
	Delete(ctx context.Context, entry *models.ReadingList) error
	UserIDsByBook(ctx context.Context, bookID int64) ([]int64, error)
}

type readingListRepository struct {
	db *gorm.DB
}

func NewReadingListRepository(db *gorm.DB) ReadingListRepository {
	return &readingListRepository{db: db}
}

func (r *readingListRepository) Create(ctx context.Context, entry *models.ReadingList) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("add to reading list: %w", err)
	}
	return nil
}

func (r *readingListRepository) FindByID(ctx context.Context, id int64) (*models.ReadingList, error) {
	var entry models.ReadingList
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, fmt.Errorf("find reading list entry %d: %w", id, err)
	}
	return &entry, nil
}

// ListByUser loads a user's entries with the title, author and genre of each book.
func (r *readingListRepository) ListByUser(ctx context.Context, userID int64) ([]models.ReadingList, error) {
	var list []models.ReadingList

	if err := r.db.WithContext(ctx).
		Select("id", "user_id", "book_id", "status").
		Preload("Book", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "author", "genre")
		}).
		Where("user_id = ?", userID).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list reading list: %w", err)
	}

	return list, nil
}

func (r *readingListRepository) Delete(ctx context.Context, entry *models.ReadingList) error {
	result := r.db.WithContext(ctx).Delete(entry)
	if result.Error != nil {
		return fmt.Errorf("remove from reading list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("remove from reading list: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// UserIDsByBook returns the distinct users holding bookID on their list.
func (r *readingListRepository) UserIDsByBook(ctx context.Context, bookID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReadingList{}).
		Where("book_id = ?", bookID).
		Distinct().
		Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("users by book %d: %w", bookID, err)
	}
	return ids, nil
}
