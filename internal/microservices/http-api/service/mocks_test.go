package service

import (
	"context"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) FindByTitle(ctx context.Context, title string) ([]models.Book, error) {
	args := m.Called(ctx, title)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) FindByAuthor(ctx context.Context, author string) ([]models.Book, error) {
	args := m.Called(ctx, author)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

// MockReadingListRepository mocks the ReadingListRepository interface
type MockReadingListRepository struct {
	mock.Mock
}

func (m *MockReadingListRepository) Create(ctx context.Context, entry *models.ReadingList) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockReadingListRepository) FindByID(ctx context.Context, id int64) (*models.ReadingList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingList), args.Error(1)
}

func (m *MockReadingListRepository) ListByUser(ctx context.Context, userID int64) ([]models.ReadingList, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.ReadingList), args.Error(1)
}

func (m *MockReadingListRepository) Delete(ctx context.Context, entry *models.ReadingList) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockReadingListRepository) UserIDsByBook(ctx context.Context, bookID int64) ([]int64, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).([]int64), args.Error(1)
}

// MockCache mocks the ReadingListCache interface
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Version(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Get(ctx context.Context, userID, version int64) ([]dto.ReadingListEntryResponse, bool, error) {
	args := m.Called(ctx, userID, version)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]dto.ReadingListEntryResponse), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, userID, version int64, entries []dto.ReadingListEntryResponse) error {
	args := m.Called(ctx, userID, version, entries)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, userIDs ...int64) error {
	args := m.Called(ctx, userIDs)
	return args.Error(0)
}
