package service

import (
	"context"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/repository"
)

type BookService interface {
	Create(ctx context.Context, req dto.CreateBookRequest) (*models.Book, error)
	Search(ctx context.Context, q dto.SearchBooksQuery) ([]models.Book, error)
	Update(ctx context.Context, id int64, req dto.UpdateBookRequest) (*models.Book, error)
}

type bookService struct {
	repo        repository.BookRepository
	readingRepo repository.ReadingListRepository
	cache       ReadingListCache
}

func NewBookService(repo repository.BookRepository, readingRepo repository.ReadingListRepository, cache ReadingListCache) BookService {
	return &bookService{
		repo:        repo,
		readingRepo: readingRepo,
		cache:       cache,
	}
}

// Create stores the book as given; duplicates are allowed.
func (s *bookService) Create(ctx context.Context, req dto.CreateBookRequest) (*models.Book, error) {
	b := req.ToModel()
	if err := s.repo.Create(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Search runs an exact title lookup and an exact author lookup, skipping a
// filter that was not supplied, and merges the two by id. Filters are matched
// as given, whitespace included.
func (s *bookService) Search(ctx context.Context, q dto.SearchBooksQuery) ([]models.Book, error) {
	var byTitle, byAuthor []models.Book
	var err error

	if q.Title != "" {
		if byTitle, err = s.repo.FindByTitle(ctx, q.Title); err != nil {
			return nil, err
		}
	}
	if q.Author != "" {
		if byAuthor, err = s.repo.FindByAuthor(ctx, q.Author); err != nil {
			return nil, err
		}
	}

	books := MergeBooksByID(byTitle, byAuthor)
	if len(books) == 0 {
		return nil, ErrNoBooksFound
	}
	return books, nil
}

// MergeBooksByID concatenates sets keeping only the first occurrence of each id.
// Order follows the arguments, then the order within each set.
func MergeBooksByID(sets ...[]models.Book) []models.Book {
	seen := make(map[int64]struct{})
	merged := make([]models.Book, 0)
	for _, set := range sets {
		for _, b := range set {
			if _, ok := seen[b.ID]; ok {
				continue
			}
			seen[b.ID] = struct{}{}
			merged = append(merged, b)
		}
	}
	return merged
}

// Update replaces title and genre of an existing book. Cached reading lists
// that show the book are dropped.
func (s *bookService) Update(ctx context.Context, id int64, req dto.UpdateBookRequest) (*models.Book, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	req.ApplyTo(existing)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.invalidateHolders(ctx, id)
	return existing, nil
}

func (s *bookService) invalidateHolders(ctx context.Context, bookID int64) {
	userIDs, err := s.readingRepo.UserIDsByBook(ctx, bookID)
	if err != nil {
		logCacheError(ctx, "lookup holders", err)
		return
	}
	if err := s.cache.Invalidate(ctx, userIDs...); err != nil {
		logCacheError(ctx, "invalidate", err)
	}
}
