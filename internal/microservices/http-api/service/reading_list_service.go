package service

import (
	"context"
	"log/slog"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/repository"
)

// ReadingListCache stores the shaped reading list per user. Lists are read and
// written under the version taken before the store was queried; Invalidate
// moves a user to a new version.
type ReadingListCache interface {
	Version(ctx context.Context, userID int64) (int64, error)
	Get(ctx context.Context, userID, version int64) ([]dto.ReadingListEntryResponse, bool, error)
	Set(ctx context.Context, userID, version int64, entries []dto.ReadingListEntryResponse) error
	Invalidate(ctx context.Context, userIDs ...int64) error
}

type ReadingListService interface {
	Add(ctx context.Context, req dto.AddToReadingListRequest) (*models.ReadingList, error)
	ListForUser(ctx context.Context, userID int64) ([]dto.ReadingListEntryResponse, error)
	Remove(ctx context.Context, id int64) error
}

type readingListService struct {
	repo     repository.ReadingListRepository
	userRepo repository.UserRepository
	bookRepo repository.BookRepository
	cache    ReadingListCache
}

func NewReadingListService(
	repo repository.ReadingListRepository,
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	cache ReadingListCache,
) ReadingListService {
	return &readingListService{
		repo:     repo,
		userRepo: userRepo,
		bookRepo: bookRepo,
		cache:    cache,
	}
}

func (s *readingListService) Add(ctx context.Context, req dto.AddToReadingListRequest) (*models.ReadingList, error) {
	if !models.ReadingStatus(req.Status).Valid() {
		return nil, ErrInvalidStatus
	}

	// both must exist at creation time
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidUserOrBook
		}
		return nil, err
	}
	if _, err := s.bookRepo.FindByID(ctx, req.BookID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidUserOrBook
		}
		return nil, err
	}

	entry := req.ToModel()
	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, entry.UserID); err != nil {
		logCacheError(ctx, "invalidate", err)
	}
	return &entry, nil
}

// ListForUser returns ErrUserNotFound for an unknown user and ErrEmptyReadingList
// when the user exists but holds no entries.
func (s *readingListService) ListForUser(ctx context.Context, userID int64) ([]dto.ReadingListEntryResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	version, err := s.cache.Version(ctx, userID)
	cacheable := err == nil
	if err != nil {
		logCacheError(ctx, "version", err)
	}

	if cacheable {
		if cached, ok, err := s.cache.Get(ctx, userID, version); err != nil {
			logCacheError(ctx, "get", err)
		} else if ok && len(cached) > 0 {
			return cached, nil
		}
	}

	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := dto.FromReadingListModels(list)
	if len(items) == 0 {
		return nil, ErrEmptyReadingList
	}

	if cacheable {
		if err := s.cache.Set(ctx, userID, version, items); err != nil {
			logCacheError(ctx, "set", err)
		}
	}
	return items, nil
}

func (s *readingListService) Remove(ctx context.Context, id int64) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrEntryNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, entry); err != nil {
		if repository.IsNotFound(err) {
			return ErrEntryNotFound
		}
		return err
	}

	if err := s.cache.Invalidate(ctx, entry.UserID); err != nil {
		logCacheError(ctx, "invalidate", err)
	}
	return nil
}

// cache failures never fail a request
func logCacheError(ctx context.Context, op string, err error) {
	slog.WarnContext(ctx, "reading list cache "+op+" failed", "error", err)
}
