package service

import (
	"context"
	"errors"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/repository"
)

type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Create registers a user unless the email is already taken. The lookup gives
// the common case a clean conflict without an insert; the unique index catches
// the concurrent case.
func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	_, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, ErrEmailInUse
	case !repository.IsNotFound(err):
		return nil, err
	}

	user := req.ToModel()
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return &user, nil
}
