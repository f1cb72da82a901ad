package dto

import "bookshelf/internal/microservices/http-api/models"

// CreateUserRequest: payload for POST /api/users
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (r CreateUserRequest) ToModel() models.User {
	return models.User{
		Username: r.Username,
		Email:    r.Email,
	}
}
