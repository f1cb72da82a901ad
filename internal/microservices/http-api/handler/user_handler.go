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

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.Create)
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	bag := bindFieldBag(c)
	if errs := validation.ValidateUser(bag); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	req := dto.CreateUserRequest{
		Username: fieldString(bag, "username"),
		Email:    fieldString(bag, "email"),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.svc.Create(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			message(c, http.StatusConflict, "Email already exists")
			return
		}
		internalError(c, "Error occurred while creating the user.", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully.",
		"user":    user,
	})
}
