package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mensah/schoolms/internal/app/models/dto"
	"github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/middleware"
)

// UserController handles user account operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile returns the authenticated user's account
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	user, err := c.userService.GetUser(userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user), ""))
}

// ListUsers returns every user account
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.NewUserResponse(user))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(out, ""))
}

// GetUser returns one user account by id
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.userService.GetUser(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user), ""))
}

// UpdateUser applies a partial update to a user account
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var fields dto.UpdateFieldsRequest
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		bindError(ctx, err)
		return
	}

	user, err := c.userService.UpdateUser(ctx.Param("id"), fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user), "User updated"))
}

// DeleteUser removes a user account and its role specialization
func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.userService.DeleteUser(ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "User deleted"})
}
