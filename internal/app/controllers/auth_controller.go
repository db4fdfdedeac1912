package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/app/models/dto"
	"github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/middleware"
	"github.com/mensah/schoolms/internal/pkg/auth"
)

// AuthController handles registration and login
type AuthController struct {
	userService services.UserService
	jwtService  *auth.JWTService
}

// NewAuthController creates a new AuthController
func NewAuthController(userService services.UserService, jwtService *auth.JWTService) *AuthController {
	return &AuthController{
		userService: userService,
		jwtService:  jwtService,
	}
}

// Register handles user registration
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	dob, ok := parseDate(ctx, "dob", req.DOB)
	if !ok {
		return
	}

	user := &models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		OtherNames:    req.OtherNames,
		Email:         req.Email,
		Password:      req.Password,
		Gender:        models.Gender(req.Gender),
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		DOB:           dob,
	}

	created, err := c.userService.Register(user, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewUserResponse(created), "Registration successful"))
}

// Login authenticates a user and issues an access token
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	user, err := c.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, expiresIn, err := c.jwtService.GenerateToken(user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		User: dto.NewUserResponse(user),
	}, "Login successful"))
}
