package dto

import "github.com/mensah/schoolms/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	OtherNames    string `json:"other_names"`
	Gender        string `json:"gender" binding:"required,oneof=male female"`
	Role          string `json:"role" binding:"omitempty,oneof=staff parent"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	DOB           string `json:"dob"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserResponse represents user account information without credentials
type UserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	OtherNames    string `json:"other_names,omitempty"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contact_number,omitempty"`
	Address       string `json:"address,omitempty"`
	LastLoginDate string `json:"last_login_date,omitempty"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// NewUserResponse maps a user account onto the response shape
func NewUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		OtherNames:    user.OtherNames,
		Gender:        string(user.Gender),
		ContactNumber: user.ContactNumber,
		Address:       user.Address,
	}
	if !user.LastLoginDate.IsZero() {
		resp.LastLoginDate = user.LastLoginDate.Format(models.TimeLayout)
	}
	return resp
}
