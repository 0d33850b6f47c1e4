package dto

import (
	"time"

	"creatorhub_backend/internal/models"
)

// SignupRequest covers the generic, creator and brand signup forms.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FullName  string `json:"full_name" validate:"max=200"`
	Role      string `json:"role" validate:"omitempty,is-signup-role"`
	BrandName string `json:"brand_name" validate:"required_if=Role brand,max=255"`
}

type SignupResponse struct {
	Message     string `json:"message"`
	UserID      string `json:"user_id"`
	Destination string `json:"destination"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries tokens plus where the client should go next.
// Destination is empty and Notice is set when the role has no dashboard.
type LoginResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int64   `json:"expires_in"`
	User         UserDTO `json:"user"`
	Destination  string  `json:"destination"`
	Notice       string  `json:"notice,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type CallbackResponse struct {
	Destination string `json:"destination"`
}

type UserDTO struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	Role       models.UserRole   `json:"role"`
	Status     models.UserStatus `json:"status"`
	IsVerified bool              `json:"is_verified"`
	CreatedAt  time.Time         `json:"created_at"`
}

// SessionDTO describes the signed-in caller.
type SessionDTO struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewUserDTO(u *models.User, role models.UserRole) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Email:      u.Email,
		Role:       role,
		Status:     u.Status,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}
