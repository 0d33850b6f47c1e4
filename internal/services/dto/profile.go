package dto

import (
	"time"

	"creatorhub_backend/internal/models"
)

// CreatorProfileRequest is the multipart creator profile form. The avatar
// file travels next to it and is bound separately.
type CreatorProfileRequest struct {
	FirstName    string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Bio          string `json:"bio" form:"bio" validate:"max=2000"`
	DateOfBirth  string `json:"date_of_birth" form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Email        string `json:"email" form:"email" validate:"omitempty,email,max=255"`
	Phone        string `json:"phone" form:"phone" validate:"max=50"`
	Country      string `json:"country" form:"country" validate:"max=100"`
	City         string `json:"city" form:"city" validate:"max=100"`
	InstagramURL string `json:"instagram_url" form:"instagram_url" validate:"omitempty,url,max=500"`
	LinkedinURL  string `json:"linkedin_url" form:"linkedin_url" validate:"omitempty,url,max=500"`
	PortfolioURL string `json:"portfolio_url" form:"portfolio_url" validate:"omitempty,url,max=500"`
}

type BrandProfileRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=255"`
	Website     string `json:"website" validate:"omitempty,url,max=500"`
}

type ProfileDTO struct {
	ID           string          `json:"id"`
	Role         models.UserRole `json:"role"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	FullName     string          `json:"full_name"`
	Bio          string          `json:"bio"`
	DateOfBirth  string          `json:"date_of_birth,omitempty"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Country      string          `json:"country"`
	City         string          `json:"city"`
	InstagramURL string          `json:"instagram_url"`
	LinkedinURL  string          `json:"linkedin_url"`
	PortfolioURL string          `json:"portfolio_url"`
	AvatarURL    string          `json:"avatar_url"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type BrandDTO struct {
	CompanyName string `json:"company_name"`
	Website     string `json:"website"`
}

// ProfileResponse is the caller's own profile; Brand is set for brand accounts.
type ProfileResponse struct {
	Profile    ProfileDTO `json:"profile"`
	Brand      *BrandDTO  `json:"brand,omitempty"`
	IsComplete bool       `json:"is_complete"`
}

// PublicProfileResponse is what anyone may see about a creator.
type PublicProfileResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FullName     string    `json:"full_name"`
	Bio          string    `json:"bio"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	InstagramURL string    `json:"instagram_url"`
	PortfolioURL string    `json:"portfolio_url"`
	AvatarURL    string    `json:"avatar_url"`
	Posts        []PostDTO `json:"posts"`
}

// ProfileCardDTO is the sidebar card of the dashboards.
type ProfileCardDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

func NewProfileDTO(p *models.Profile) ProfileDTO {
	out := ProfileDTO{
		ID:           p.ID,
		Role:         p.Role,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		FullName:     p.FullName,
		Bio:          p.Bio,
		Email:        p.Email,
		Phone:        p.Phone,
		Country:      p.Country,
		City:         p.City,
		InstagramURL: p.InstagramURL,
		LinkedinURL:  p.LinkedinURL,
		PortfolioURL: p.PortfolioURL,
		AvatarURL:    p.AvatarURL,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.DateOfBirth != nil {
		out.DateOfBirth = time.Time(*p.DateOfBirth).Format("2006-01-02")
	}
	return out
}

func NewBrandDTO(b *models.Brand) *BrandDTO {
	if b == nil {
		return nil
	}
	return &BrandDTO{CompanyName: b.CompanyName, Website: b.Website}
}

func NewProfileCard(p *models.Profile) ProfileCardDTO {
	if p == nil {
		return ProfileCardDTO{}
	}
	return ProfileCardDTO{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
	}
}
