package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Profile is keyed by the user id; role gates dashboard routing.
type Profile struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Role         UserRole        `gorm:"type:varchar(20);not null;default:'creator'" json:"role"`
	FirstName    string          `gorm:"size:100" json:"first_name"`
	LastName     string          `gorm:"size:100" json:"last_name"`
	FullName     string          `gorm:"size:201" json:"full_name"`
	Bio          string          `gorm:"type:text" json:"bio"`
	DateOfBirth  *datatypes.Date `json:"date_of_birth,omitempty"`
	Email        string          `gorm:"size:255" json:"email"`
	Phone        string          `gorm:"size:50" json:"phone"`
	Country      string          `gorm:"size:100" json:"country"`
	City         string          `gorm:"size:100" json:"city"`
	InstagramURL string          `gorm:"size:500" json:"instagram_url"`
	LinkedinURL  string          `gorm:"size:500" json:"linkedin_url"`
	PortfolioURL string          `gorm:"size:500" json:"portfolio_url"`
	AvatarURL    string          `gorm:"size:1000" json:"avatar_url"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsComplete reports whether both names are filled in.
func (p *Profile) IsComplete() bool {
	return strings.TrimSpace(p.FirstName) != "" && strings.TrimSpace(p.LastName) != ""
}

// ComposeFullName joins first and last name the way the profile form stores it.
func ComposeFullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// Brand is the company record of a brand account, keyed by the user id.
type Brand struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CompanyName string    `gorm:"size:255" json:"company_name"`
	Website     string    `gorm:"size:500" json:"website"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Brand) IsComplete() bool {
	return b != nil && strings.TrimSpace(b.CompanyName) != ""
}
