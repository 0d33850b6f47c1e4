package models

import "time"

// User is the auth account. Profile data lives in Profile, keyed by the same id.
type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Status            UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken string     `gorm:"size:64;index" json:"-"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	Token     string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
