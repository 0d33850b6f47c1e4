package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const DefaultPassword = "password123"

// UniqueEmail returns a fresh address per call.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// CreateUser inserts an active, verified account with its profile.
func CreateUser(t testing.TB, db *gorm.DB, email string, role models.UserRole, first, last string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &models.Profile{
		ID:        user.ID,
		Role:      role,
		FirstName: first,
		LastName:  last,
		FullName:  models.ComposeFullName(first, last),
	}
	require.NoError(t, db.Create(profile).Error)
	return user
}

// Login signs in through the API and returns the access token and destination.
func Login(t testing.TB, ts *TestServer, email string) (string, string) {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": DefaultPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var out struct {
		AccessToken string `json:"access_token"`
		Destination string `json:"destination"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken, out.Destination
}

// CreateAndLoginCreator creates a creator with a complete profile and signs in.
func CreateAndLoginCreator(t testing.TB, ts *TestServer) (string, *models.User) {
	t.Helper()
	user := CreateUser(t, ts.DB, UniqueEmail("creator"), models.UserRoleCreator, "Ada", "Lovelace")
	token, _ := Login(t, ts, user.Email)
	return token, user
}
