package services

import (
	"context"
	"testing"
	"time"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignupCreatesUserAndProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	resp, err := h.auth.Signup(ctx, nil, &dto.SignupRequest{
		Email:    " New@Example.com ",
		Password: "secret123",
		FullName: "New Creator",
	})
	require.NoError(t, err)
	assert.Equal(t, MessageConfirmationSent, resp.Message)
	assert.Equal(t, string(auth.DestinationCreatorCreateProfile), resp.Destination)

	user, err := h.users.FindByID(nil, resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, models.UserStatusPending, user.Status)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	profile, err := h.profiles.FindByID(nil, resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleCreator, profile.Role)
	assert.Equal(t, "New Creator", profile.FullName)

	require.Len(t, h.mailer.tokens, 1)
	assert.Equal(t, user.VerificationToken, h.mailer.tokens[0])
}

func TestAuthService_SignupBrandCreatesBrandRow(t *testing.T) {
	h := newHarness(t)

	resp, err := h.auth.Signup(context.Background(), nil, &dto.SignupRequest{
		Email:     "brand@example.com",
		Password:  "secret123",
		Role:      "brand",
		BrandName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, string(auth.DestinationBrandCreateProfile), resp.Destination)

	brand, err := h.profiles.FindBrandByID(nil, resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", brand.CompanyName)
}

func TestAuthService_SignupErrors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addUser(t, "taken@example.com", models.UserRoleCreator, "A", "B")

	_, err := h.auth.Signup(ctx, nil, &dto.SignupRequest{Email: "taken@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = h.auth.Signup(ctx, nil, &dto.SignupRequest{Email: "short@example.com", Password: "12345"})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	_, err = h.auth.Signup(ctx, nil, &dto.SignupRequest{Email: "admin@example.com", Password: "secret123", Role: "admin"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestAuthService_SignupKeepsAccountWhenMailFails(t *testing.T) {
	h := newHarness(t)
	h.mailer.err = errBoom

	resp, err := h.auth.Signup(context.Background(), nil, &dto.SignupRequest{Email: "m@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = h.users.FindByID(nil, resp.UserID)
	assert.NoError(t, err)
}

func TestAuthService_VerifyThenLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.auth.Signup(ctx, nil, &dto.SignupRequest{Email: "v@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = h.auth.Login(ctx, nil, &dto.LoginRequest{Email: "v@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotVerified)

	assert.ErrorIs(t, h.auth.VerifyEmail(ctx, nil, "nope"), apperrors.ErrInvalidToken)
	require.NoError(t, h.auth.VerifyEmail(ctx, nil, h.mailer.tokens[0]))

	resp, err := h.auth.Login(ctx, nil, &dto.LoginRequest{Email: "v@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, string(auth.DestinationCreatorDashboard), resp.Destination)
	assert.Empty(t, resp.Notice)
	assert.NotEmpty(t, resp.AccessToken)
	assert.EqualValues(t, 900, resp.ExpiresIn)

	claims, err := h.auth.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "creator", claims.Role)
}

func TestAuthService_LoginRouting(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addUser(t, "brand@example.com", models.UserRoleBrand, "B", "R")
	h.addUser(t, "admin@example.com", models.UserRoleAdmin, "A", "D")

	resp, err := h.auth.Login(ctx, nil, &dto.LoginRequest{Email: "brand@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, string(auth.DestinationBrandDashboard), resp.Destination)

	resp, err = h.auth.Login(ctx, nil, &dto.LoginRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Empty(t, resp.Destination)
	assert.Equal(t, NoticeUnknownRole, resp.Notice)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.addUser(t, "c@example.com", models.UserRoleCreator, "C", "R")

	_, err := h.auth.Login(ctx, nil, &dto.LoginRequest{Email: "c@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = h.auth.Login(ctx, nil, &dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.NoError(t, h.profiles.Delete(nil, id))
	_, err = h.auth.Login(ctx, nil, &dto.LoginRequest{Email: "c@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)

	require.NoError(t, h.users.UpdateStatus(nil, id, models.UserStatusSuspended))
	_, err = h.auth.Login(ctx, nil, &dto.LoginRequest{Email: "c@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrUserSuspended)
}

func TestAuthService_RefreshRotatesAndLogoutRevokes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addUser(t, "r@example.com", models.UserRoleCreator, "R", "T")

	login, err := h.auth.Login(ctx, nil, &dto.LoginRequest{Email: "r@example.com", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := h.auth.Refresh(ctx, nil, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = h.auth.Refresh(ctx, nil, login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	require.NoError(t, h.auth.Logout(ctx, nil, refreshed.RefreshToken))
	_, err = h.auth.Refresh(ctx, nil, refreshed.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_RefreshExpired(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.addUser(t, "e@example.com", models.UserRoleCreator, "E", "X")
	require.NoError(t, h.tokens.Create(nil, &models.RefreshToken{
		UserID:    id,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := h.auth.Refresh(ctx, nil, "stale")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	_, err = h.tokens.FindByToken(nil, "stale")
	assert.Error(t, err)
}

func TestAuthService_Callback(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	complete := h.addUser(t, "done@example.com", models.UserRoleCreator, "Done", "User")
	incomplete := h.addUser(t, "half@example.com", models.UserRoleCreator, "Half", " ")
	brand := h.addUser(t, "brand@example.com", models.UserRoleBrand, "", "")

	assert.Equal(t, string(auth.DestinationLogin), h.auth.Callback(ctx, nil, "").Destination)
	assert.Equal(t, string(auth.DestinationCreatorDashboard), h.auth.Callback(ctx, nil, complete).Destination)
	assert.Equal(t, string(auth.DestinationCreatorCreateProfile), h.auth.Callback(ctx, nil, incomplete).Destination)
	assert.Equal(t, string(auth.DestinationBrandCreateProfile), h.auth.Callback(ctx, nil, brand).Destination)

	require.NoError(t, h.profiles.CreateBrand(nil, &models.Brand{ID: brand, CompanyName: "Acme"}))
	assert.Equal(t, string(auth.DestinationBrandDashboard), h.auth.Callback(ctx, nil, brand).Destination)

	h.profiles.findErr = errBoom
	assert.Equal(t, string(auth.DestinationLogin), h.auth.Callback(ctx, nil, complete).Destination)
}

func TestAuthService_Me(t *testing.T) {
	h := newHarness(t)
	id := h.addUser(t, "me@example.com", models.UserRoleBrand, "M", "E")

	me, err := h.auth.Me(context.Background(), nil, id)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", me.Email)
	assert.Equal(t, models.UserRoleBrand, me.Role)

	_, err = h.auth.Me(context.Background(), nil, "missing")
	require.Error(t, err)
}
