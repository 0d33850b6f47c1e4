package auth

import (
	"errors"
	"testing"
	"time"

	"creatorhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))

	assert.ErrorIs(t, ValidatePassword("12345"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("123456"))
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)

	token, err := m.GenerateToken("user-1", "creator")
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "creator", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseToken_Rejects(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)
	token, err := m.GenerateToken("user-1", "brand")
	require.NoError(t, err)

	other := NewTokenManager("other-secret", time.Minute)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("test-secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.GenerateToken("user-1", "brand")
	require.NoError(t, err)
	_, err = m.ParseToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("", time.Minute).GenerateToken("u", "creator")
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestLoginDestination(t *testing.T) {
	d, ok := LoginDestination(models.UserRoleCreator)
	assert.True(t, ok)
	assert.Equal(t, DestinationCreatorDashboard, d)

	d, ok = LoginDestination(models.UserRoleBrand)
	assert.True(t, ok)
	assert.Equal(t, DestinationBrandDashboard, d)

	for _, role := range []models.UserRole{models.UserRoleAdmin, "", "model"} {
		d, ok = LoginDestination(role)
		assert.False(t, ok)
		assert.Equal(t, DestinationNone, d)
	}
}

func TestSignupDestination(t *testing.T) {
	assert.Equal(t, DestinationBrandCreateProfile, SignupDestination(models.UserRoleBrand))
	assert.Equal(t, DestinationCreatorCreateProfile, SignupDestination(models.UserRoleCreator))
}

func TestCallbackDestination(t *testing.T) {
	complete := &models.Profile{Role: models.UserRoleCreator, FirstName: "Ada", LastName: "Lovelace"}
	incomplete := &models.Profile{Role: models.UserRoleCreator, FirstName: "Ada"}
	brand := &models.Profile{Role: models.UserRoleBrand}

	tests := []struct {
		name    string
		authed  bool
		profile *models.Profile
		brand   *models.Brand
		err     error
		want    Destination
	}{
		{"no session", false, complete, nil, nil, DestinationLogin},
		{"lookup error", true, nil, nil, errors.New("boom"), DestinationLogin},
		{"missing profile", true, nil, nil, nil, DestinationLogin},
		{"creator incomplete", true, incomplete, nil, nil, DestinationCreatorCreateProfile},
		{"creator complete", true, complete, nil, nil, DestinationCreatorDashboard},
		{"brand without company", true, brand, nil, nil, DestinationBrandCreateProfile},
		{"brand empty company", true, brand, &models.Brand{}, nil, DestinationBrandCreateProfile},
		{"brand complete", true, brand, &models.Brand{CompanyName: "Acme"}, nil, DestinationBrandDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CallbackDestination(tt.authed, tt.profile, tt.brand, tt.err))
		})
	}
}

func TestPermissions(t *testing.T) {
	assert.True(t, HasPermission(models.UserRoleCreator, PermPostsWrite))
	assert.True(t, HasPermission(models.UserRoleCreator, PermMediaLibrary))
	assert.False(t, HasPermission(models.UserRoleBrand, PermPostsRead))
	assert.False(t, HasPermission(models.UserRoleBrand, PermMediaLibrary))
	assert.True(t, HasPermission(models.UserRoleBrand, PermDashBrand))
	assert.False(t, HasPermission(models.UserRoleBrand, PermDashCreator))
	assert.True(t, HasPermission(models.UserRoleAdmin, PermUsersDelete))
	assert.False(t, HasPermission(models.UserRoleCreator, PermUsersDelete))
	assert.False(t, HasPermission("guest", PermMediaUpload))
}
