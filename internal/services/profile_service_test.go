package services

import (
	"context"
	"strings"
	"testing"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_CompleteCreatorProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	uid := h.addUser(t, "c@example.com", models.UserRoleCreator, "", "")

	resp, err := h.profile.CompleteCreatorProfile(ctx, nil, uid, &dto.CreatorProfileRequest{
		FirstName:   " Ada ",
		LastName:    "Lovelace",
		Bio:         "Engines",
		DateOfBirth: "1815-12-10",
	}, fileHeader(t, "me.png", testPNG(t, 20, 20)))
	require.NoError(t, err)
	assert.True(t, resp.IsComplete)
	assert.Equal(t, "Ada Lovelace", resp.Profile.FullName)
	assert.Equal(t, models.UserRoleCreator, resp.Profile.Role)
	assert.True(t, strings.HasPrefix(resp.Profile.AvatarURL, testBaseURL+"/avatars/user-"+uid+"/"))
}

func TestProfileService_CompleteCreatorProfileValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	uid := h.addUser(t, "c@example.com", models.UserRoleCreator, "", "")

	_, err := h.profile.CompleteCreatorProfile(ctx, nil, uid, &dto.CreatorProfileRequest{FirstName: "Ada", LastName: "  "}, nil)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	_, err = h.profile.CompleteCreatorProfile(ctx, nil, uid, &dto.CreatorProfileRequest{FirstName: "Ada", LastName: "L", DateOfBirth: "10/12/1815"}, nil)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestProfileService_UpdateKeepsAvatar(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	uid := h.addUser(t, "c@example.com", models.UserRoleCreator, "Ada", "L")
	require.NoError(t, h.profiles.Update(nil, uid, map[string]interface{}{"avatar_url": "http://cdn.test/old.png"}))

	resp, err := h.profile.UpdateCreatorProfile(ctx, nil, uid, &dto.CreatorProfileRequest{FirstName: "Ada", LastName: "King", City: "London"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", resp.Profile.FullName)
	assert.Equal(t, "London", resp.Profile.City)
	assert.Equal(t, "http://cdn.test/old.png", resp.Profile.AvatarURL)

	resp, err = h.profile.UpdateCreatorProfile(ctx, nil, uid, &dto.CreatorProfileRequest{FirstName: "Ada", LastName: "King"}, fileHeader(t, "new.png", testPNG(t, 8, 8)))
	require.NoError(t, err)
	assert.NotEqual(t, "http://cdn.test/old.png", resp.Profile.AvatarURL)

	_, err = h.profile.UpdateCreatorProfile(ctx, nil, "missing", &dto.CreatorProfileRequest{FirstName: "A", LastName: "B"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestProfileService_CompleteBrandProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	uid := h.addUser(t, "b@example.com", models.UserRoleBrand, "", "")

	resp, err := h.profile.GetMyProfile(ctx, nil, uid)
	require.NoError(t, err)
	assert.False(t, resp.IsComplete)

	resp, err = h.profile.CompleteBrandProfile(ctx, nil, uid, &dto.BrandProfileRequest{CompanyName: "Acme", Website: "https://acme.test"})
	require.NoError(t, err)
	assert.True(t, resp.IsComplete)
	require.NotNil(t, resp.Brand)
	assert.Equal(t, "Acme", resp.Brand.CompanyName)
	assert.Equal(t, models.UserRoleBrand, resp.Profile.Role)

	_, err = h.profile.CompleteBrandProfile(ctx, nil, uid, &dto.BrandProfileRequest{CompanyName: "  "})
	require.Error(t, err)
}

func TestProfileService_GetPublicProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	uid := h.addUser(t, "c@example.com", models.UserRoleCreator, "Ada", "L")
	brand := h.addUser(t, "b@example.com", models.UserRoleBrand, "B", "R")
	h.addPost(t, uid, "public", models.PostStatusPublished)
	h.addPost(t, uid, "hidden", models.PostStatusDraft)

	resp, err := h.profile.GetPublicProfile(ctx, nil, uid)
	require.NoError(t, err)
	assert.Equal(t, "Ada", resp.FirstName)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "public", resp.Posts[0].Caption)

	_, err = h.profile.GetPublicProfile(ctx, nil, brand)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}
