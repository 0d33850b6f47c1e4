package services

import (
	"context"
	"testing"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionKeys(sections []dto.SectionDTO) []string {
	keys := make([]string, 0, len(sections))
	for _, s := range sections {
		keys = append(keys, s.Key)
	}
	return keys
}

func TestSections(t *testing.T) {
	assert.Equal(t, []string{"overview", "profile", "notifications", "missions", "posts", "stats"}, sectionKeys(CreatorSections))
	assert.Equal(t, []string{"overview", "profile", "notifications", "briefs"}, sectionKeys(BrandSections))
}

func TestResolveSection(t *testing.T) {
	assert.Equal(t, "posts", ResolveSection(CreatorSections, "posts"))
	assert.Equal(t, "posts", ResolveSection(CreatorSections, " Posts "))
	assert.Equal(t, "overview", ResolveSection(CreatorSections, ""))
	assert.Equal(t, "overview", ResolveSection(CreatorSections, "briefs"))
	assert.Equal(t, "briefs", ResolveSection(BrandSections, "briefs"))
	assert.Equal(t, "overview", ResolveSection(BrandSections, "missions"))
}

func TestWelcome(t *testing.T) {
	assert.Equal(t, "Welcome, ada@example.com", CreatorWelcome("ada@example.com"))
	assert.Equal(t, "Welcome, Creator", CreatorWelcome(""))
	assert.Equal(t, "Welcome back, Ada", BrandWelcome("Ada"))
	assert.Equal(t, "Welcome back, Brand", BrandWelcome(" "))
}

func TestDashboardService_Creator(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	uid := h.addUser(t, "ada@example.com", models.UserRoleCreator, "Ada", "L")
	h.addPost(t, uid, "draft", models.PostStatusDraft)
	h.addPost(t, uid, "live", models.PostStatusPublished)

	resp, err := h.dashboard.CreatorDashboard(ctx, nil, uid, "unknown")
	require.NoError(t, err)
	assert.Equal(t, "overview", resp.Active)
	assert.Equal(t, "Welcome, ada@example.com", resp.Welcome)
	assert.Equal(t, "Ada", resp.Profile.FirstName)
	assert.Equal(t, dto.PlaceholderSection{Items: []interface{}{}}, resp.Data)

	resp, err = h.dashboard.CreatorDashboard(ctx, nil, uid, "posts")
	require.NoError(t, err)
	posts, ok := resp.Data.(*dto.PostListResponse)
	require.True(t, ok)
	assert.Len(t, posts.Posts, 2)

	resp, err = h.dashboard.CreatorDashboard(ctx, nil, uid, "profile")
	require.NoError(t, err)
	profile, ok := resp.Data.(dto.CreatorProfileSection)
	require.True(t, ok)
	require.Len(t, profile.Posts, 1)
	assert.Equal(t, "live", profile.Posts[0].Caption)
}

func TestDashboardService_Brand(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	uid := h.addUser(t, "b@example.com", models.UserRoleBrand, "", "")
	require.NoError(t, h.profiles.CreateBrand(nil, &models.Brand{ID: uid, CompanyName: "Acme"}))

	resp, err := h.dashboard.BrandDashboard(ctx, nil, uid, "profile")
	require.NoError(t, err)
	assert.Equal(t, "Welcome back, Brand", resp.Welcome)
	section, ok := resp.Data.(dto.BrandProfileSection)
	require.True(t, ok)
	require.NotNil(t, section.Brand)
	assert.Equal(t, "Acme", section.Brand.CompanyName)

	resp, err = h.dashboard.BrandDashboard(ctx, nil, uid, "briefs")
	require.NoError(t, err)
	assert.Equal(t, "briefs", resp.Active)
}

func TestDashboardService_WrongRole(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	creator := h.addUser(t, "c@example.com", models.UserRoleCreator, "C", "R")

	_, err := h.dashboard.BrandDashboard(ctx, nil, creator, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)

	_, err = h.dashboard.CreatorDashboard(ctx, nil, "missing", "")
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}
