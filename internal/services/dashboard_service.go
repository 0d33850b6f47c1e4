package services

import (
	"context"
	"errors"
	"strings"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	SectionOverview      = "overview"
	SectionProfile       = "profile"
	SectionNotifications = "notifications"
	SectionMissions      = "missions"
	SectionPosts         = "posts"
	SectionStats         = "stats"
	SectionBriefs        = "briefs"

	dashboardPostLimit = 50
)

var (
	CreatorSections = []dto.SectionDTO{
		{Key: SectionOverview, Label: "Overview"},
		{Key: SectionProfile, Label: "Profile"},
		{Key: SectionNotifications, Label: "Notifications"},
		{Key: SectionMissions, Label: "Missions"},
		{Key: SectionPosts, Label: "Posts"},
		{Key: SectionStats, Label: "Stats"},
	}

	BrandSections = []dto.SectionDTO{
		{Key: SectionOverview, Label: "Overview"},
		{Key: SectionProfile, Label: "Profile"},
		{Key: SectionNotifications, Label: "Notifications"},
		{Key: SectionBriefs, Label: "Briefs"},
	}
)

// ResolveSection seeds the active tab from the query; unknown keys fall back to overview.
func ResolveSection(sections []dto.SectionDTO, requested string) string {
	requested = strings.ToLower(strings.TrimSpace(requested))
	for _, s := range sections {
		if s.Key == requested {
			return requested
		}
	}
	return SectionOverview
}

func CreatorWelcome(email string) string {
	if email == "" {
		email = "Creator"
	}
	return "Welcome, " + email
}

func BrandWelcome(firstName string) string {
	if strings.TrimSpace(firstName) == "" {
		firstName = "Brand"
	}
	return "Welcome back, " + firstName
}

type DashboardService interface {
	CreatorDashboard(ctx context.Context, db *gorm.DB, userID, section string) (*dto.DashboardResponse, error)
	BrandDashboard(ctx context.Context, db *gorm.DB, userID, section string) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	posts       PostService
}

func NewDashboardService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, posts PostService) DashboardService {
	return &dashboardService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		posts:       posts,
	}
}

func (s *dashboardService) CreatorDashboard(ctx context.Context, db *gorm.DB, userID, section string) (*dto.DashboardResponse, error) {
	profile, err := s.loadProfile(db, userID, models.UserRoleCreator)
	if err != nil {
		return nil, err
	}

	email := profile.Email
	if user, err := s.userRepo.FindByID(db, userID); err == nil {
		email = user.Email
	}

	resp := &dto.DashboardResponse{
		Role:     models.UserRoleCreator,
		Welcome:  CreatorWelcome(email),
		Sections: CreatorSections,
		Active:   ResolveSection(CreatorSections, section),
		Profile:  dto.NewProfileCard(profile),
	}

	switch resp.Active {
	case SectionPosts:
		resp.Data, err = s.posts.ListMyPosts(ctx, db, userID, &dto.ListPostsQuery{})
	case SectionProfile:
		var published []dto.PostDTO
		published, err = s.posts.ListPublishedByCreator(ctx, db, userID, dashboardPostLimit)
		resp.Data = dto.CreatorProfileSection{Profile: dto.NewProfileDTO(profile), Posts: published}
	default:
		resp.Data = dto.PlaceholderSection{Items: []interface{}{}}
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *dashboardService) BrandDashboard(ctx context.Context, db *gorm.DB, userID, section string) (*dto.DashboardResponse, error) {
	profile, err := s.loadProfile(db, userID, models.UserRoleBrand)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Role:     models.UserRoleBrand,
		Welcome:  BrandWelcome(profile.FirstName),
		Sections: BrandSections,
		Active:   ResolveSection(BrandSections, section),
		Profile:  dto.NewProfileCard(profile),
	}

	switch resp.Active {
	case SectionProfile:
		brand, err := s.profileRepo.FindBrandByID(db, userID)
		if err != nil && !errors.Is(err, repositories.ErrBrandNotFound) {
			return nil, apperrors.InternalError(err)
		}
		resp.Data = dto.BrandProfileSection{Profile: dto.NewProfileDTO(profile), Brand: dto.NewBrandDTO(brand)}
	default:
		resp.Data = dto.PlaceholderSection{Items: []interface{}{}}
	}
	return resp, nil
}

func (s *dashboardService) loadProfile(db *gorm.DB, userID string, role models.UserRole) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if profile.Role != role {
		return nil, apperrors.ErrInvalidUserRole
	}
	return profile, nil
}
