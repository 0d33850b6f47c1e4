package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const publicProfilePostLimit = 50

type ProfileService interface {
	GetMyProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	// CompleteCreatorProfile is the first-time form; it creates or overwrites the profile
	CompleteCreatorProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatorProfileRequest, avatar *multipart.FileHeader) (*dto.ProfileResponse, error)
	// UpdateCreatorProfile edits an existing profile and keeps the avatar unless a new one is sent
	UpdateCreatorProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatorProfileRequest, avatar *multipart.FileHeader) (*dto.ProfileResponse, error)
	CompleteBrandProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.BrandProfileRequest) (*dto.ProfileResponse, error)
	GetPublicProfile(ctx context.Context, db *gorm.DB, creatorID string) (*dto.PublicProfileResponse, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	postRepo    repositories.PostRepository
	media       MediaService
	runInTx     TxRunner
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	postRepo repositories.PostRepository,
	media MediaService,
	runInTx TxRunner,
) ProfileService {
	if runInTx == nil {
		runInTx = GormTx
	}
	return &profileService{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		media:       media,
		runInTx:     runInTx,
	}
}

func (s *profileService) GetMyProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}

	var brand *models.Brand
	if profile.Role == models.UserRoleBrand {
		brand, err = s.profileRepo.FindBrandByID(db, userID)
		if err != nil && !errors.Is(err, repositories.ErrBrandNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}
	return buildProfileResponse(profile, brand), nil
}

func (s *profileService) CompleteCreatorProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatorProfileRequest, avatar *multipart.FileHeader) (*dto.ProfileResponse, error) {
	profile, err := creatorProfileFromRequest(userID, req)
	if err != nil {
		return nil, err
	}

	// the form always rewrites the avatar column, so keep the current one
	if current, err := s.profileRepo.FindByID(db, userID); err == nil {
		profile.AvatarURL = current.AvatarURL
	} else if !errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, apperrors.InternalError(err)
	}

	uploaded, err := s.uploadAvatar(ctx, userID, avatar)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		profile.AvatarURL = uploaded.URL
	}

	if err := s.profileRepo.Upsert(db, profile); err != nil {
		s.media.Remove(ctx, uploaded)
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Creator profile completed", "user_id", userID)
	return s.GetMyProfile(ctx, db, userID)
}

func (s *profileService) UpdateCreatorProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatorProfileRequest, avatar *multipart.FileHeader) (*dto.ProfileResponse, error) {
	profile, err := creatorProfileFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.findProfile(db, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"first_name":    profile.FirstName,
		"last_name":     profile.LastName,
		"full_name":     profile.FullName,
		"bio":           profile.Bio,
		"date_of_birth": profile.DateOfBirth,
		"email":         profile.Email,
		"phone":         profile.Phone,
		"country":       profile.Country,
		"city":          profile.City,
		"instagram_url": profile.InstagramURL,
		"linkedin_url":  profile.LinkedinURL,
		"portfolio_url": profile.PortfolioURL,
		"updated_at":    time.Now(),
	}

	uploaded, err := s.uploadAvatar(ctx, userID, avatar)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		fields["avatar_url"] = uploaded.URL
	}

	if err := s.profileRepo.Update(db, userID, fields); err != nil {
		s.media.Remove(ctx, uploaded)
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Creator profile updated", "user_id", userID, "new_avatar", uploaded != nil)
	return s.GetMyProfile(ctx, db, userID)
}

func (s *profileService) CompleteBrandProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.BrandProfileRequest) (*dto.ProfileResponse, error) {
	brand := &models.Brand{
		ID:          userID,
		CompanyName: strings.TrimSpace(req.CompanyName),
		Website:     strings.TrimSpace(req.Website),
	}
	if !brand.IsComplete() {
		return nil, apperrors.ValidationError(map[string]string{"company_name": "This field is required"})
	}

	err := s.runInTx(db, func(tx *gorm.DB) error {
		if err := s.profileRepo.UpsertBrand(tx, brand); err != nil {
			return err
		}
		return s.profileRepo.UpsertRole(tx, userID, models.UserRoleBrand)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Brand profile completed", "user_id", userID)
	return s.GetMyProfile(ctx, db, userID)
}

func (s *profileService) GetPublicProfile(ctx context.Context, db *gorm.DB, creatorID string) (*dto.PublicProfileResponse, error) {
	profile, err := s.findProfile(db, creatorID)
	if err != nil {
		return nil, err
	}
	if profile.Role != models.UserRoleCreator {
		return nil, apperrors.ErrProfileNotFound
	}

	posts, _, err := s.postRepo.FindByFilter(db, repositories.PostFilter{
		CreatorID: creatorID,
		Status:    models.PostStatusPublished,
		Sort:      repositories.SortNewest,
		PageSize:  publicProfilePostLimit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PublicProfileResponse{
		ID:           profile.ID,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		FullName:     profile.FullName,
		Bio:          profile.Bio,
		City:         profile.City,
		Country:      profile.Country,
		InstagramURL: profile.InstagramURL,
		PortfolioURL: profile.PortfolioURL,
		AvatarURL:    profile.AvatarURL,
		Posts:        dto.NewPostDTOs(posts),
	}, nil
}

func (s *profileService) findProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *profileService) uploadAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (*dto.MediaObjectDTO, error) {
	if avatar == nil {
		return nil, nil
	}
	return s.media.UploadAvatar(ctx, userID, avatar)
}

func creatorProfileFromRequest(userID string, req *dto.CreatorProfileRequest) (*models.Profile, error) {
	profile := &models.Profile{
		ID:           userID,
		Role:         models.UserRoleCreator,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		FullName:     models.ComposeFullName(req.FirstName, req.LastName),
		Bio:          strings.TrimSpace(req.Bio),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Country:      strings.TrimSpace(req.Country),
		City:         strings.TrimSpace(req.City),
		InstagramURL: strings.TrimSpace(req.InstagramURL),
		LinkedinURL:  strings.TrimSpace(req.LinkedinURL),
		PortfolioURL: strings.TrimSpace(req.PortfolioURL),
	}
	if !profile.IsComplete() {
		return nil, apperrors.ValidationError(map[string]string{
			"first_name": "This field is required",
			"last_name":  "This field is required",
		})
	}

	if dob := strings.TrimSpace(req.DateOfBirth); dob != "" {
		t, err := time.Parse("2006-01-02", dob)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"date_of_birth": "Must be a date in YYYY-MM-DD format"})
		}
		d := datatypes.Date(t)
		profile.DateOfBirth = &d
	}
	return profile, nil
}

func buildProfileResponse(profile *models.Profile, brand *models.Brand) *dto.ProfileResponse {
	complete := profile.IsComplete()
	if profile.Role == models.UserRoleBrand {
		complete = brand.IsComplete()
	}
	return &dto.ProfileResponse{
		Profile:    dto.NewProfileDTO(profile),
		Brand:      dto.NewBrandDTO(brand),
		IsComplete: complete,
	}
}
