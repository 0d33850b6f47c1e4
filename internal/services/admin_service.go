package services

import (
	"context"
	"errors"
	"strings"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const MessageUserDeleted = "User deleted successfully"

type AdminService interface {
	// DeleteUser removes the account, its rows and its stored media
	DeleteUser(ctx context.Context, db *gorm.DB, actorID, userID string) error
	// SeedFirstAdmin creates an active admin account when the email is unknown
	SeedFirstAdmin(ctx context.Context, db *gorm.DB, email, password string) error
}

type adminService struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	postRepo         repositories.PostRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	media            MediaService
	runInTx          TxRunner
}

func NewAdminService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	postRepo repositories.PostRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	media MediaService,
	runInTx TxRunner,
) AdminService {
	if runInTx == nil {
		runInTx = GormTx
	}
	return &adminService{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		postRepo:         postRepo,
		refreshTokenRepo: refreshTokenRepo,
		media:            media,
		runInTx:          runInTx,
	}
}

func (s *adminService) DeleteUser(ctx context.Context, db *gorm.DB, actorID, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return apperrors.ErrMissingUserID
	}
	if userID == actorID {
		return apperrors.ErrCannotDeleteSelf
	}

	var removedPosts int64
	err := s.runInTx(db, func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}

		n, err := s.postRepo.DeleteByCreator(tx, userID)
		if err != nil {
			return err
		}
		removedPosts = n

		if err := s.refreshTokenRepo.DeleteByUserID(tx, userID); err != nil {
			return err
		}
		if err := s.profileRepo.DeleteBrand(tx, userID); err != nil {
			return err
		}
		if err := s.profileRepo.Delete(tx, userID); err != nil {
			return err
		}
		return s.userRepo.Delete(tx, userID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.media.DeleteUserMedia(ctx, userID); err != nil {
		// rows are gone; leftover objects are only logged
		logger.CtxWithError(ctx, "User deleted but media cleanup failed", err, "user_id", userID)
	}

	logger.CtxInfo(ctx, "User deleted by admin", "user_id", userID, "actor_id", actorID, "posts", removedPosts)
	return nil
}

func (s *adminService) SeedFirstAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.userRepo.FindByEmail(db, email); err == nil {
		logger.CtxDebug(ctx, "First admin already exists", "email", email)
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	err = s.runInTx(db, func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		return s.profileRepo.Create(tx, &models.Profile{
			ID:       user.ID,
			Role:     models.UserRoleAdmin,
			FullName: "Administrator",
			Email:    email,
		})
	})
	if err != nil {
		return err
	}

	logger.CtxInfo(ctx, "First admin created", "email", email, "user_id", user.ID)
	return nil
}
