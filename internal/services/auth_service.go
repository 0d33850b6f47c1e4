package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/metrics"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	MessageConfirmationSent = "confirmation email sent"
	NoticeUnknownRole       = "Unknown user role"
)

type AuthService interface {
	Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error)
	VerifyEmail(ctx context.Context, db *gorm.DB, token string) error
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, db *gorm.DB, refreshToken string) error
	// Callback decides where a returning user lands; an empty userID means no session
	Callback(ctx context.Context, db *gorm.DB, userID string) *dto.CallbackResponse
	Me(ctx context.Context, db *gorm.DB, userID string) (*dto.SessionDTO, error)
	ParseAccessToken(token string) (*auth.Claims, error)
}

type authService struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	tokens           *auth.TokenManager
	mailer           email.Sender
	refreshTTL       time.Duration
	runInTx          TxRunner
	now              Clock
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	tokens *auth.TokenManager,
	mailer email.Sender,
	refreshTTL time.Duration,
	runInTx TxRunner,
) AuthService {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	if runInTx == nil {
		runInTx = GormTx
	}
	return &authService{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		mailer:           mailer,
		refreshTTL:       refreshTTL,
		runInTx:          runInTx,
		now:              time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.UserRoleCreator
	}
	if role != models.UserRoleCreator && role != models.UserRoleBrand {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	verificationToken, err := generateRandomToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:      hash,
		Status:            models.UserStatusPending,
		IsVerified:        false,
		VerificationToken: verificationToken,
	}

	err = s.runInTx(db, func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}

		profile := &models.Profile{
			ID:       user.ID,
			Role:     role,
			FullName: strings.TrimSpace(req.FullName),
			Email:    user.Email,
		}
		if err := s.profileRepo.Create(tx, profile); err != nil {
			return err
		}

		if role == models.UserRoleBrand {
			return s.profileRepo.CreateBrand(tx, &models.Brand{
				ID:          user.ID,
				CompanyName: strings.TrimSpace(req.BrandName),
			})
		}
		return nil
	})
	metrics.RecordAuth("signup", err)
	if err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.mailer.SendVerification(ctx, user.Email, req.FullName, string(role), verificationToken); err != nil {
		// the account is kept either way
		logger.CtxWithError(ctx, "Failed to send confirmation email", err, "user_id", user.ID)
	}

	logger.CtxInfo(ctx, "User signed up", "user_id", user.ID, "role", role)
	return &dto.SignupResponse{
		Message:     MessageConfirmationSent,
		UserID:      user.ID,
		Destination: string(auth.SignupDestination(role)),
	}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.Verify(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "Email verified", "user_id", user.ID)
	return nil
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	resp, err := s.login(ctx, db, req)
	metrics.RecordAuth("login", err)
	return resp, err
}

func (s *authService) login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := checkUserStatus(user); err != nil {
		return nil, err
	}

	profile, err := s.loadProfile(db, user.ID)
	if err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(db, user, profile.Role)
	if err != nil {
		return nil, err
	}

	if dest, ok := auth.LoginDestination(profile.Role); ok {
		resp.Destination = string(dest)
	} else {
		resp.Notice = NoticeUnknownRole
		logger.CtxWarn(ctx, "Login with a role that has no dashboard", "user_id", user.ID, "role", profile.Role)
	}

	logger.CtxInfo(ctx, "User logged in", "user_id", user.ID, "role", profile.Role)
	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	resp, err := s.refresh(ctx, db, refreshToken)
	metrics.RecordAuth("refresh", err)
	return resp, err
}

func (s *authService) refresh(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	token, err := s.refreshTokenRepo.FindByToken(db, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if s.now().After(token.ExpiresAt) {
		_ = s.refreshTokenRepo.DeleteByToken(db, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if err := checkUserStatus(user); err != nil {
		return nil, err
	}

	profile, err := s.loadProfile(db, user.ID)
	if err != nil {
		return nil, err
	}

	// rotation: the presented token is single use
	if err := s.refreshTokenRepo.DeleteByToken(db, refreshToken); err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	resp, err := s.issueTokens(db, user, profile.Role)
	if err != nil {
		return nil, err
	}
	if dest, ok := auth.LoginDestination(profile.Role); ok {
		resp.Destination = string(dest)
	}
	logger.CtxDebug(ctx, "Refresh token rotated", "user_id", user.ID)
	return resp, nil
}

func (s *authService) Logout(ctx context.Context, db *gorm.DB, refreshToken string) error {
	err := s.refreshTokenRepo.DeleteByToken(db, refreshToken)
	if err != nil && !errors.Is(err, repositories.ErrRefreshTokenNotFound) {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "User logged out")
	return nil
}

func (s *authService) Callback(ctx context.Context, db *gorm.DB, userID string) *dto.CallbackResponse {
	if userID == "" {
		return &dto.CallbackResponse{Destination: string(auth.CallbackDestination(false, nil, nil, nil))}
	}

	profile, err := s.profileRepo.FindByID(db, userID)
	if err != nil {
		logger.CtxWarn(ctx, "Callback profile lookup failed", "user_id", userID, "error", err.Error())
		return &dto.CallbackResponse{Destination: string(auth.CallbackDestination(true, nil, nil, err))}
	}

	var brand *models.Brand
	if profile.Role == models.UserRoleBrand {
		brand, err = s.profileRepo.FindBrandByID(db, userID)
		if err != nil && !errors.Is(err, repositories.ErrBrandNotFound) {
			logger.CtxWarn(ctx, "Callback brand lookup failed", "user_id", userID, "error", err.Error())
			return &dto.CallbackResponse{Destination: string(auth.CallbackDestination(true, nil, nil, err))}
		}
	}

	return &dto.CallbackResponse{Destination: string(auth.CallbackDestination(true, profile, brand, nil))}
}

func (s *authService) Me(ctx context.Context, db *gorm.DB, userID string) (*dto.SessionDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("User not authenticated")
		}
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.loadProfile(db, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionDTO{ID: user.ID, Email: user.Email, Role: profile.Role}, nil
}

func (s *authService) ParseAccessToken(token string) (*auth.Claims, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) loadProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *authService) issueTokens(db *gorm.DB, user *models.User, role models.UserRole) (*dto.LoginResponse, error) {
	accessToken, err := s.tokens.GenerateToken(user.ID, string(role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh, err := generateRandomToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.refreshTokenRepo.Create(db, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: s.now().Add(s.refreshTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.TTL().Seconds()),
		User:         dto.NewUserDTO(user, role),
	}, nil
}

func checkUserStatus(user *models.User) error {
	if user.Status == models.UserStatusSuspended {
		return apperrors.ErrUserSuspended
	}
	if !user.IsVerified {
		return apperrors.ErrUserNotVerified
	}
	return nil
}
