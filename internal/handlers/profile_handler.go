package handlers

import (
	"context"
	"mime/multipart"
	"net/http"

	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const avatarFormField = "avatar"

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	profile.Use(h.RequireAuth())
	{
		profile.GET("", h.GetMyProfile)

		creator := profile.Group("/creator")
		creator.Use(middleware.RoleMiddleware(models.UserRoleCreator))
		{
			creator.PUT("", h.CompleteCreatorProfile)
			creator.PATCH("", h.UpdateCreatorProfile)
		}

		profile.PUT("/brand", middleware.RoleMiddleware(models.UserRoleBrand), h.CompleteBrandProfile)
	}

	rg.GET("/creators/:id", h.GetPublicProfile)
}

// GetMyProfile godoc
// @Summary Caller's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.profileService.GetMyProfile(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CompleteCreatorProfile godoc
// @Summary Fill in the creator profile
// @Description Creates or overwrites the profile; an optional avatar file is stored in the avatars bucket
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param avatar formData file false "Profile picture"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/profile/creator [put]
func (h *ProfileHandler) CompleteCreatorProfile(c *gin.Context) {
	h.saveCreatorProfile(c, h.profileService.CompleteCreatorProfile)
}

// UpdateCreatorProfile godoc
// @Summary Edit the creator profile
// @Description The stored avatar is kept unless a new file is sent
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param avatar formData file false "Profile picture"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/profile/creator [patch]
func (h *ProfileHandler) UpdateCreatorProfile(c *gin.Context) {
	h.saveCreatorProfile(c, h.profileService.UpdateCreatorProfile)
}

type creatorProfileSaver func(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatorProfileRequest, avatar *multipart.FileHeader) (*dto.ProfileResponse, error)

func (h *ProfileHandler) saveCreatorProfile(c *gin.Context, save creatorProfileSaver) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatorProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	avatar, ok := h.FormFile(c, avatarFormField)
	if !ok {
		return
	}

	resp, err := save(c.Request.Context(), h.GetDB(c), userID, &req, avatar)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CompleteBrandProfile godoc
// @Summary Fill in the brand profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BrandProfileRequest true "Company details"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/profile/brand [put]
func (h *ProfileHandler) CompleteBrandProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BrandProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.profileService.CompleteBrandProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPublicProfile godoc
// @Summary Public creator card
// @Tags profile
// @Produce json
// @Param id path string true "Creator ID"
// @Success 200 {object} dto.PublicProfileResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/creators/{id} [get]
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	resp, err := h.profileService.GetPublicProfile(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
