package handlers

import (
	"net/http"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	mediaKindPost   = "post"
	mediaKindAvatar = "avatar"
)

type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
}

func NewMediaHandler(base *BaseHandler, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  base,
		mediaService: mediaService,
	}
}

func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	media := rg.Group("/media")
	media.Use(h.RequireAuth())
	{
		media.GET("/library", middleware.RequirePermission(auth.PermMediaLibrary), h.ListLibrary)
		media.POST("", middleware.RequirePermission(auth.PermMediaUpload), h.Upload)
	}
}

// ListLibrary godoc
// @Summary Media library
// @Description Every file the caller uploaded to the posts bucket, newest first
// @Tags media
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MediaLibraryResponse
// @Router /api/v1/media/library [get]
func (h *MediaHandler) ListLibrary(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.mediaService.ListLibrary(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Upload godoc
// @Summary Upload a file
// @Description kind=post stores into the posts bucket, kind=avatar into the avatars bucket
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image or video"
// @Param kind formData string false "post (default) or avatar"
// @Success 201 {object} dto.MediaObjectDTO
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UploadMediaRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	file, ok := h.FormFile(c, postFileFormField)
	if !ok {
		return
	}
	if file == nil {
		apperrors.HandleError(c, apperrors.ErrNoMediaSelected)
		return
	}

	ctx := c.Request.Context()
	var (
		object *dto.MediaObjectDTO
		err    error
	)
	if req.Kind == mediaKindAvatar {
		object, err = h.mediaService.UploadAvatar(ctx, userID, file)
	} else {
		object, err = h.mediaService.Upload(ctx, userID, file)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, object)
}
