package handlers

import (
	"net/http"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(h.RequireAuth(), middleware.RequirePermission(auth.PermUsersDelete))
	{
		admin.POST("/delete-user", h.DeleteUser)
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Removes the account, profile, brand, posts, sessions and stored media
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteUserRequest true "User to delete"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/delete-user [post]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// An unreadable body is treated like a missing userId.
	var req dto.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(c.Request.Context(), "Delete user body not parsed", "error", err.Error())
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), h.GetDB(c), actorID, req.UserID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: services.MessageUserDeleted})
}
