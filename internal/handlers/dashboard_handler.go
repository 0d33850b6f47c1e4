package handlers

import (
	"context"
	"net/http"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      base,
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	dashboard.Use(h.RequireAuth())
	{
		dashboard.GET("/creator", middleware.RequirePermission(auth.PermDashCreator), h.CreatorDashboard)
		dashboard.GET("/brand", middleware.RequirePermission(auth.PermDashBrand), h.BrandDashboard)
	}
}

// CreatorDashboard godoc
// @Summary Creator dashboard
// @Description Unknown or empty sections fall back to overview
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param section query string false "overview, profile, notifications, missions, posts or stats"
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/dashboard/creator [get]
func (h *DashboardHandler) CreatorDashboard(c *gin.Context) {
	h.render(c, h.dashboardService.CreatorDashboard)
}

// BrandDashboard godoc
// @Summary Brand dashboard
// @Description Unknown or empty sections fall back to overview
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param section query string false "overview, profile, notifications or briefs"
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/dashboard/brand [get]
func (h *DashboardHandler) BrandDashboard(c *gin.Context) {
	h.render(c, h.dashboardService.BrandDashboard)
}

func (h *DashboardHandler) render(c *gin.Context, load func(ctx context.Context, db *gorm.DB, userID, section string) (*dto.DashboardResponse, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.DashboardQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := load(c.Request.Context(), h.GetDB(c), userID, query.Section)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
