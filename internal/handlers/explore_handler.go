package handlers

import (
	"net/http"

	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ExploreHandler struct {
	*BaseHandler
	exploreService services.ExploreService
}

func NewExploreHandler(base *BaseHandler, exploreService services.ExploreService) *ExploreHandler {
	return &ExploreHandler{
		BaseHandler:    base,
		exploreService: exploreService,
	}
}

func (h *ExploreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/explore", h.ListPublished)
}

// ListPublished godoc
// @Summary Published posts
// @Description Newest first, each with its creator's name and avatar
// @Tags explore
// @Produce json
// @Param q query string false "Search text"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.ExploreResponse
// @Router /api/v1/explore [get]
func (h *ExploreHandler) ListPublished(c *gin.Context) {
	var query dto.ExploreQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.exploreService.ListPublished(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
