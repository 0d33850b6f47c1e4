package handlers

import (
	"net/http"
	"time"

	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/internal/web"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the server-side HTML pages.
type PageHandler struct {
	*BaseHandler
	exploreService services.ExploreService
	now            func() time.Time
}

func NewPageHandler(base *BaseHandler, exploreService services.ExploreService) *PageHandler {
	return &PageHandler{
		BaseHandler:    base,
		exploreService: exploreService,
		now:            time.Now,
	}
}

func (h *PageHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Landing)
	r.GET("/explore", h.Explore)
}

func (h *PageHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, web.LandingTemplate, web.NewLandingPage(h.now()))
}

// Explore renders published posts; a failed lookup shows the empty state.
func (h *PageHandler) Explore(c *gin.Context) {
	query := dto.ExploreQuery{Search: c.Query("q")}

	resp, err := h.exploreService.ListPublished(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to load explore page", err)
		c.HTML(http.StatusInternalServerError, web.ExploreTemplate, web.NewExplorePage(query.Search, nil, h.now()))
		return
	}

	c.HTML(http.StatusOK, web.ExploreTemplate, web.NewExplorePage(query.Search, resp, h.now()))
}
