package routes

import (
	"context"
	"net/http"
	"time"

	"creatorhub_backend/internal/handlers"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "creatorhub_backend/docs"
)

// Options toggles the operational endpoints.
type Options struct {
	MetricsEnabled bool
	MetricsPath    string
	Swagger        bool
	// HealthCheck pings the database; nil reports healthy.
	HealthCheck func(ctx context.Context) error
}

// RegisterRoutes mounts the HTML pages, the file server, the operational
// endpoints and the /api/v1 group.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	opts Options,
) {
	ginRouter.GET("/healthz", healthHandler(opts.HealthCheck))

	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		ginRouter.GET(path, gin.WrapH(metrics.Handler()))
		logger.Info("Metrics route registered", "path", path)
	}

	if opts.Swagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	appHandlers.PageHandler.RegisterRoutes(ginRouter)
	appHandlers.AuthHandler.RegisterPageRoutes(ginRouter)
	if appHandlers.FileHandler != nil {
		appHandlers.FileHandler.RegisterRoutes(ginRouter)
		logger.Info("Local file route /files registered")
	}

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ProfileHandler.RegisterRoutes(api)
		appHandlers.PostHandler.RegisterRoutes(api)
		appHandlers.MediaHandler.RegisterRoutes(api)
		appHandlers.DashboardHandler.RegisterRoutes(api)
		appHandlers.ExploreHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
	}
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				logger.CtxWithError(c.Request.Context(), "Health check failed", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
