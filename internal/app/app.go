package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/handlers"
	"creatorhub_backend/internal/imageprocessor"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/metrics"
	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/routes"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/storage"
	"creatorhub_backend/internal/validator"
	"creatorhub_backend/internal/web"
	"creatorhub_backend/internal/workers"
	"creatorhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Run starts the HTTP server and background workers and blocks until SIGINT or SIGTERM.
func Run(cfg *config.Config) error {
	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := gormDB.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("Database schema auto-migrated")
	}

	storageInstance, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	mailer, err := email.NewSender(emailConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer publisher.Close()

	serviceContainer := NewServiceContainer(cfg, storageInstance, mailer, publisher)

	if err := serviceContainer.AdminService.SeedFirstAdmin(ctx, gormDB, cfg.FirstAdminEmail, cfg.FirstAdminPassword); err != nil {
		return fmt.Errorf("failed to seed first admin user: %w", err)
	}

	workers.NewTokenCleanupWorker(gormDB, repositories.NewRefreshTokenRepository(), time.Hour).Start(ctx)

	ginRouter, err := SetupRouter(cfg, gormDB, serviceContainer)
	if err != nil {
		return err
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server startup error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// OpenDatabase connects GORM with the configured dialector and pool limits.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	default:
		dialector = postgres.Open(cfg.Database.DSN)
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(cfg.Server.Env),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}

	logger.Info("Database connected")
	return gormDB, nil
}

// Models lists every table managed by AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.Brand{},
		&models.Post{},
	}
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	for _, bucket := range []string{cfg.Storage.PostsBucket, cfg.Storage.AvatarsBucket} {
		if err := storageInstance.EnsureBucket(ctx, bucket); err != nil {
			return nil, fmt.Errorf("failed to prepare bucket %s: %w", bucket, err)
		}
	}

	logger.Info("Storage initialized", "type", cfg.Storage.Type)
	return storageInstance, nil
}

func emailConfig(cfg *config.Config) email.Config {
	out := email.DefaultConfig()
	out.SMTPHost = cfg.Email.SMTPHost
	out.SMTPPort = cfg.Email.SMTPPort
	out.Username = cfg.Email.SMTPUsername
	out.Password = cfg.Email.SMTPPassword
	if cfg.Email.FromEmail != "" {
		out.FromEmail = cfg.Email.FromEmail
	}
	if cfg.Email.FromName != "" {
		out.FromName = cfg.Email.FromName
	}
	out.VerifyBaseURL = cfg.Server.PublicBaseURL
	return out
}

// SetupRouter builds the gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, serviceContainer *services.ServiceContainer) (*gin.Engine, error) {
	appHandlers := initializeHandlers(cfg, serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	ginRouter.SetHTMLTemplate(tmpl)

	routes.RegisterRoutes(ginRouter, appHandlers, routes.Options{
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		Swagger:        !cfg.IsProduction(),
		HealthCheck: func(ctx context.Context) error {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	return ginRouter, nil
}

// NewServiceContainer wires repositories and services.
func NewServiceContainer(cfg *config.Config, storageInstance storage.Storage, mailer email.Sender, publisher events.Publisher) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	profileRepo := repositories.NewProfileRepository()
	postRepo := repositories.NewPostRepository()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)
	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality, cfg.Upload.AvatarSize)

	mediaService := services.NewMediaService(storageInstance, processor, services.MediaConfig{
		PostsBucket:   cfg.Storage.PostsBucket,
		AvatarsBucket: cfg.Storage.AvatarsBucket,
		MaxSize:       cfg.Upload.MaxSize,
		AllowedTypes:  cfg.Upload.AllowedTypes,
	})
	authService := services.NewAuthService(userRepo, profileRepo, refreshTokenRepo, tokens, mailer,
		time.Duration(cfg.JWT.RefreshTTLHours)*time.Hour, services.GormTx)
	profileService := services.NewProfileService(profileRepo, postRepo, mediaService, services.GormTx)
	postService := services.NewPostService(postRepo, mediaService, publisher)
	dashboardService := services.NewDashboardService(userRepo, profileRepo, postService)
	exploreService := services.NewExploreService(postRepo)
	adminService := services.NewAdminService(userRepo, profileRepo, postRepo, refreshTokenRepo, mediaService, services.GormTx)

	return &services.ServiceContainer{
		AuthService:      authService,
		ProfileService:   profileService,
		PostService:      postService,
		MediaService:     mediaService,
		DashboardService: dashboardService,
		ExploreService:   exploreService,
		AdminService:     adminService,
		Mailer:           mailer,
		Publisher:        publisher,
		Storage:          storageInstance,
		Tokens:           tokens,
	}
}

func initializeHandlers(cfg *config.Config, sc *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New(), sc.Tokens)

	appHandlers := &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(baseHandler, sc.AuthService),
		ProfileHandler:   handlers.NewProfileHandler(baseHandler, sc.ProfileService),
		PostHandler:      handlers.NewPostHandler(baseHandler, sc.PostService),
		MediaHandler:     handlers.NewMediaHandler(baseHandler, sc.MediaService),
		DashboardHandler: handlers.NewDashboardHandler(baseHandler, sc.DashboardService),
		ExploreHandler:   handlers.NewExploreHandler(baseHandler, sc.ExploreService),
		AdminHandler:     handlers.NewAdminHandler(baseHandler, sc.AdminService),
		PageHandler:      handlers.NewPageHandler(baseHandler, sc.ExploreService),
	}
	if cfg.Storage.Type == "local" {
		appHandlers.FileHandler = handlers.NewFileHandler(baseHandler, sc.Storage, cfg.Storage.PostsBucket, cfg.Storage.AvatarsBucket)
	}
	return appHandlers
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	if cfg.Metrics.Enabled {
		router.Use(metrics.Middleware())
	}
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	router.MaxMultipartMemory = 32 << 20
	return router
}
