package services

import (
	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/storage"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService      AuthService
	ProfileService   ProfileService
	PostService      PostService
	MediaService     MediaService
	DashboardService DashboardService
	ExploreService   ExploreService
	AdminService     AdminService

	Mailer    email.Sender
	Publisher events.Publisher
	Storage   storage.Storage
	Tokens    *auth.TokenManager
}
