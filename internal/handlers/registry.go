package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	ProfileHandler   *ProfileHandler
	PostHandler      *PostHandler
	MediaHandler     *MediaHandler
	DashboardHandler *DashboardHandler
	ExploreHandler   *ExploreHandler
	AdminHandler     *AdminHandler
	PageHandler      *PageHandler
	// FileHandler is nil unless objects live on local disk.
	FileHandler *FileHandler
}
