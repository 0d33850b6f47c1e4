package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/internal/validator"
	"creatorhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	tokens *auth.TokenManager
	base   *BaseHandler
	engine *gin.Engine
	api    *gin.RouterGroup
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tokens := auth.NewTokenManager("handler-secret", time.Minute)
	engine := gin.New()
	engine.Use(middleware.DBMiddleware(nil))
	return &testEnv{
		tokens: tokens,
		base:   NewBaseHandler(validator.New(), tokens),
		engine: engine,
		api:    engine.Group("/api/v1"),
	}
}

func (e *testEnv) bearer(t *testing.T, userID string, role models.UserRole) string {
	t.Helper()
	tok, err := e.tokens.GenerateToken(userID, string(role))
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(method, path, authHeader, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) json(method, path, authHeader, body string) *httptest.ResponseRecorder {
	return e.do(method, path, authHeader, "application/json", []byte(body))
}

// multipartBody builds a form with optional file part "file".
func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf.Bytes(), mw.FormDataContentType()
}

// Stubs embed the service interface; calling a method that is not
// overridden panics, which flags unexpected calls.

type stubAuthService struct {
	services.AuthService
	loginResp    *dto.LoginResponse
	err          error
	callbackUser string
	callbackDest string
	verifyToken  string
}

func (s *stubAuthService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.loginResp, s.err
}

func (s *stubAuthService) Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SignupResponse{Message: "confirmation email sent", UserID: "u1", Destination: string(auth.SignupDestination(models.UserRole(req.Role)))}, nil
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, db *gorm.DB, token string) error {
	s.verifyToken = token
	return s.err
}

func (s *stubAuthService) Callback(ctx context.Context, db *gorm.DB, userID string) *dto.CallbackResponse {
	s.callbackUser = userID
	if userID == "" {
		return &dto.CallbackResponse{Destination: string(auth.DestinationLogin)}
	}
	return &dto.CallbackResponse{Destination: s.callbackDest}
}

func (s *stubAuthService) Me(ctx context.Context, db *gorm.DB, userID string) (*dto.SessionDTO, error) {
	return &dto.SessionDTO{ID: userID, Email: "ada@example.com", Role: models.UserRoleCreator}, nil
}

func (s *stubAuthService) ParseAccessToken(token string) (*auth.Claims, error) {
	return auth.NewTokenManager("handler-secret", time.Minute).ParseToken(token)
}

type stubPostService struct {
	services.PostService
	err        error
	lastUser   string
	lastQuery  *dto.ListPostsQuery
	lastCreate *dto.CreatePostRequest
	lastFile   *multipart.FileHeader
	deleted    string
}

func (s *stubPostService) ListMyPosts(ctx context.Context, db *gorm.DB, userID string, query *dto.ListPostsQuery) (*dto.PostListResponse, error) {
	s.lastUser, s.lastQuery = userID, query
	return &dto.PostListResponse{Posts: []dto.PostDTO{}, Page: 1, PageSize: 20}, s.err
}

func (s *stubPostService) CreatePost(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePostRequest, file *multipart.FileHeader) (*dto.PostDTO, error) {
	s.lastUser, s.lastCreate, s.lastFile = userID, req, file
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PostDTO{ID: "p1", CreatorID: userID, Caption: req.Caption, Status: models.PostStatusDraft}, nil
}

func (s *stubPostService) DeletePost(ctx context.Context, db *gorm.DB, userID, postID string) error {
	s.lastUser, s.deleted = userID, postID
	return s.err
}

type stubDashboardService struct {
	services.DashboardService
	section string
}

func (s *stubDashboardService) CreatorDashboard(ctx context.Context, db *gorm.DB, userID, section string) (*dto.DashboardResponse, error) {
	s.section = section
	return &dto.DashboardResponse{Role: models.UserRoleCreator, Active: services.ResolveSection(services.CreatorSections, section)}, nil
}

func (s *stubDashboardService) BrandDashboard(ctx context.Context, db *gorm.DB, userID, section string) (*dto.DashboardResponse, error) {
	s.section = section
	return &dto.DashboardResponse{Role: models.UserRoleBrand, Active: services.ResolveSection(services.BrandSections, section)}, nil
}

type stubExploreService struct {
	resp  *dto.ExploreResponse
	err   error
	query string
}

func (s *stubExploreService) ListPublished(ctx context.Context, db *gorm.DB, query *dto.ExploreQuery) (*dto.ExploreResponse, error) {
	s.query = query.Search
	return s.resp, s.err
}

type stubAdminService struct {
	services.AdminService
	actor, target string
}

// DeleteUser mirrors the real input checks so the handler's error path is exercised.
func (s *stubAdminService) DeleteUser(ctx context.Context, db *gorm.DB, actorID, userID string) error {
	s.actor, s.target = actorID, userID
	if userID == "" {
		return apperrors.ErrMissingUserID
	}
	return nil
}
