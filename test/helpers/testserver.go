package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"creatorhub_backend/internal/app"
	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DatabaseURLEnv points the integration suite at a disposable database.
const DatabaseURLEnv = "TEST_DATABASE_URL"

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config
}

// NewTestServer starts the full router against TEST_DATABASE_URL, or skips
// the test when it is not set.
func NewTestServer(t testing.TB) *TestServer {
	t.Helper()

	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s is not set", DatabaseURLEnv)
	}

	gin.SetMode(gin.TestMode)
	logger.Init("test")

	cfg := config.Defaults()
	cfg.Server.Env = "test"
	cfg.Database.DSN = dsn
	cfg.JWT.Secret = "integration-secret"
	cfg.Storage.BasePath = t.TempDir()

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(app.Models()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	store, err := storage.NewLocalStorage(storage.Config{BasePath: cfg.Storage.BasePath, BaseURL: cfg.Storage.BaseURL})
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	mailer, err := email.NewSender(email.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create mailer: %v", err)
	}

	router, err := app.SetupRouter(cfg, db, app.NewServiceContainer(cfg, store, mailer, events.NoopPublisher{}))
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}

	return &TestServer{
		Server: httptest.NewServer(router),
		DB:     db,
		Config: cfg,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// ClearTables empties every application table.
func (ts *TestServer) ClearTables(t testing.TB) {
	t.Helper()
	err := ts.DB.Exec("TRUNCATE TABLE posts, brands, profiles, refresh_tokens, users RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// SendRequest sends a JSON request and returns the response with its body.
func (ts *TestServer) SendRequest(t testing.TB, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req, token)
}

// SendMultipart posts a multipart form body built by the caller.
func (ts *TestServer) SendMultipart(t testing.TB, method, path, token, contentType string, body []byte) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, ts.Server.URL+path, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	return ts.do(t, req, token)
}

func (ts *TestServer) do(t testing.TB, req *http.Request, token string) (*http.Response, string) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := ts.Server.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return res, string(resBody)
}
