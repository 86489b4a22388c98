package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"forumapi/internal/config"
	"forumapi/internal/database"
	"forumapi/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func testConfig() *config.Config {
	return &config.Config{
		Port:                  "0",
		Env:                   "test",
		AllowedOrigins:        "http://localhost:3000",
		JWTSecret:             testSecret,
		JWTIssuer:             "forum-api",
		JWTAudience:           "forum-client",
		DetailCacheTTLSeconds: 30,
	}
}

type testEnv struct {
	server *Server
	app    *fiber.App
	db     *gorm.DB
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	cfg := testConfig()
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	return &testEnv{server: s, app: s.App(), db: db, cfg: cfg}
}

// addUser provisions a user and returns its id and a bearer token.
func (e *testEnv) addUser(t *testing.T, username string) (string, string) {
	t.Helper()
	user, err := repository.NewUserRepository(e.db, repository.NewUUIDGenerator()).
		AddUser(context.Background(), username, username)
	require.NoError(t, err)

	token, err := IssueToken(e.cfg, user.ID, time.Hour)
	require.NoError(t, err)
	return user.ID, token
}

type apiResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

// field walks nested maps and slices of a decoded JSON document.
func field(t *testing.T, v any, path ...any) any {
	t.Helper()
	for _, p := range path {
		switch key := p.(type) {
		case string:
			m, ok := v.(map[string]any)
			require.True(t, ok, "expected object at %v", key)
			v = m[key]
		case int:
			s, ok := v.([]any)
			require.True(t, ok, "expected array at %d", key)
			require.Greater(t, len(s), key)
			v = s[key]
		}
	}
	return v
}
