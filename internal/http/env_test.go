package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/storefront/internal/admin"
	"github.com/mrlokans/storefront/internal/audit"
	"github.com/mrlokans/storefront/internal/auth"
	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/database"
	"github.com/mrlokans/storefront/internal/database/admins"
	auditrepo "github.com/mrlokans/storefront/internal/database/audit"
	"github.com/mrlokans/storefront/internal/database/catalogue"
	"github.com/mrlokans/storefront/internal/database/featured"
	"github.com/mrlokans/storefront/internal/database/homepage"
	"github.com/mrlokans/storefront/internal/database/identities"
	"github.com/mrlokans/storefront/internal/entities"
	"github.com/mrlokans/storefront/internal/storefront"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testEmail    = "owner@example.com"
	testPassword = "password123"
)

type testEnv struct {
	db        *database.Database
	router    *gin.Engine
	settings  *homepage.Repository
	featured  *featured.Repository
	catalogue *catalogue.Repository
	admins    *admins.Repository
	auth      *auth.Service
	auditor   *audit.Service
	cookies   map[string]*http.Cookie
}

func setupTestEnv(t *testing.T, opts ...func(*RouterConfig)) *testEnv {
	t.Helper()

	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "http.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlDB, err := db.SQLDB()
	require.NoError(t, err)

	authCfg := config.Auth{
		BcryptCost:        bcrypt.MinCost,
		MinPasswordLength: 8,
		SessionLifetime:   time.Hour,
		MaxLoginAttempts:  3,
		RateLimitWindow:   time.Minute,
		LockoutDuration:   time.Minute,
	}
	sessions, err := auth.NewSessionManager(sqlDB, config.DriverSQLite, authCfg)
	require.NoError(t, err)

	env := &testEnv{
		db:        db,
		settings:  homepage.NewRepository(db.DB),
		featured:  featured.NewRepository(db.DB),
		catalogue: catalogue.NewRepository(db.DB),
		admins:    admins.NewRepository(db.DB),
		auditor:   audit.NewService(auditrepo.NewRepository(db.DB)),
		cookies:   make(map[string]*http.Cookie),
	}
	env.auth = auth.NewService(identities.NewRepository(db.DB), env.admins, authCfg)

	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfigFrom(authCfg))
	t.Cleanup(rateLimiter.Stop)

	cfg := RouterConfig{
		Settings:        env.settings,
		Featured:        env.featured,
		Catalogue:       env.catalogue,
		Admins:          env.admins,
		Books:           env.catalogue,
		Database:        db,
		Storefront:      storefront.NewService(env.settings, env.featured),
		Auditor:         env.auditor,
		AuthService:     env.auth,
		SessionManager:  sessions,
		AuthMiddleware:  auth.NewMiddleware(env.auth, sessions),
		RateLimiter:     rateLimiter,
		EditorOptions:   admin.EditorOptions{ReorderMode: config.ReorderModeConcurrent, ReorderConcurrency: 4},
		DefaultLanguage: "en",
		TemplatesPath:   "../../templates",
		StaticPath:      "../../static",
		Version:         "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	env.router = NewRouter(cfg)

	// Async audit writes must finish before the database closes.
	t.Cleanup(env.auditor.Wait)

	return env
}

// do sends a request carrying the cookies collected so far.
func (e *testEnv) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range e.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(e.cookies, cookie.Name)
			continue
		}
		e.cookies[cookie.Name] = cookie
	}
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, nil)
}

func (e *testEnv) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return e.do(http.MethodPost, path, form)
}

// signUpAdmin creates the first administrator through the login screen,
// leaving the client signed in.
func (e *testEnv) signUpAdmin(t *testing.T) {
	t.Helper()
	w := e.post("/admin/login", url.Values{
		"mode":     {"signup"},
		"email":    {testEmail},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(t, adminHomePath, w.Header().Get("Location"))
}

func (e *testEnv) seedSettings(t *testing.T, mutate func(*entities.HomePageSettings)) *entities.HomePageSettings {
	t.Helper()
	ctx := context.Background()
	_, err := e.settings.EnsureHomePageSettings(ctx, entities.DefaultHomePageSettings())
	require.NoError(t, err)

	settings, err := e.settings.GetHomePageSettings(ctx)
	require.NoError(t, err)
	if mutate != nil {
		mutate(settings)
		require.NoError(t, e.settings.UpdateHomePageSettings(ctx, settings))
	}
	return settings
}

func (e *testEnv) seedBooks(t *testing.T, books ...entities.Book) {
	t.Helper()
	require.NoError(t, e.catalogue.UpsertBooks(context.Background(), books))
}

func (e *testEnv) featuredBookIDs(t *testing.T) []string {
	t.Helper()
	rows, err := e.featured.ListFeatured(context.Background())
	require.NoError(t, err)
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.BookID
	}
	return ids
}
