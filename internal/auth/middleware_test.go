package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/database/admins"
	"github.com/mrlokans/storefront/internal/database/identities"
	"github.com/mrlokans/storefront/internal/entities"
)

type middlewareFixture struct {
	router   *gin.Engine
	service  *Service
	sessions *SessionManager
	admins   *admins.Repository
}

func setupMiddleware(t *testing.T) *middlewareFixture {
	t.Helper()
	db := setupTestDB(t)

	sqlDB, err := db.SQLDB()
	require.NoError(t, err)
	cfg := config.Auth{BcryptCost: bcrypt.MinCost, SessionLifetime: time.Hour}
	sm, err := NewSessionManager(sqlDB, config.DriverSQLite, cfg)
	require.NoError(t, err)

	adminRepo := admins.NewRepository(db.DB)
	svc := NewService(identities.NewRepository(db.DB), adminRepo, cfg)

	router := gin.New()
	router.Use(sm.SessionLoadSave())
	router.POST("/test-login", func(c *gin.Context) {
		identity, err := svc.Authenticate(c.Request.Context(), c.PostForm("email"), c.PostForm("password"))
		if err != nil {
			c.Status(http.StatusUnauthorized)
			return
		}
		_ = sm.CreateSession(c.Request, identity)
		c.Status(http.StatusNoContent)
	})

	group := router.Group("/admin", NewMiddleware(svc, sm).RequireAdmin())
	group.GET("/login", func(c *gin.Context) { c.String(http.StatusOK, "login") })
	group.GET("/homepage", func(c *gin.Context) {
		c.String(http.StatusOK, "actor="+GetActorID(c)+" email="+GetEmail(c))
	})

	return &middlewareFixture{router: router, service: svc, sessions: sm, admins: adminRepo}
}

func (f *middlewareFixture) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/test-login", nil)
	req.PostForm = map[string][]string{"email": {email}, "password": {password}}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	cookie := sessionCookie(t, f.sessions, w)
	require.NotNil(t, cookie)
	return cookie
}

func TestMiddleware_LoginPathIsPublic(t *testing.T) {
	f := setupMiddleware(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "login", w.Body.String())
}

func TestMiddleware_AnonymousRedirectsToLogin(t *testing.T) {
	f := setupMiddleware(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/homepage", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Fhomepage", w.Header().Get("Location"))
}

func TestMiddleware_AnonymousJSONGets401(t *testing.T) {
	f := setupMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/homepage", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_NonAdminIdentityIsRejected(t *testing.T) {
	f := setupMiddleware(t)
	_, err := f.service.SignUp(context.Background(), "reader@example.com", "password123")
	require.NoError(t, err)

	cookie := f.login(t, "reader@example.com", "password123")

	req := httptest.NewRequest(http.MethodGet, "/admin/homepage", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestMiddleware_AdminPassesWithContext(t *testing.T) {
	f := setupMiddleware(t)
	ctx := context.Background()
	identity, err := f.service.SignUp(ctx, "owner@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, f.admins.InsertAdmin(ctx, &entities.AdminUser{ID: identity.ID, Email: identity.Email}))

	cookie := f.login(t, "owner@example.com", "password123")

	req := httptest.NewRequest(http.MethodGet, "/admin/homepage", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "actor="+identity.ID+" email=owner@example.com", w.Body.String())
}

func TestGetActorID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetActorID(c))
	assert.Equal(t, "", GetEmail(c))
}
