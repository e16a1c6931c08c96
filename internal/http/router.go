package http

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/storefront/internal/auth"
	"github.com/mrlokans/storefront/internal/entities"
	"github.com/mrlokans/storefront/internal/i18n"
)

// TemplateFuncs are the helpers available to every page template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"t": func(lang entities.Language, key string) string {
			return i18n.T(lang, key)
		},
		"add": func(a, b int) int {
			return a + b
		},
		"last": func(i, n int) bool {
			return i == n-1
		},
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.Use(Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// Sessions load first so a CSRF failure can leave a flash message
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.SessionManager))
	}

	if cfg.ReadOnly != nil {
		router.Use(cfg.ReadOnly.Handler())
	}

	tmpl := template.Must(template.New("").Funcs(TemplateFuncs()).ParseGlob(filepath.Join(cfg.TemplatesPath, "*.html")))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// Storefront
	storefrontController := NewStorefrontController(cfg.Storefront, cfg.DefaultLanguage)
	router.GET("/", storefrontController.LandingPage)
	router.GET("/featured", storefrontController.FeaturedPage)
	router.GET("/api/homepage", storefrontController.GetHomepage)
	router.GET("/api/featured", storefrontController.GetFeatured)

	if cfg.CoverCache != nil && cfg.Books != nil {
		coversController := NewCoversController(cfg.CoverCache, cfg.Books)
		router.GET("/covers/:bookId", coversController.GetCover)
	}

	// Admin area
	if cfg.AuthService != nil && cfg.SessionManager != nil {
		adminGroup := router.Group("/admin")
		if cfg.AuthMiddleware != nil {
			adminGroup.Use(cfg.AuthMiddleware.RequireAdmin())
		}

		adminGroup.GET("", func(c *gin.Context) {
			c.Redirect(http.StatusFound, adminHomePath)
		})

		authController := NewAdminAuthController(cfg.AuthService, cfg.Admins, cfg.SessionManager, cfg.RateLimiter, cfg.Auditor)
		adminGroup.GET("/login", authController.LoginPage)
		adminGroup.POST("/login", authController.Login)
		adminGroup.POST("/logout", authController.Logout)

		homepageController := NewHomePageAdminController(cfg.Settings, cfg.Featured, cfg.Catalogue, cfg.EditorOptions, cfg.SessionManager, cfg.Auditor)
		adminGroup.GET("/homepage", homepageController.SettingsPage)
		adminGroup.POST("/homepage", homepageController.SaveSettings)
		adminGroup.POST("/homepage/featured", homepageController.AddFeatured)
		adminGroup.POST("/homepage/featured/:id/delete", homepageController.RemoveFeatured)
		adminGroup.POST("/homepage/featured/:id/up", homepageController.MoveFeaturedUp)
		adminGroup.POST("/homepage/featured/:id/down", homepageController.MoveFeaturedDown)

		if cfg.Auditor != nil {
			auditController := NewAuditController(cfg.Auditor, cfg.AuthService)
			adminGroup.GET("/audit", auditController.AuditLogPage)
			adminGroup.GET("/audit/events", auditController.GetAuditEvents)
		}
	}

	return router
}
