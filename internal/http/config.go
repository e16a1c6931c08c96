package http

import (
	"github.com/mrlokans/storefront/internal/admin"
	"github.com/mrlokans/storefront/internal/audit"
	"github.com/mrlokans/storefront/internal/auth"
	"github.com/mrlokans/storefront/internal/covers"
	"github.com/mrlokans/storefront/internal/readonly"
	"github.com/mrlokans/storefront/internal/storefront"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Stores
	Settings  admin.SettingsStore
	Featured  admin.FeaturedStore
	Catalogue admin.CatalogueStore
	Admins    admin.AdminStore
	Books     BookGetter
	Database  Pinger

	// Services
	Storefront *storefront.Service
	Auditor    *audit.Service

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	RateLimiter    *auth.RateLimiter
	CSRFSecret     []byte
	SecureCookies  bool

	// Featured reorder strategy
	EditorOptions admin.EditorOptions

	// Storefront language when neither ?lang= nor the cookie picks one
	DefaultLanguage string

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Cover caching (optional)
	CoverCache *covers.Cache

	// Read-only mode (optional)
	ReadOnly *readonly.Middleware

	// Application info
	Version string
}
