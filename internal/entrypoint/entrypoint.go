package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/admin"
	"github.com/mrlokans/storefront/internal/audit"
	"github.com/mrlokans/storefront/internal/auth"
	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/covers"
	"github.com/mrlokans/storefront/internal/database"
	"github.com/mrlokans/storefront/internal/database/admins"
	auditrepo "github.com/mrlokans/storefront/internal/database/audit"
	"github.com/mrlokans/storefront/internal/database/catalogue"
	"github.com/mrlokans/storefront/internal/database/featured"
	"github.com/mrlokans/storefront/internal/database/homepage"
	"github.com/mrlokans/storefront/internal/database/identities"
	http_controllers "github.com/mrlokans/storefront/internal/http"
	"github.com/mrlokans/storefront/internal/logging"
	"github.com/mrlokans/storefront/internal/readonly"
	"github.com/mrlokans/storefront/internal/scheduler"
	"github.com/mrlokans/storefront/internal/storefront"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the database and the repositories built on it. Both the server
// and the maintenance commands start from here.
type App struct {
	Config     *config.Config
	DB         *database.Database
	Settings   *homepage.Repository
	Featured   *featured.Repository
	Catalogue  *catalogue.Repository
	Admins     *admins.Repository
	Identities *identities.Repository
}

// NewApp configures logging and opens the database.
func NewApp(cfg *config.Config) (*App, error) {
	logging.Init(cfg.Log)

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &App{
		Config:     cfg,
		DB:         db,
		Settings:   homepage.NewRepository(db.DB),
		Featured:   featured.NewRepository(db.DB),
		Catalogue:  catalogue.NewRepository(db.DB),
		Admins:     admins.NewRepository(db.DB),
		Identities: identities.NewRepository(db.DB),
	}, nil
}

// Close releases the database connection.
func (a *App) Close() {
	if err := a.DB.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing database")
	}
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", timeout).Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().Msg("Server exiting")
	return nil
}

// Run wires every service and serves the storefront.
func Run(cfg *config.Config, version string) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	log.Info().Str("version", version).Msg("Starting Storefront")

	sqlDB, err := app.DB.SQLDB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, app.DB.Driver, cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize session manager: %w", err)
	}

	authService := auth.NewService(app.Identities, app.Admins, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService, sessionManager)

	csrfSecret, err := csrfSecretFrom(cfg.Auth.SessionSecret)
	if err != nil {
		return err
	}

	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfigFrom(cfg.Auth))
	defer rateLimiter.Stop()

	auditor := audit.NewService(auditrepo.NewRepository(app.DB.DB))

	retention := scheduler.NewAuditRetentionScheduler(auditor, cfg.Audit)
	if err := retention.Start(); err != nil {
		return fmt.Errorf("failed to start audit retention: %w", err)
	}

	coverCache, err := covers.NewCache(cfg.Covers.Dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.Covers.Dir).Msg("Failed to initialize cover cache")
	} else {
		log.Info().Str("dir", coverCache.CacheDir()).Msg("Cover cache initialized")
	}

	var readOnly *readonly.Middleware
	if cfg.ReadOnly.Enabled {
		log.Info().Msg("Read-only mode enabled - write operations will be blocked")
		readOnly = readonly.NewMiddleware(true)
	}

	if count, err := app.Admins.CountAdmins(context.Background()); err == nil && count == 0 {
		log.Info().Str("path", auth.LoginPath).Msg("No administrators found. Visit the login screen to create one.")
	}

	var checker *scheduler.FeaturedCheckScheduler
	if cfg.Featured.CheckEnabled {
		checker = scheduler.NewFeaturedCheckScheduler(app.Featured, cfg.Featured)
		if err := checker.Start(context.Background()); err != nil {
			return fmt.Errorf("failed to start featured check: %w", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Settings:       app.Settings,
		Featured:       app.Featured,
		Catalogue:      app.Catalogue,
		Admins:         app.Admins,
		Books:          app.Catalogue,
		Database:       app.DB,
		Storefront:     storefront.NewService(app.Settings, app.Featured),
		Auditor:        auditor,
		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		EditorOptions: admin.EditorOptions{
			ReorderMode:        cfg.Featured.ReorderMode,
			ReorderConcurrency: cfg.Featured.ReorderConcurrency,
		},
		DefaultLanguage: cfg.Storefront.DefaultLanguage,
		TemplatesPath:   cfg.UI.TemplatesPath,
		StaticPath:      cfg.UI.StaticPath,
		CoverCache:      coverCache,
		ReadOnly:        readOnly,
		Version:         version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if checker != nil {
			checker.Stop()
		}
		retention.Stop()
		auditor.Wait()
	}

	return Serve(router, cfg, onShutdown)
}

// csrfSecretFrom derives the CSRF key from the session secret, generating a
// random one when none is configured.
func csrfSecretFrom(sessionSecret string) ([]byte, error) {
	if sessionSecret != "" {
		secret, err := hex.DecodeString(sessionSecret)
		if err != nil {
			// Not hex, use as raw bytes
			return []byte(sessionSecret), nil
		}
		return secret, nil
	}

	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
	}
	log.Warn().Msg("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	return hex.DecodeString(secret)
}
