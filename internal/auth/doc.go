// Package auth is the identity service behind the admin screens.
//
// It owns email/password identities (bcrypt hashes in auth_identities), the
// scs session that marks a browser as signed in, flash messages carried across
// redirects, CSRF protection for admin forms and the middleware that keeps
// /admin/* behind an administrator session.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_MIN_PASSWORD_LENGTH=8          # Minimum password length on signup
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//	AUTH_OPEN_SIGNUP=false              # Allow signup after the first admin exists
//
// # Usage
//
//	authService := auth.NewService(identitiesRepo, adminsRepo, cfg.Auth)
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Database.Driver, cfg.Auth)
//	router.Use(sessions.SessionLoadSave())
//	admin := router.Group("/admin", auth.NewMiddleware(authService, sessions).RequireAdmin())
//
// Extract the signed-in administrator in handlers:
//
//	actorID := auth.GetActorID(c)
package auth
