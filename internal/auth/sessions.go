package auth

import (
	"context"
	"database/sql"
	"encoding/gob"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/entities"
)

// Session data keys
const (
	SessionKeyIdentityID = "identity_id"
	SessionKeyEmail      = "email"
	SessionKeyLoginAt    = "login_at"
	SessionKeyFlash      = "flash"
)

// FlashKind tells the template how to style a flash message.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    FlashKind
	Message string
}

func init() {
	// Register types that will be stored in sessions
	gob.Register(time.Time{})
	gob.Register(Flash{})
}

const sqliteSessionsSchema = `CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expiry REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`

const postgresSessionsSchema = `CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BYTEA NOT NULL,
	expiry TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry);`

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by the
// sessions table of the application database.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, driver string, cfg config.Auth) (*SessionManager, error) {
	sm := scs.New()

	switch driver {
	case config.DriverPostgres:
		if _, err := sqlDB.Exec(postgresSessionsSchema); err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		sm.Store = postgresstore.New(sqlDB)
	case config.DriverSQLite, "":
		if _, err := sqlDB.Exec(sqliteSessionsSchema); err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		sm.Store = sqlite3store.New(sqlDB)
	default:
		return nil, fmt.Errorf("unsupported session store driver %q", driver)
	}

	lifetime := cfg.SessionLifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "storefront_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession marks the request's session as signed in for identity.
// This should be called after password verification.
func (sm *SessionManager) CreateSession(r *http.Request, identity *entities.Identity) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	sm.Put(r.Context(), SessionKeyIdentityID, identity.ID)
	sm.Put(r.Context(), SessionKeyEmail, identity.Email)
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now())

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetIdentityID retrieves the signed-in identity ID, or "" when anonymous.
func (sm *SessionManager) GetIdentityID(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyIdentityID)
}

// GetEmail retrieves the signed-in email from the session.
func (sm *SessionManager) GetEmail(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyEmail)
}

// IsAuthenticated returns true if the request has a signed-in session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.GetIdentityID(r) != ""
}

// PutFlash stores a message for the next page render.
func (sm *SessionManager) PutFlash(ctx context.Context, kind FlashKind, message string) {
	sm.Put(ctx, SessionKeyFlash, Flash{Kind: kind, Message: message})
}

// PopFlash returns and clears the pending flash message, if any.
func (sm *SessionManager) PopFlash(ctx context.Context) *Flash {
	flash, ok := sm.Pop(ctx, SessionKeyFlash).(Flash)
	if !ok {
		return nil
	}
	return &flash
}
