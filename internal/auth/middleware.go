package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Context keys for the signed-in administrator
const (
	ContextKeyActorID = "auth_actor_id"
	ContextKeyEmail   = "auth_email"
)

// LoginPath is the public admin sign-in screen.
const LoginPath = "/admin/login"

const notAdminMessage = "This account is not an administrator."

// Middleware guards the admin area.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	publicPaths    map[string]bool
}

// NewMiddleware creates the admin guard.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		publicPaths: map[string]bool{
			LoginPath:       true,
			"/admin/logout": true,
		},
	}
}

// RequireAdmin lets a request through only when its session belongs to an
// administrator. The login and logout paths stay public.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.publicPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		identityID := m.sessionManager.GetIdentityID(c.Request)
		if identityID == "" {
			m.deny(c)
			return
		}

		isAdmin, err := m.service.IsAdmin(c.Request.Context(), identityID)
		if err != nil {
			log.Error().Err(err).Str("identity_id", identityID).Msg("admin lookup failed")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if !isAdmin {
			m.sessionManager.PutFlash(c.Request.Context(), FlashError, notAdminMessage)
			m.deny(c)
			return
		}

		c.Set(ContextKeyActorID, identityID)
		c.Set(ContextKeyEmail, m.sessionManager.GetEmail(c.Request))
		c.Next()
	}
}

func (m *Middleware) deny(c *gin.Context) {
	if isAPIRequest(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "authentication required",
		})
		return
	}
	c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.Path))
	c.Abort()
}

// isAPIRequest determines if this is an API request vs web browser request.
func isAPIRequest(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// GetActorID retrieves the signed-in administrator's identity ID.
func GetActorID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyActorID); exists {
		if actorID, ok := id.(string); ok {
			return actorID
		}
	}
	return ""
}

// GetEmail retrieves the signed-in administrator's email.
func GetEmail(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyEmail); exists {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}
