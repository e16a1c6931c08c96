// Package readonly freezes the storefront's stored state. With read-only
// mode on, only safe methods and the admin login flow reach the handlers.
package readonly

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ContextKeyReadOnly is set on every request so templates can show a banner.
const ContextKeyReadOnly = "read_only"

const blockedMessage = "This action is disabled in read-only mode"

// Middleware blocks write operations when enabled.
type Middleware struct {
	enabled bool
	allowed []string
}

// NewMiddleware creates a read-only middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{
		enabled: enabled,
		allowed: []string{"/admin/login", "/admin/logout"},
	}
}

// IsEnabled returns whether read-only mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)

		if !m.enabled || isSafeMethod(c.Request.Method) || m.isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Blocked write in read-only mode")
		m.respondBlocked(c)
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// isAllowedPath matches exact paths only, so /admin/login/anything stays blocked.
func (m *Middleware) isAllowedPath(path string) bool {
	path = strings.TrimSuffix(path, "/")
	for _, allowed := range m.allowed {
		if path == allowed {
			return true
		}
	}
	return false
}

func (m *Middleware) respondBlocked(c *gin.Context) {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     blockedMessage,
			"read_only": true,
		})
		return
	}

	c.String(http.StatusForbidden, blockedMessage)
	c.Abort()
}

// IsReadOnly reports the flag set by Handler.
func IsReadOnly(c *gin.Context) bool {
	return c.GetBool(ContextKeyReadOnly)
}
