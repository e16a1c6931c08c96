package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/auth"
	"github.com/mrlokans/storefront/internal/readonly"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Error().Err(err).Str("context", context).Str("path", c.Request.URL.Path).Msg("Internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// --- HTML Helpers ---

// redirectWithFlash stores a one-shot message and redirects (post/redirect/get).
func redirectWithFlash(c *gin.Context, sessions *auth.SessionManager, kind auth.FlashKind, message, location string) {
	if sessions != nil && message != "" {
		sessions.PutFlash(c.Request.Context(), kind, message)
	}
	c.Redirect(http.StatusFound, location)
}

// popFlash returns the pending flash message, if sessions are enabled.
func popFlash(c *gin.Context, sessions *auth.SessionManager) *auth.Flash {
	if sessions == nil {
		return nil
	}
	return sessions.PopFlash(c.Request.Context())
}

// baseTemplateData carries the values every page template expects.
func baseTemplateData(c *gin.Context, title string) gin.H {
	return gin.H{
		"Title":         title,
		"CSRFToken":     auth.GetCSRFToken(c),
		"CSRFFieldName": auth.CSRFFieldName,
		"ReadOnly":      readonly.IsReadOnly(c),
	}
}
