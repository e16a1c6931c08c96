package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/storefront/internal/entities"
)

const (
	languageCookie       = "lang"
	languageCookieMaxAge = 365 * 24 * 60 * 60
)

// resolveLanguage picks the display language: a valid ?lang= wins (and is
// remembered in a cookie when remember is set), then the cookie, then fallback.
func resolveLanguage(c *gin.Context, fallback entities.Language, remember bool) entities.Language {
	if lang, ok := entities.ParseLanguage(c.Query("lang")); ok {
		if remember {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(languageCookie, string(lang), languageCookieMaxAge, "/", "", false, false)
		}
		return lang
	}

	if value, err := c.Cookie(languageCookie); err == nil {
		if lang, ok := entities.ParseLanguage(value); ok {
			return lang
		}
	}

	return fallback
}
