package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/storefront/internal/entities"
	"github.com/mrlokans/storefront/internal/i18n"
	"github.com/mrlokans/storefront/internal/storefront"
)

// StorefrontController serves the public pages.
type StorefrontController struct {
	service     *storefront.Service
	defaultLang entities.Language
}

// NewStorefrontController creates a new StorefrontController. An unsupported
// default language falls back to English.
func NewStorefrontController(service *storefront.Service, defaultLang string) *StorefrontController {
	lang, ok := entities.ParseLanguage(defaultLang)
	if !ok {
		lang = entities.LanguageEnglish
	}
	return &StorefrontController{service: service, defaultLang: lang}
}

// LandingPage renders the landing page.
// GET /
func (sc *StorefrontController) LandingPage(c *gin.Context) {
	lang := resolveLanguage(c, sc.defaultLang, true)
	landing := sc.service.Landing(c.Request.Context(), lang)

	data := baseTemplateData(c, i18n.T(lang, "landing.collection.title"))
	data["Lang"] = lang
	data["Languages"] = entities.SupportedLanguages
	data["Landing"] = landing
	c.HTML(http.StatusOK, "landing", data)
}

// FeaturedPage renders the featured books list, or 404 when the section is off.
// GET /featured
func (sc *StorefrontController) FeaturedPage(c *gin.Context) {
	lang := resolveLanguage(c, sc.defaultLang, true)

	page, err := sc.service.Featured(c.Request.Context(), lang)
	if errors.Is(err, storefront.ErrFeaturedHidden) {
		c.String(http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading featured books")
		return
	}

	data := baseTemplateData(c, page.Title)
	data["Lang"] = lang
	data["Languages"] = entities.SupportedLanguages
	data["Featured"] = page
	c.HTML(http.StatusOK, "featured", data)
}

// GetHomepage returns the landing view as JSON.
// GET /api/homepage
func (sc *StorefrontController) GetHomepage(c *gin.Context) {
	lang := resolveLanguage(c, sc.defaultLang, false)
	c.JSON(http.StatusOK, sc.service.Landing(c.Request.Context(), lang))
}

// GetFeatured returns the featured books as JSON.
// GET /api/featured
func (sc *StorefrontController) GetFeatured(c *gin.Context) {
	lang := resolveLanguage(c, sc.defaultLang, false)

	page, err := sc.service.Featured(c.Request.Context(), lang)
	if errors.Is(err, storefront.ErrFeaturedHidden) {
		respondNotFound(c, "featured books")
		return
	}
	if err != nil {
		respondInternalError(c, err, "load featured books")
		return
	}
	c.JSON(http.StatusOK, page)
}
