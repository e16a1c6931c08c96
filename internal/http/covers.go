package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/covers"
	"github.com/mrlokans/storefront/internal/database/catalogue"
	"github.com/mrlokans/storefront/internal/entities"
)

// BookGetter looks up a catalogue book.
type BookGetter interface {
	GetBook(ctx context.Context, id string) (*entities.Book, error)
}

// CoversController handles book cover requests.
type CoversController struct {
	cache *covers.Cache
	books BookGetter
}

// NewCoversController creates a new CoversController.
func NewCoversController(cache *covers.Cache, books BookGetter) *CoversController {
	return &CoversController{
		cache: cache,
		books: books,
	}
}

// GetCover serves a cached book cover image.
// GET /covers/:bookId
func (cc *CoversController) GetCover(c *gin.Context) {
	bookID := c.Param("bookId")

	book, err := cc.books.GetBook(c.Request.Context(), bookID)
	if errors.Is(err, catalogue.ErrBookNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("book_id", bookID).Msg("Error loading book for cover")
		c.Status(http.StatusInternalServerError)
		return
	}

	if book.CoverImageURL == "" {
		c.Status(http.StatusNotFound)
		return
	}

	cachePath, err := cc.cache.GetCover(c.Request.Context(), book.ID, book.CoverImageURL)
	if err != nil || cachePath == "" {
		log.Warn().Err(err).Str("book_id", book.ID).Msg("Cover cache miss, redirecting to source")
		c.Redirect(http.StatusTemporaryRedirect, book.CoverImageURL)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.File(cachePath)
}
