package storefront

import (
	"github.com/mrlokans/storefront/internal/entities"
)

// FeaturedEntry is one book on the public featured page.
type FeaturedEntry struct {
	BookID        string `json:"book_id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	DisplayOrder  int    `json:"display_order"`
}

// FeaturedPage is the rendered state of the featured books page.
type FeaturedPage struct {
	Language entities.Language `json:"language"`
	Title    string            `json:"title"`
	Limit    int               `json:"limit"`
	Books    []FeaturedEntry   `json:"books"`
}

// BuildFeatured derives the featured page from rows already sorted by display
// order. It reports false when the section is switched off. Missing settings
// fall back to the defaults.
func BuildFeatured(settings *entities.HomePageSettings, rows []entities.FeaturedBook, lang entities.Language) (FeaturedPage, bool) {
	if settings == nil {
		settings = entities.DefaultHomePageSettings()
	}
	if !settings.ShowFeaturedBooks {
		return FeaturedPage{}, false
	}

	page := FeaturedPage{
		Language: lang,
		Title:    settings.FeaturedSectionTitle().In(lang),
		Limit:    settings.FeaturedBooksLimit,
		Books:    []FeaturedEntry{},
	}

	for _, row := range rows {
		if page.Limit > 0 && len(page.Books) >= page.Limit {
			break
		}
		if row.Book == nil {
			continue
		}
		page.Books = append(page.Books, FeaturedEntry{
			BookID:        row.BookID,
			Title:         row.Book.Title,
			Author:        row.Book.Author,
			CoverImageURL: row.Book.CoverImageURL,
			DisplayOrder:  row.DisplayOrder,
		})
	}
	return page, true
}
