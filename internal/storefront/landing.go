// Package storefront derives the public pages from the homepage settings.
package storefront

import (
	"github.com/mrlokans/storefront/internal/entities"
	"github.com/mrlokans/storefront/internal/i18n"
)

// Card is one promotional card on the landing page.
type Card struct {
	Format      entities.Format `json:"format"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Link        string          `json:"link"`
	Accent      string          `json:"accent"`
	Bullets     []string        `json:"bullets"`
	BrowseLabel string          `json:"browse_label"`
}

// Landing is the rendered state of the landing page.
type Landing struct {
	Language       entities.Language `json:"language"`
	SettingsLoaded bool              `json:"settings_loaded"`
	VisibleCount   int               `json:"visible_count"`
	ShowGrid       bool              `json:"show_grid"`
	GridClass      string            `json:"grid_class,omitempty"`
	Cards          []Card            `json:"cards"`
}

type cardChrome struct {
	link    string
	accent  string
	bullets []string
	browse  string
}

var chrome = map[entities.Format]cardChrome{
	entities.FormatPhysical: {
		link: "/books", accent: "blue",
		bullets: []string{"landing.printed.price", "landing.printed.checkout"},
		browse:  "landing.printed.browse",
	},
	entities.FormatEbooks: {
		link: "/ebooks", accent: "green",
		bullets: []string{"landing.ebooks.instant", "landing.ebooks.formats"},
		browse:  "landing.ebooks.browse",
	},
	entities.FormatAudiobooks: {
		link: "/audiobooks", accent: "orange",
		bullets: []string{"landing.audiobooks.free", "landing.audiobooks.quality"},
		browse:  "landing.audiobooks.browse",
	},
	entities.FormatFeatured: {
		link: "/featured", accent: "purple",
		bullets: []string{"landing.featured.curated", "landing.featured.popular"},
		browse:  "landing.featured.browse",
	},
}

// GridClass maps the number of visible cards to the grid layout class.
func GridClass(visible int) string {
	switch {
	case visible >= 4:
		return "grid-4"
	case visible == 3:
		return "grid-3"
	case visible == 2:
		return "grid-2"
	case visible == 1:
		return "grid-1 narrow"
	}
	return ""
}

// BuildLanding derives the landing page. A nil settings row means every card
// flag defaults to visible, which sizes the grid, but no card is rendered
// because there is no copy to show.
func BuildLanding(settings *entities.HomePageSettings, lang entities.Language) Landing {
	landing := Landing{
		Language:       lang,
		SettingsLoaded: settings != nil,
		Cards:          []Card{},
	}

	for _, format := range entities.Formats {
		visible := settings == nil || settings.ShowCard(format)
		if !visible {
			continue
		}
		landing.VisibleCount++

		if settings == nil {
			continue
		}
		landing.Cards = append(landing.Cards, buildCard(settings, format, lang))
	}

	landing.ShowGrid = landing.VisibleCount > 0
	landing.GridClass = GridClass(landing.VisibleCount)
	return landing
}

func buildCard(settings *entities.HomePageSettings, format entities.Format, lang entities.Language) Card {
	c := chrome[format]
	bullets := make([]string, len(c.bullets))
	for i, key := range c.bullets {
		bullets[i] = i18n.T(lang, key)
	}
	return Card{
		Format:      format,
		Title:       settings.CardTitle(format).In(lang),
		Description: settings.CardDescription(format).In(lang),
		Link:        c.link,
		Accent:      c.accent,
		Bullets:     bullets,
		BrowseLabel: i18n.T(lang, c.browse),
	}
}
