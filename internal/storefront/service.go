package storefront

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/database/homepage"
	"github.com/mrlokans/storefront/internal/entities"
)

// ErrFeaturedHidden is returned when the featured section is switched off.
var ErrFeaturedHidden = errors.New("featured books are hidden")

// SettingsReader loads the homepage settings row.
type SettingsReader interface {
	GetHomePageSettings(ctx context.Context) (*entities.HomePageSettings, error)
}

// FeaturedReader lists featured rows in display order.
type FeaturedReader interface {
	ListFeatured(ctx context.Context) ([]entities.FeaturedBook, error)
}

// Service assembles the public pages.
type Service struct {
	settings SettingsReader
	featured FeaturedReader
}

// NewService creates a storefront service.
func NewService(settings SettingsReader, featured FeaturedReader) *Service {
	return &Service{settings: settings, featured: featured}
}

// loadSettings is best effort: failures are logged and read as "no settings".
func (s *Service) loadSettings(ctx context.Context) *entities.HomePageSettings {
	settings, err := s.settings.GetHomePageSettings(ctx)
	if err != nil {
		if !errors.Is(err, homepage.ErrSettingsNotFound) {
			log.Error().Err(err).Msg("Error loading homepage settings")
		}
		return nil
	}
	return settings
}

// Landing builds the landing page for lang. It never fails.
func (s *Service) Landing(ctx context.Context, lang entities.Language) Landing {
	return BuildLanding(s.loadSettings(ctx), lang)
}

// Featured builds the featured books page for lang.
func (s *Service) Featured(ctx context.Context, lang entities.Language) (FeaturedPage, error) {
	settings := s.loadSettings(ctx)

	rows, err := s.featured.ListFeatured(ctx)
	if err != nil {
		return FeaturedPage{}, err
	}

	page, visible := BuildFeatured(settings, rows, lang)
	if !visible {
		return FeaturedPage{}, ErrFeaturedHidden
	}
	return page, nil
}
