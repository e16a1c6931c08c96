// Package homepage provides database operations for the singleton homepage settings row.
//
// # Usage
//
//	repo := homepage.NewRepository(db)
//	settings, err := repo.GetHomePageSettings(ctx)
package homepage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/storefront/internal/entities"
)

var ErrSettingsNotFound = errors.New("homepage settings not found")

// Repository handles all homepage settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new homepage settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetHomePageSettings returns the settings row. When more than one row exists
// the oldest one wins.
func (r *Repository) GetHomePageSettings(ctx context.Context) (*entities.HomePageSettings, error) {
	var rows []entities.HomePageSettings
	err := r.db.WithContext(ctx).Order("created_at ASC").Limit(1).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load homepage settings: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrSettingsNotFound
	}
	return &rows[0], nil
}

// UpdateHomePageSettings overwrites every column of the row identified by settings.ID.
// There is no concurrency check: the last writer wins.
func (r *Repository) UpdateHomePageSettings(ctx context.Context, settings *entities.HomePageSettings) error {
	if settings.ID == "" {
		return ErrSettingsNotFound
	}
	settings.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).
		Model(&entities.HomePageSettings{}).
		Where("id = ?", settings.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(settings)
	if result.Error != nil {
		return fmt.Errorf("failed to save homepage settings: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSettingsNotFound
	}
	return nil
}

// EnsureHomePageSettings creates the row from defaults when none exists.
// Returns true if a row was created.
func (r *Repository) EnsureHomePageSettings(ctx context.Context, defaults *entities.HomePageSettings) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.HomePageSettings{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		return false, fmt.Errorf("failed to create homepage settings: %w", err)
	}
	return true, nil
}
