// Package featured provides database operations for the featured books ordering table.
//
// The table carries no uniqueness or ordering constraints. Callers keep
// book IDs unique and display orders dense.
//
// # Usage
//
//	repo := featured.NewRepository(db)
//	entries, err := repo.ListFeatured(ctx)
package featured

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/storefront/internal/entities"
)

// Repository handles all featured books database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new featured books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFeatured returns featured rows joined with their books, in ascending display order.
// Rows whose book no longer exists are dropped by the inner join.
func (r *Repository) ListFeatured(ctx context.Context) ([]entities.FeaturedBook, error) {
	var rows []entities.FeaturedBook
	err := r.db.WithContext(ctx).
		InnerJoins("Book").
		Order("featured_books.display_order ASC").
		Order("featured_books.created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load featured books: %w", err)
	}
	return rows, nil
}

// InsertFeatured adds a row to the featured list.
func (r *Repository) InsertFeatured(ctx context.Context, row *entities.FeaturedBook) error {
	// Never cascade into the books table.
	row.Book = nil
	return r.db.WithContext(ctx).Create(row).Error
}

// DeleteFeatured removes a row by its own ID. Remaining rows keep their display order.
func (r *Repository) DeleteFeatured(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FeaturedBook{}).Error
}

// UpdateDisplayOrder rewrites the display order of a single row.
func (r *Repository) UpdateDisplayOrder(ctx context.Context, id string, order int) error {
	return r.db.WithContext(ctx).
		Model(&entities.FeaturedBook{}).
		Where("id = ?", id).
		Update("display_order", order).Error
}

// ReorderFeatured sets display_order to each row's index in ids inside one transaction.
func (r *Repository) ReorderFeatured(ctx context.Context, ids []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			err := tx.Model(&entities.FeaturedBook{}).
				Where("id = ?", id).
				Update("display_order", i).Error
			if err != nil {
				return fmt.Errorf("failed to reorder featured book %s: %w", id, err)
			}
		}
		return nil
	})
}
