// Package catalogue provides database operations for the book catalogue.
package catalogue

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/storefront/internal/entities"
)

var ErrBookNotFound = errors.New("book not found")

// Repository handles all book catalogue database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalogue repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns the full catalogue ordered by title.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Order("title ASC").Find(&books).Error
	return books, err
}

// GetBook retrieves a book by ID.
func (r *Repository) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// UpsertBooks inserts books, updating title, author and cover of rows whose ID already exists.
func (r *Repository) UpsertBooks(ctx context.Context, books []entities.Book) error {
	if len(books) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "author", "cover_image_url", "updated_at"}),
	}).Create(&books).Error
	if err != nil {
		return fmt.Errorf("failed to upsert books: %w", err)
	}
	return nil
}
