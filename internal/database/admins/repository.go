// Package admins provides database operations for administrator rows.
//
// # Usage
//
//	repo := admins.NewRepository(db)
//	count, err := repo.CountAdmins(ctx)
package admins

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/storefront/internal/entities"
)

var ErrAdminNotFound = errors.New("admin user not found")

// Repository handles all admin user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new admins repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountAdmins returns the number of administrator rows.
func (r *Repository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.AdminUser{}).Count(&count).Error
	return count, err
}

// InsertAdmin creates an administrator row keyed by the identity ID.
func (r *Repository) InsertAdmin(ctx context.Context, admin *entities.AdminUser) error {
	if admin.ID == "" {
		return fmt.Errorf("admin user id is required")
	}
	return r.db.WithContext(ctx).Create(admin).Error
}

// GetAdmin retrieves an administrator by identity ID.
func (r *Repository) GetAdmin(ctx context.Context, id string) (*entities.AdminUser, error) {
	var admin entities.AdminUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}
