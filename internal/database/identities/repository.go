// Package identities provides database operations for identity service accounts.
package identities

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/storefront/internal/entities"
)

var ErrIdentityNotFound = errors.New("identity not found")

// Repository handles all identity database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new identities repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateIdentity stores a new identity. The ID is generated when empty.
func (r *Repository) CreateIdentity(ctx context.Context, identity *entities.Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

// GetIdentityByEmail retrieves an identity by its (case-sensitive, pre-normalised) email.
func (r *Repository) GetIdentityByEmail(ctx context.Context, email string) (*entities.Identity, error) {
	var identity entities.Identity
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// GetIdentityByID retrieves an identity by ID.
func (r *Repository) GetIdentityByID(ctx context.Context, id string) (*entities.Identity, error) {
	var identity entities.Identity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// TouchLastLogin records a successful login.
func (r *Repository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entities.Identity{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
