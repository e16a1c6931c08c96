package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/database/admins"
	"github.com/mrlokans/storefront/internal/database/identities"
	"github.com/mrlokans/storefront/internal/entities"
)

var (
	ErrIdentityExists     = errors.New("User already registered")
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
)

// IdentityRepository defines the identity persistence the service needs.
type IdentityRepository interface {
	CreateIdentity(ctx context.Context, identity *entities.Identity) error
	GetIdentityByEmail(ctx context.Context, email string) (*entities.Identity, error)
	GetIdentityByID(ctx context.Context, id string) (*entities.Identity, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// AdminRepository answers whether an identity is an administrator.
type AdminRepository interface {
	GetAdmin(ctx context.Context, id string) (*entities.AdminUser, error)
}

// Service handles identity signup and credential checks.
type Service struct {
	identities IdentityRepository
	admins     AdminRepository
	config     config.Auth
}

// NewService creates a new identity service.
func NewService(identities IdentityRepository, admins AdminRepository, cfg config.Auth) *Service {
	return &Service{
		identities: identities,
		admins:     admins,
		config:     cfg,
	}
}

// NormalizeEmail trims and lowercases an address before lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates an identity with a hashed password.
func (s *Service) SignUp(ctx context.Context, email, password string) (*entities.Identity, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if err := validation.Validate(email, validation.Length(3, 254), is.EmailFormat); err != nil {
		return nil, fmt.Errorf("email %w", err)
	}
	if err := ValidatePassword(password, s.config.MinPasswordLength); err != nil {
		return nil, err
	}

	_, err := s.identities.GetIdentityByEmail(ctx, email)
	if err == nil {
		return nil, ErrIdentityExists
	}
	if !errors.Is(err, identities.ErrIdentityNotFound) {
		return nil, fmt.Errorf("failed to check existing identity: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &entities.Identity{
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.identities.CreateIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	log.Info().Str("identity_id", identity.ID).Msg("identity created")
	return identity, nil
}

// Authenticate validates credentials and returns the identity.
// Unknown email and wrong password yield the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entities.Identity, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	identity, err := s.identities.GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identities.ErrIdentityNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}

	if err := CheckPassword(password, identity.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	if err := s.identities.TouchLastLogin(ctx, identity.ID, now); err != nil {
		log.Warn().Err(err).Str("identity_id", identity.ID).Msg("failed to record last login")
	} else {
		identity.LastLoginAt = &now
	}

	return identity, nil
}

// GetIdentity retrieves an identity by ID.
func (s *Service) GetIdentity(ctx context.Context, id string) (*entities.Identity, error) {
	identity, err := s.identities.GetIdentityByID(ctx, id)
	if err != nil {
		if errors.Is(err, identities.ErrIdentityNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return identity, nil
}

// IsAdmin reports whether the identity has an administrator row.
func (s *Service) IsAdmin(ctx context.Context, identityID string) (bool, error) {
	if identityID == "" {
		return false, nil
	}
	_, err := s.admins.GetAdmin(ctx, identityID)
	if err != nil {
		if errors.Is(err, admins.ErrAdminNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// OpenSignup reports whether signup is offered once an administrator exists.
func (s *Service) OpenSignup() bool {
	return s.config.OpenSignup
}
