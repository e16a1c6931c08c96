package admin

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/entities"
)

// Mode is the form the login screen shows.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// AdminStore reads and writes administrator rows.
type AdminStore interface {
	CountAdmins(ctx context.Context) (int64, error)
	InsertAdmin(ctx context.Context, admin *entities.AdminUser) error
}

// IdentityProvider creates accounts in the identity service.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*entities.Identity, error)
}

// LoginFunc signs the caller in with the given credentials.
type LoginFunc func(ctx context.Context, email, password string) error

// LoginScreen is the state of the admin sign-in screen.
type LoginScreen struct {
	admins     AdminStore
	identities IdentityProvider
	login      LoginFunc
	openSignup bool

	Mode         Mode
	IsFirstAdmin bool
	Email        string
	Error        string
}

// NewLoginScreen creates a login screen. openSignup allows switching to
// signup mode after the first administrator exists.
func NewLoginScreen(admins AdminStore, identities IdentityProvider, login LoginFunc, openSignup bool) *LoginScreen {
	return &LoginScreen{
		admins:     admins,
		identities: identities,
		login:      login,
		openSignup: openSignup,
		Mode:       ModeLogin,
	}
}

// Init decides the initial mode. With no administrators the screen is forced
// into signup; a failed count leaves it in login mode.
func (s *LoginScreen) Init(ctx context.Context) {
	s.Mode = ModeLogin
	s.IsFirstAdmin = false

	count, err := s.admins.CountAdmins(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to count admin users")
		return
	}
	if count == 0 {
		s.IsFirstAdmin = true
		s.Mode = ModeSignup
	}
}

// CanRequestSignup reports whether the "create admin account" link is offered.
func (s *LoginScreen) CanRequestSignup() bool {
	return s.openSignup && !s.IsFirstAdmin && s.Mode == ModeLogin
}

// RequestSignup switches to signup mode when allowed and reports whether it did.
func (s *LoginScreen) RequestSignup() bool {
	if s.Mode == ModeSignup {
		return true
	}
	if !s.CanRequestSignup() {
		return false
	}
	s.Mode = ModeSignup
	return true
}

// Submit runs the current mode's flow. Any failure is returned and also kept
// in Error, using the failing call's own message. Nothing is retried or rolled
// back: an identity created before a failed admin insert stays behind.
func (s *LoginScreen) Submit(ctx context.Context, email, password string) error {
	s.Email = email
	s.Error = ""

	var err error
	if s.Mode == ModeSignup {
		err = s.signup(ctx, email, password)
	} else {
		err = s.login(ctx, email, password)
	}

	if err != nil {
		s.Error = err.Error()
		if s.Error == "" {
			s.Error = s.fallbackError()
		}
	}
	return err
}

func (s *LoginScreen) signup(ctx context.Context, email, password string) error {
	identity, err := s.identities.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	if identity == nil {
		return nil
	}

	if err := s.admins.InsertAdmin(ctx, &entities.AdminUser{ID: identity.ID, Email: email}); err != nil {
		log.Error().Err(err).Str("identity_id", identity.ID).Msg("admin row insert failed after signup")
		return err
	}

	return s.login(ctx, email, password)
}

func (s *LoginScreen) fallbackError() string {
	if s.Mode == ModeSignup {
		return "Failed to create account"
	}
	return "Failed to login"
}

// Heading is the screen title for the current mode.
func (s *LoginScreen) Heading() string {
	if s.Mode == ModeSignup {
		return "Create First Admin"
	}
	return "Admin Login"
}

// Subheading is the line under the title.
func (s *LoginScreen) Subheading() string {
	if s.Mode == ModeSignup {
		return "Set up your administrator account"
	}
	return "Sign in to manage your bookstore"
}

// SubmitLabel is the submit button text.
func (s *LoginScreen) SubmitLabel() string {
	if s.Mode == ModeSignup {
		return "Create Admin Account"
	}
	return "Sign In"
}
