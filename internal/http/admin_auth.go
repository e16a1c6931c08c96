package http

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/admin"
	"github.com/mrlokans/storefront/internal/audit"
	"github.com/mrlokans/storefront/internal/auth"
	"github.com/mrlokans/storefront/internal/entities"
)

const adminHomePath = "/admin/homepage"

var (
	errTooManyAttempts = errors.New("Too many login attempts. Please try again later.")
	errSessionFailed   = errors.New("Failed to create session")
)

// AdminAuthController serves the admin sign-in screen.
type AdminAuthController struct {
	service     *auth.Service
	admins      admin.AdminStore
	sessions    *auth.SessionManager
	rateLimiter *auth.RateLimiter
	auditor     *audit.Service

	// Serializes signups so two first-admin requests cannot both see zero admins.
	signupMu sync.Mutex
}

// NewAdminAuthController creates the sign-in controller. rateLimiter and
// auditor may be nil.
func NewAdminAuthController(service *auth.Service, admins admin.AdminStore, sessions *auth.SessionManager, rateLimiter *auth.RateLimiter, auditor *audit.Service) *AdminAuthController {
	return &AdminAuthController{
		service:     service,
		admins:      admins,
		sessions:    sessions,
		rateLimiter: rateLimiter,
		auditor:     auditor,
	}
}

// LoginPage renders the sign-in screen in the mode Init picks.
// GET /admin/login
func (ac *AdminAuthController) LoginPage(c *gin.Context) {
	next := auth.SanitizeRedirectPath(c.Query("next"), adminHomePath)

	if ac.sessions.IsAuthenticated(c.Request) {
		isAdmin, err := ac.service.IsAdmin(c.Request.Context(), ac.sessions.GetIdentityID(c.Request))
		if err == nil && isAdmin {
			c.Redirect(http.StatusFound, next)
			return
		}
	}

	screen := admin.NewLoginScreen(ac.admins, ac.service, nil, ac.service.OpenSignup())
	screen.Init(c.Request.Context())
	if c.Query("mode") == string(admin.ModeSignup) {
		screen.RequestSignup()
	}

	ac.render(c, http.StatusOK, screen, next)
}

// Login submits the sign-in screen: signup when no administrator exists
// (or open signup was requested), otherwise a password login.
// POST /admin/login
func (ac *AdminAuthController) Login(c *gin.Context) {
	ctx := c.Request.Context()
	email := auth.NormalizeEmail(c.PostForm("email"))
	password := c.PostForm("password")
	next := auth.SanitizeRedirectPath(c.PostForm("next"), adminHomePath)
	clientIP := c.ClientIP()

	var signedIn *entities.Identity
	login := func(ctx context.Context, email, password string) error {
		identity, err := ac.authenticate(c, email, password)
		if err != nil {
			return err
		}
		signedIn = identity
		return nil
	}

	screen := admin.NewLoginScreen(ac.admins, ac.service, login, ac.service.OpenSignup())

	// Signups are serialized from the admin count check through the write,
	// whether requested or forced by an empty admin table.
	ac.signupMu.Lock()
	screen.Init(ctx)
	if c.PostForm("mode") == string(admin.ModeSignup) {
		screen.RequestSignup()
	}
	signup := screen.Mode == admin.ModeSignup
	if signup {
		defer ac.signupMu.Unlock()
	} else {
		ac.signupMu.Unlock()
	}

	err := screen.Submit(ctx, email, password)

	if signup && ac.auditor != nil {
		actorID := ""
		if signedIn != nil {
			actorID = signedIn.ID
		}
		ac.auditor.LogAdminSignup(actorID, email, clientIP, err)
	}

	if err != nil {
		log.Info().Err(err).Str("email", email).Str("mode", string(screen.Mode)).Msg("Admin sign-in failed")
		ac.render(c, http.StatusOK, screen, next)
		return
	}

	c.Redirect(http.StatusFound, next)
}

// authenticate is the login callback handed to the screen: rate limit,
// verify the password, then start the session.
func (ac *AdminAuthController) authenticate(c *gin.Context, email, password string) (*entities.Identity, error) {
	clientIP := c.ClientIP()

	if ac.rateLimiter != nil {
		if allowed, retryAfter := ac.rateLimiter.Allow(clientIP, email); !allowed {
			c.Header("Retry-After", retryAfter.String())
			return nil, errTooManyAttempts
		}
	}

	identity, err := ac.service.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		if ac.rateLimiter != nil {
			ac.rateLimiter.RecordFailure(clientIP, email)
		}
		if ac.auditor != nil {
			ac.auditor.LogLogin("", email, clientIP, err)
		}
		return nil, err
	}

	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(clientIP, email)
	}

	if err := ac.sessions.CreateSession(c.Request, identity); err != nil {
		log.Error().Err(err).Str("identity_id", identity.ID).Msg("Failed to create session")
		return nil, errSessionFailed
	}

	if ac.auditor != nil {
		ac.auditor.LogLogin(identity.ID, email, clientIP, nil)
	}
	return identity, nil
}

// Logout destroys the session and returns to the sign-in screen.
// POST /admin/logout
func (ac *AdminAuthController) Logout(c *gin.Context) {
	actorID := ac.sessions.GetIdentityID(c.Request)
	if err := ac.sessions.DestroySession(c.Request); err != nil {
		log.Error().Err(err).Msg("Failed to destroy session")
	}
	if ac.auditor != nil && actorID != "" {
		ac.auditor.LogLogout(actorID, c.ClientIP())
	}
	c.Redirect(http.StatusFound, auth.LoginPath)
}

func (ac *AdminAuthController) render(c *gin.Context, status int, screen *admin.LoginScreen, next string) {
	data := baseTemplateData(c, screen.Heading())
	data["Screen"] = screen
	data["Next"] = next
	data["Flash"] = popFlash(c, ac.sessions)
	c.HTML(status, "admin-login", data)
}
