package auth

import (
	"stockmate_server/api/middleware"
	"stockmate_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AuthProvider is the slice of services.AuthService these handlers need.
type AuthProvider interface {
	VerifyAdminPassword(password string) error
	IssueSession() (string, *structs.SessionClaims, error)
	RevokeSession(jti uuid.UUID, exp time.Time) error
	ValidateSession(tokenStr string) (*structs.SessionClaims, error)
}

type AuthRoutesManager struct {
	logger *gecho.Logger
	auth   AuthProvider
	cfg    *structs.Config
	mw     *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	auth AuthProvider,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger: logger,
		auth:   auth,
		cfg:    cfg,
		mw:     mw,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		// CSRF token endpoint (must be called before protected routes)
		r.Get("/csrf", arm.HandleCSRF)
		r.Get("/session", arm.HandleSession)

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.CSRFMiddleware())
			r.Group(func(r chi.Router) {
				r.Use(arm.mw.StrictRateLimitMiddleware(arm.cfg.RateLimit.AuthLimit, arm.cfg.RateLimit.AuthWindow))
				r.Post("/login", arm.HandleLogin)
			})
			r.Post("/logout", arm.HandleLogout)
		})
	})
}
