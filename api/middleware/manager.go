package middleware

import (
	"stockmate_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

// SessionValidator checks a raw session token and returns its claims.
// Implemented by services.AuthService.
type SessionValidator interface {
	ValidateSession(tokenStr string) (*structs.SessionClaims, error)
}

// RateLimiter tracks request counts per client and endpoint.
// Implemented by services.CacheService.
type RateLimiter interface {
	IncrementRateLimit(ip, endpoint string, window time.Duration) (int, error)
}

type Middleware struct {
	cfg      *structs.Config
	logger   *gecho.Logger
	sessions SessionValidator
	limiter  RateLimiter
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, sessions SessionValidator, limiter RateLimiter) *Middleware {
	return &Middleware{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		limiter:  limiter,
	}
}
