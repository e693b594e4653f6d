package services

import (
	"fmt"
	"stockmate_server/lib"
	"stockmate_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// AuthService guards the single-admin surface. There are no user accounts;
// one password, configured through the environment, unlocks everything.
type AuthService struct {
	logger       *gecho.Logger
	config       *structs.Config
	cacheService *CacheService
}

func NewAuthService(logger *gecho.Logger, cfg *structs.Config, cacheService *CacheService) *AuthService {
	return &AuthService{
		logger:       logger,
		config:       cfg,
		cacheService: cacheService,
	}
}

// VerifyAdminPassword checks the submitted password against the configured
// admin credential. A hashed credential takes precedence over a plain one.
func (as *AuthService) VerifyAdminPassword(password string) error {
	auth := as.config.Auth

	if auth.AdminPasswordHash == "" && auth.AdminPassword == "" {
		as.logger.Error("Admin password is not configured; refusing all logins")
		return lib.ErrAuthNotConfigured
	}

	if auth.AdminPasswordHash != "" {
		ok, err := lib.VerifyArgon2Hash(password, auth.AdminPasswordHash)
		if err != nil {
			as.logger.Error("Malformed admin password hash", gecho.Field("error", err))
			return fmt.Errorf("%w: %v", lib.ErrAuthNotConfigured, err)
		}
		if !ok {
			return lib.ErrInvalidCredentials
		}
		return nil
	}

	if !lib.SecureCompare([]byte(password), []byte(auth.AdminPassword)) {
		return lib.ErrInvalidCredentials
	}
	return nil
}

// IssueSession signs a fresh admin session token.
func (as *AuthService) IssueSession() (string, *structs.SessionClaims, error) {
	token, claims, err := lib.SignSessionToken(as.config.Auth.SessionSecret, as.config.Auth.SessionExpiry)
	if err != nil {
		as.logger.Error("Failed to sign session token", gecho.Field("error", err))
		return "", nil, err
	}

	as.logger.Info("Admin session issued",
		gecho.Field("jti", claims.Jti),
		gecho.Field("expires_at", claims.Exp),
	)
	return token, claims, nil
}

// RevokeSession blacklists a session token until its natural expiry.
func (as *AuthService) RevokeSession(jti uuid.UUID, exp time.Time) error {
	if err := as.cacheService.BlacklistToken(jti, exp); err != nil {
		as.logger.Error("Failed to blacklist session token", gecho.Field("error", err), gecho.Field("jti", jti))
		return err
	}
	as.logger.Info("Admin session revoked", gecho.Field("jti", jti))
	return nil
}

// ValidateSession parses a raw token and rejects revoked sessions.
func (as *AuthService) ValidateSession(tokenStr string) (*structs.SessionClaims, error) {
	claims, err := lib.ParseSessionToken(tokenStr, as.config.Auth.SessionSecret)
	if err != nil {
		return nil, err
	}

	blacklisted, err := as.cacheService.IsTokenBlacklisted(claims.Jti)
	if err != nil {
		// Cache outage must not lock the admin out
		as.logger.Warn("Blacklist lookup failed, accepting token", gecho.Field("error", err))
		return claims, nil
	}
	if blacklisted {
		return nil, fmt.Errorf("%w: session revoked", lib.ErrInvalidToken)
	}

	return claims, nil
}

// SessionSecret exposes the signing secret for middleware use.
func (as *AuthService) SessionSecret() string {
	return as.config.Auth.SessionSecret
}

// SessionExpiry exposes the configured session lifetime.
func (as *AuthService) SessionExpiry() time.Duration {
	return as.config.Auth.SessionExpiry
}
