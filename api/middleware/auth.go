package middleware

import (
	"context"
	"net/http"
	"stockmate_server/lib"
	"stockmate_server/structs"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing session data in request context
type contextKey string

const ClaimsContextKey contextKey = "claims"

// AdminAuthMiddleware gates routes behind the admin session cookie. Every
// data-bearing route in this API sits behind it.
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := lib.GetCookieValue(lib.SessionCookieName, r)
		if err != nil {
			gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
			return
		}

		claims, err := mw.sessions.ValidateSession(token)
		if err != nil {
			mw.logger.Warn("Rejected session token", gecho.Field("error", err))
			gecho.Unauthorized(w, gecho.WithMessage("Invalid or expired session"), gecho.Send())
			return
		}

		if claims.Role != lib.AdminRole {
			mw.logger.Warn("Session without admin role", gecho.Field("sub", claims.Sub), gecho.Field("role", claims.Role))
			gecho.Forbidden(w, gecho.WithMessage("Admin access required"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.SessionClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.SessionClaims)
	return claims, ok
}
