package auth

import (
	"net/http"
	"stockmate_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleSession reports whether the caller holds a valid admin session.
// The frontend polls this on load to decide between login screen and app.
func (arm *AuthRoutesManager) HandleSession(w http.ResponseWriter, r *http.Request) {
	token, err := lib.GetCookieValue(lib.SessionCookieName, r)
	if err != nil {
		gecho.Unauthorized(w, gecho.WithMessage("No active session"), gecho.Send())
		return
	}

	claims, err := arm.auth.ValidateSession(token)
	if err != nil {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or expired session"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"role":       claims.Role,
			"expires_at": claims.Exp,
		}),
		gecho.Send(),
	)
}
