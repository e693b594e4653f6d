package auth

import (
	"net/http"
	"stockmate_server/lib"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, err := lib.GetCookieValue(lib.SessionCookieName, r)
	if err != nil {
		gecho.Success(w,
			gecho.WithMessage("No active session"),
			gecho.Send(),
		)
		return
	}

	claims, err := arm.auth.ValidateSession(token)
	if err != nil {
		// Token already invalid; clearing the cookie is all that is left
		lib.ClearCookie(lib.SessionCookieName, w)
		gecho.Success(w,
			gecho.WithMessage("Logged out"),
			gecho.Send(),
		)
		return
	}

	if err := arm.auth.RevokeSession(claims.Jti, claims.Exp); err != nil {
		arm.logger.Error("Failed to revoke session during logout", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to logout"),
			gecho.Send(),
		)
		return
	}

	lib.ClearCookie(lib.SessionCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("Logged out successfully"),
		gecho.Send(),
	)
}
