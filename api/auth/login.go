package auth

import (
	"errors"
	"net/http"
	"stockmate_server/lib"
	"stockmate_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract login body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	if body.Password == "" {
		gecho.BadRequest(w, gecho.WithMessage("Password is required"), gecho.Send())
		return
	}

	if err := arm.auth.VerifyAdminPassword(body.Password); err != nil {
		if errors.Is(err, lib.ErrAuthNotConfigured) {
			gecho.ServiceUnavailable(w, gecho.WithMessage("Login is not configured on this server"), gecho.Send())
			return
		}
		arm.logger.Warn("Login failed", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	token, claims, err := arm.auth.IssueSession()
	if err != nil {
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return
	}

	lib.SetCookie(lib.SessionCookieName, token, claims.Exp, w)

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(map[string]any{
			"role":       claims.Role,
			"expires_at": claims.Exp,
		}),
		gecho.Send(),
	)
}
