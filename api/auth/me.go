package auth

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/mateng0/shopkeeper-station/api/middleware"
)

// HandleMe returns the authenticated user's profile.
func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	user, err := arm.authService.GetUserByID(claims.Sub)
	if err != nil {
		arm.logger.Error("Failed to fetch user for /auth/me", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch profile"), gecho.Send())
		return
	}
	if user == nil {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	user.PasswordHash = ""

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
