package auth

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/mateng0/shopkeeper-station/lib"
)

// HandleRefresh exchanges a valid refresh token for a new token pair.
func (arm *AuthRoutesManager) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := lib.GetCookieValue(lib.RefreshCookieName, r)
	if err != nil {
		gecho.Unauthorized(w, gecho.WithMessage("No refresh token found"), gecho.Send())
		return
	}

	result, err := arm.authService.RefreshAccessToken(refreshToken)
	if err != nil {
		if errors.Is(err, lib.ErrInvalidToken) || errors.Is(err, lib.ErrExpiredToken) {
			lib.ClearCookie(lib.AccessCookieName, w)
			lib.ClearCookie(lib.RefreshCookieName, w)
			gecho.Unauthorized(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
			return
		}
		arm.logger.Error("Failed to refresh access token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to refresh session"), gecho.Send())
		return
	}

	lib.SetCookie(lib.RefreshCookieName, result.RefreshToken, arm.authService.GetRefreshTokenExpiration(), w)
	lib.SetCookie(lib.AccessCookieName, result.AccessToken, arm.authService.GetAccessTokenExpiration(), w)

	result.User.PasswordHash = ""

	gecho.Success(w,
		gecho.WithMessage("Session refreshed"),
		gecho.WithData(result.User),
		gecho.Send(),
	)
}
