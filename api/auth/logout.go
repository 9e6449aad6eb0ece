package auth

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/mateng0/shopkeeper-station/lib"
)

func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	accessToken, err := lib.GetCookieValue(lib.AccessCookieName, r)
	if err != nil {
		gecho.Success(w,
			gecho.WithMessage("No access token found"),
			gecho.Send(),
		)
		return
	}

	claims, err := lib.ParseToken(accessToken, arm.cfg.Auth.AccessTokenSecret)
	if err != nil {
		arm.logger.Debug("Failed to parse access token during logout", gecho.Field("error", err))
		lib.ClearCookie(lib.AccessCookieName, w)
		lib.ClearCookie(lib.RefreshCookieName, w)
		gecho.Success(w,
			gecho.WithMessage("Logged out successfully"),
			gecho.Send(),
		)
		return
	}

	if err := arm.authService.BlacklistToken(claims); err != nil {
		arm.logger.Error("Failed to blacklist access token during logout", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to logout"),
			gecho.Send(),
		)
		return
	}

	// Also revoke the refresh token so the session cannot be silently renewed
	if refreshToken, err := lib.GetCookieValue(lib.RefreshCookieName, r); err == nil {
		if refreshClaims, err := lib.ParseToken(refreshToken, arm.cfg.Auth.RefreshTokenSecret); err == nil {
			if err := arm.authService.BlacklistToken(refreshClaims); err != nil {
				arm.logger.Error("Failed to blacklist refresh token during logout", gecho.Field("error", err))
			}
		}
	}

	if err := arm.cacheService.DeleteUserFromCache(claims.Sub); err != nil {
		arm.logger.Error("Failed to clear user cache during logout", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
	} else {
		arm.logger.Debug("User cache cleared during logout", gecho.Field("user_id", claims.Sub))
	}

	lib.ClearCookie(lib.AccessCookieName, w)
	lib.ClearCookie(lib.RefreshCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("Logged out successfully"),
		gecho.Send(),
	)
}
