package handling

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/mateng0/shopkeeper-station/lib"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.Send())
}

// RespondError maps known domain errors onto their status codes and falls
// back to a 500 for everything else. The response body never carries raw
// error detail.
func RespondError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	switch {
	case errors.Is(err, lib.ErrNotFound):
		return gecho.NotFound(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
	case errors.Is(err, lib.ErrForbidden):
		return gecho.Forbidden(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		return gecho.Conflict(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
	case errors.Is(err, lib.ErrInvalidInput):
		return gecho.BadRequest(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
	case errors.Is(err, lib.ErrInvalidCredentials),
		errors.Is(err, lib.ErrInvalidToken),
		errors.Is(err, lib.ErrExpiredToken):
		return gecho.Unauthorized(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
	}

	var validationErr *lib.ValidationError
	if errors.As(err, &validationErr) {
		return gecho.BadRequest(w, gecho.WithMessage("Validation failed"), gecho.WithData(validationErr.Errors), gecho.Send())
	}

	return HandleError(err, msg, logger, w)
}
