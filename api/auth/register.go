package auth

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/mateng0/shopkeeper-station/lib"
	"github.com/mateng0/shopkeeper-station/structs"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your registration information"), gecho.WithData(err), gecho.Send())
		return
	}

	user, err := arm.authService.Register(body)
	if err != nil {
		userMessage := lib.GetUserMessage(err)

		// Unique violations return 409 Conflict (already logged as warn in service)
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage(userMessage), gecho.Send())
			return
		}

		gecho.InternalServerError(w, gecho.WithMessage(userMessage), gecho.Send())
		return
	}

	// clear password from user
	user.PasswordHash = ""

	go func() {
		if err := arm.emailService.SendWelcomeEmail(user); err != nil {
			arm.logger.Error("Failed to send welcome email", gecho.Field("error", err), gecho.Field("user_id", user.Id))
			return
		}
		arm.logger.Debug("Welcome email sent", gecho.Field("user_id", user.Id))
	}()

	gecho.Success(w,
		gecho.WithMessage("Account created successfully"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
