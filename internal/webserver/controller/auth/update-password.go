package auth

import (
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/contact"
	"github.com/svera/camposanto/internal/token"
	"github.com/svera/camposanto/internal/webserver/jwtclaimsreader"
)

type passwordChange struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

// UpdatePassword changes the password of the signed in user and clears the
// forced change flag set on invited and seeded accounts. A new token is
// returned, as the previous one still carries the flag.
func (a *Controller) UpdatePassword(c *fiber.Ctx) error {
	var input passwordChange
	if err := c.BodyParser(&input); err != nil {
		return fiber.ErrBadRequest
	}

	session := jwtclaimsreader.SessionData(c)
	user, err := a.repository.FindByUuid(session.Uuid)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	lang, _ := c.Locals("Lang").(string)
	if !token.CheckPassword(user.PasswordHash, input.CurrentPassword) {
		return fiber.NewError(fiber.StatusUnauthorized, a.translator.T(lang, "Wrong password"))
	}

	errs := contact.ValidationErrors{}
	if utf8.RuneCountInString(input.NewPassword) < a.config.MinPasswordLength {
		errs["new_password"] = a.translator.T(lang, "Password must be at least %d characters long", a.config.MinPasswordLength)
	} else if input.NewPassword == input.CurrentPassword {
		errs["new_password"] = a.translator.T(lang, "New password must be different from the current one")
	}
	if len(errs) > 0 {
		return errs
	}

	if user.PasswordHash, err = a.codec.HashPassword(input.NewPassword); err != nil {
		log.Error(err)
		return fiber.ErrInternalServerError
	}
	user.MustChangePassword = false

	if err = a.repository.Update(user); err != nil {
		return fiber.ErrInternalServerError
	}

	return a.respondWithToken(c, user)
}
