package auth

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/contact"
	"github.com/svera/camposanto/internal/sentinel"
	"github.com/svera/camposanto/internal/token"
	"github.com/svera/camposanto/internal/webserver/controller"
	"github.com/svera/camposanto/internal/webserver/infrastructure"
	"github.com/svera/camposanto/internal/webserver/model"
)

type recoveryRequest struct {
	Email string `json:"email" form:"email"`
}

type passwordReset struct {
	Token    string `json:"token" form:"token"`
	Password string `json:"password" form:"password"`
}

// Request mails a password recovery link to the address, if it belongs to an
// active user. The answer is the same whether it does or not.
func (a *Controller) Request(c *fiber.Ctx) error {
	if _, ok := a.sender.(*infrastructure.NoEmail); ok {
		return fiber.ErrNotFound
	}

	var input recoveryRequest
	if err := c.BodyParser(&input); err != nil {
		return fiber.ErrBadRequest
	}

	lang, _ := c.Locals("Lang").(string)
	email := model.NormalizeEmail(input.Email)
	if email == "" {
		return contact.ValidationErrors{"email": a.translator.T(lang, "Incorrect email address")}
	}

	user, err := a.repository.FindByEmail(email)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		log.Error(err)
		return fiber.ErrInternalServerError
	}

	if user != nil && user.Active {
		if err = a.issueRecovery(c, lang, user); err != nil {
			log.Error(err)
			return fiber.ErrInternalServerError
		}
	}

	return c.JSON(fiber.Map{
		"message": a.translator.T(lang, "If the address belongs to an account, a recovery link has been sent to it"),
	})
}

func (a *Controller) issueRecovery(c *fiber.Ctx, lang string, user *model.User) error {
	credentials, err := a.codec.NewInvitation()
	if err != nil {
		return err
	}

	validUntil := a.now().Add(a.config.RecoveryTimeout)
	user.RecoverySelector = credentials.Selector
	user.RecoveryTokenSalt = credentials.Salt
	user.RecoveryTokenHash = credentials.Hash
	user.RecoveryValidUntil = &validUntil
	if err = a.repository.Update(user); err != nil {
		return err
	}

	views := c.App().Config().Views
	if views == nil {
		return fmt.Errorf("no views engine configured")
	}

	var buf bytes.Buffer
	err = views.Render(&buf, "mail/recovery", fiber.Map{
		"Lang":            lang,
		"Name":            user.Name,
		"RecoveryLink":    fmt.Sprintf("%s/reset-password?token=%s", controller.BaseURL(a.config.FQDN), url.QueryEscape(credentials.Token)),
		"RecoveryTimeout": strconv.FormatFloat(a.config.RecoveryTimeout.Hours(), 'f', -1, 64),
	})
	if err != nil {
		return err
	}

	subject := a.translator.T(lang, "Password recovery request")
	go func(address, body string) {
		if err := a.sender.Send(address, subject, body); err != nil {
			log.Errorf("error sending recovery email: %s", err)
		}
	}(user.Email, buf.String())

	return nil
}

// ResetPassword replaces the password of the user a recovery token was issued
// to. Each token can only be used once.
func (a *Controller) ResetPassword(c *fiber.Ctx) error {
	if _, ok := a.sender.(*infrastructure.NoEmail); ok {
		return fiber.ErrNotFound
	}

	var input passwordReset
	if err := c.BodyParser(&input); err != nil {
		return fiber.ErrBadRequest
	}

	lang, _ := c.Locals("Lang").(string)
	invalidLink := fiber.NewError(fiber.StatusBadRequest, a.translator.T(lang, "Invalid or expired recovery link"))

	selector, verifier, err := token.Split(input.Token)
	if err != nil {
		return invalidLink
	}

	user, err := a.repository.FindByRecoverySelector(selector)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return invalidLink
		}
		return fiber.ErrInternalServerError
	}

	if !user.Active || !user.RecoveryPending(a.now()) || !token.Matches(user.RecoveryTokenSalt, user.RecoveryTokenHash, verifier) {
		return invalidLink
	}

	if utf8.RuneCountInString(input.Password) < a.config.MinPasswordLength {
		return contact.ValidationErrors{
			"password": a.translator.T(lang, "Password must be at least %d characters long", a.config.MinPasswordLength),
		}
	}

	hash, err := a.codec.HashPassword(input.Password)
	if err != nil {
		log.Error(err)
		return fiber.ErrInternalServerError
	}

	if err = a.repository.ResetPassword(user, hash); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return invalidLink
		}
		return fiber.ErrInternalServerError
	}

	log.Infof("password of user %s reset through a recovery link", user.Uuid)
	return c.JSON(fiber.Map{"message": a.translator.T(lang, "Password updated, you can now sign in")})
}
