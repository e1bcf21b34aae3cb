package user

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/contact"
	"github.com/svera/camposanto/internal/webserver/model"
)

type userUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *int    `json:"role"`
	Active   *bool   `json:"active"`
	Password *string `json:"password"`
}

// Update applies the non-nil fields to a user. The email and role of accounts
// created through invitations are bound to their burial record contacts and
// cannot be changed. A password set here has to be replaced on the next sign in.
func (u *Controller) Update(c *fiber.Ctx) error {
	var input userUpdate
	if err := c.BodyParser(&input); err != nil {
		return fiber.ErrBadRequest
	}

	user, err := u.repository.FindByUuid(c.Params("id"))
	if err != nil {
		return err
	}

	if !user.IsOperator() {
		switch {
		case input.Email != nil:
			return &contact.FieldError{Field: "email"}
		case input.Role != nil:
			return &contact.FieldError{Field: "role"}
		}
	}

	lang, _ := c.Locals("Lang").(string)
	errs := contact.ValidationErrors{}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
		if user.Name == "" {
			errs["name"] = u.translator.T(lang, "Name cannot be empty")
		}
	}
	if input.Email != nil {
		user.Email = model.NormalizeEmail(*input.Email)
		if err = u.checkEmail(lang, user.Email, user.Uuid, errs); err != nil {
			return err
		}
	}

	wasActiveAdmin := user.Role == model.RoleAdmin && user.Active
	if input.Role != nil {
		if *input.Role != model.RoleStaff && *input.Role != model.RoleAdmin {
			errs["role"] = u.translator.T(lang, "Role must be staff or admin")
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.Password != nil {
		if utf8.RuneCountInString(*input.Password) < u.config.MinPasswordLength {
			errs["password"] = u.translator.T(lang, "Password must be at least %d characters long", u.config.MinPasswordLength)
		}
	}
	if len(errs) > 0 {
		return errs
	}

	isActiveAdmin := user.Role == model.RoleAdmin && user.Active
	if wasActiveAdmin && !isActiveAdmin && u.repository.Admins() <= 1 {
		return fiber.NewError(fiber.StatusForbidden, u.translator.T(lang, "There must be at least one active administrator"))
	}

	if input.Password != nil {
		if user.PasswordHash, err = u.hasher.HashPassword(*input.Password); err != nil {
			log.Error(err)
			return fiber.ErrInternalServerError
		}
		user.MustChangePassword = true
	}

	if err = u.repository.Update(user); err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(NewView(user))
}
