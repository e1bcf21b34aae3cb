package user

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/svera/camposanto/internal/contact"
	"github.com/svera/camposanto/internal/sentinel"
	"github.com/svera/camposanto/internal/webserver/model"
)

type newUser struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Role     int    `json:"role" form:"role"`
	Password string `json:"password" form:"password"`
}

// Create adds a staff member or an admin. Family accounts are only created
// through invitations. The new user has to replace the given password on
// their first sign in.
func (u *Controller) Create(c *fiber.Ctx) error {
	var input newUser
	if err := c.BodyParser(&input); err != nil {
		return fiber.ErrBadRequest
	}

	lang, _ := c.Locals("Lang").(string)
	user := model.User{
		Uuid:               uuid.NewString(),
		Name:               strings.TrimSpace(input.Name),
		Email:              model.NormalizeEmail(input.Email),
		Role:               input.Role,
		MustChangePassword: true,
		Active:             true,
	}

	errs := contact.ValidationErrors{}
	if user.Name == "" {
		errs["name"] = u.translator.T(lang, "Name cannot be empty")
	}
	if user.Role != model.RoleStaff && user.Role != model.RoleAdmin {
		errs["role"] = u.translator.T(lang, "Role must be staff or admin")
	}
	if utf8.RuneCountInString(input.Password) < u.config.MinPasswordLength {
		errs["password"] = u.translator.T(lang, "Password must be at least %d characters long", u.config.MinPasswordLength)
	}
	if err := u.checkEmail(lang, user.Email, "", errs); err != nil {
		return err
	}
	if len(errs) > 0 {
		return errs
	}

	hash, err := u.hasher.HashPassword(input.Password)
	if err != nil {
		log.Error(err)
		return fiber.ErrInternalServerError
	}
	user.PasswordHash = hash

	if err = u.repository.Create(&user); err != nil {
		return fiber.ErrInternalServerError
	}

	log.Infof("user %s created with role %d", user.Uuid, user.Role)
	return c.Status(fiber.StatusCreated).JSON(NewView(&user))
}

// checkEmail adds an error to errs if email is not valid or already belongs
// to a user other than the one identified by ownerUuid
func (u *Controller) checkEmail(lang, email, ownerUuid string, errs contact.ValidationErrors) error {
	if email == "" {
		errs["email"] = u.translator.T(lang, "Incorrect email address")
		return nil
	}

	existing, err := u.repository.FindByEmail(email)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		log.Error(err)
		return fiber.ErrInternalServerError
	}
	if existing != nil && existing.Uuid != ownerUuid {
		errs["email"] = u.translator.T(lang, "A user with this email address already exists")
	}
	return nil
}
