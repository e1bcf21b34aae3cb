package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
	"github.com/svera/camposanto/internal/sentinel"
	"github.com/svera/camposanto/internal/token"
	"github.com/svera/camposanto/internal/webserver/model"
)

type credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// SignIn checks the credentials of a user and gives them a JWT
func (a *Controller) SignIn(c *fiber.Ctx) error {
	var input credentials
	if err := c.BodyParser(&input); err != nil {
		return fiber.ErrBadRequest
	}

	user, err := a.repository.FindByEmail(input.Email)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		log.Error(err)
		return fiber.ErrInternalServerError
	}

	if user == nil || !user.Active || !token.CheckPassword(user.PasswordHash, input.Password) {
		lang, _ := c.Locals("Lang").(string)
		return fiber.NewError(fiber.StatusUnauthorized, a.translator.T(lang, "Wrong email or password"))
	}

	return a.respondWithToken(c, user)
}

func (a *Controller) respondWithToken(c *fiber.Ctx, user *model.User) error {
	expiration := time.Now().Add(a.config.SessionTimeout)
	signedToken, err := GenerateToken(user, expiration, a.config.Secret)
	if err != nil {
		log.Error(err)
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"token":                signedToken,
		"expires_at":           expiration.UTC(),
		"must_change_password": user.MustChangePassword,
	})
}

func GenerateToken(user *model.User, expiration time.Time, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userdata": model.Session{
			Uuid:               user.Uuid,
			Name:               user.Name,
			Email:              user.Email,
			Role:               user.Role,
			MustChangePassword: user.MustChangePassword,
		},
		"exp": jwt.NewNumericDate(expiration),
	})

	return token.SignedString(secret)
}
