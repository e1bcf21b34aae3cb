package webserver

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/svera/camposanto/internal/webserver/controller"
	"github.com/svera/camposanto/internal/webserver/jwtclaimsreader"
	"github.com/svera/camposanto/internal/webserver/model"
)

// RequireAuthentication returns HTTP unauthorized if the request does not
// carry a valid bearer token
func RequireAuthentication(jwtSecret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    jwtSecret,
		SigningMethod: "HS256",
		TokenLookup:   "header:" + fiber.HeaderAuthorization,
		AuthScheme:    "Bearer",
		SuccessHandler: func(c *fiber.Ctx) error {
			c.Locals("Session", jwtclaimsreader.SessionData(c))
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fiber.ErrUnauthorized
		},
	})
}

// RequireOperator returns HTTP forbidden if the user requesting access
// is not staff or an admin, or still has to replace their initial password
func RequireOperator(c *fiber.Ctx) error {
	session := jwtclaimsreader.SessionData(c)

	if !session.IsOperator() {
		return fiber.ErrForbidden
	}

	if session.MustChangePassword {
		return fiber.NewError(fiber.StatusForbidden, "Password must be changed before continuing")
	}

	return c.Next()
}

// RequireAdmin returns HTTP forbidden if the user requesting access is not an
// admin, or still has to replace their initial password
func RequireAdmin(c *fiber.Ctx) error {
	session := jwtclaimsreader.SessionData(c)

	if session.Role != model.RoleAdmin {
		return fiber.ErrForbidden
	}

	if session.MustChangePassword {
		return fiber.NewError(fiber.StatusForbidden, "Password must be changed before continuing")
	}

	return c.Next()
}

// SetLanguage stores in the request the language which fits best its
// Accept-Language header
func SetLanguage(supportedLanguages []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("Lang", controller.BestLanguage(c, supportedLanguages))
		return c.Next()
	}
}
