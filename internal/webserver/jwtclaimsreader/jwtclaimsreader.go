package jwtclaimsreader

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/svera/camposanto/internal/webserver/model"
)

// SessionData extracts the session claims set by the authentication middleware
func SessionData(c *fiber.Ctx) model.Session {
	var session model.Session

	t, ok := c.Locals("user").(*jwt.Token)
	if !ok || t == nil {
		return session
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return session
	}

	if userDataMap, ok := claims["userdata"].(map[string]any); ok {
		if value, ok := userDataMap["Uuid"].(string); ok {
			session.Uuid = value
		}
		if value, ok := userDataMap["Name"].(string); ok {
			session.Name = value
		}
		if value, ok := userDataMap["Email"].(string); ok {
			session.Email = value
		}
		if value, ok := userDataMap["Role"].(float64); ok {
			session.Role = int(value)
		}
		if value, ok := userDataMap["MustChangePassword"].(bool); ok {
			session.MustChangePassword = value
		}
	}

	if value, ok := claims["exp"].(float64); ok {
		session.Exp = value
	}

	return session
}
