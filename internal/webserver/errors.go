package webserver

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/contact"
	"github.com/svera/camposanto/internal/invitation"
	"github.com/svera/camposanto/internal/sentinel"
)

// ErrorHandler turns the errors returned by controllers into JSON responses.
// Unexpected errors are logged and answered without detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, body := errorResponse(err)
	if code == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(body)
}

func errorResponse(err error) (int, fiber.Map) {
	var (
		stateErr      *invitation.StateError
		fieldErr      *contact.FieldError
		validationErr contact.ValidationErrors
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &stateErr):
		return fiber.StatusConflict, fiber.Map{
			"error":   "invalid_state",
			"message": stateErr.Error(),
			"status":  stateErr.Status,
		}
	case errors.As(err, &fieldErr):
		return fiber.StatusUnprocessableEntity, fiber.Map{
			"error":   "immutable_field",
			"message": fieldErr.Error(),
			"field":   fieldErr.Field,
		}
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, fiber.Map{
			"error":   "validation",
			"message": "Some fields are not valid",
			"errors":  validationErr,
		}
	case errors.Is(err, sentinel.ErrNotFound):
		return fiber.StatusNotFound, fiber.Map{"error": "not_found", "message": "Not found"}
	case errors.Is(err, sentinel.ErrInvalidState):
		return fiber.StatusConflict, fiber.Map{"error": "invalid_state", "message": "Invalid state"}
	case errors.Is(err, sentinel.ErrAlreadyExists):
		return fiber.StatusConflict, fiber.Map{"error": "already_exists", "message": "Already exists"}
	case errors.Is(err, sentinel.ErrConflict):
		return fiber.StatusConflict, fiber.Map{"error": "conflict", "message": "The record was modified concurrently, try again"}
	case errors.Is(err, sentinel.ErrImmutableField):
		return fiber.StatusUnprocessableEntity, fiber.Map{"error": "immutable_field", "message": "Field cannot be changed"}
	case errors.Is(err, sentinel.ErrValidation):
		return fiber.StatusBadRequest, fiber.Map{"error": "validation", "message": "Some fields are not valid"}
	case errors.Is(err, sentinel.ErrTokenInvalid):
		return fiber.StatusBadRequest, fiber.Map{"error": "token_invalid", "message": "Invalid invitation token"}
	case errors.Is(err, sentinel.ErrTokenExpired):
		return fiber.StatusGone, fiber.Map{"error": "token_expired", "message": "Invitation token has expired"}
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiber.Map{"error": errorCode(fiberErr.Code), "message": fiberErr.Message}
	}

	return fiber.StatusInternalServerError, fiber.Map{"error": "internal", "message": "Internal Server Error"}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusForbidden:
		return "forbidden"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusBadRequest:
		return "bad_request"
	case fiber.StatusConflict:
		return "invalid_state"
	}
	return "error"
}
