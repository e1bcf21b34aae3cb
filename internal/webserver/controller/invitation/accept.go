package invitation

import "github.com/gofiber/fiber/v2"

type acceptance struct {
	Token string `json:"token" form:"token"`
}

// Details shows the invited email and the temporary password of a pending
// invitation before it is accepted
func (i *Controller) Details(c *fiber.Ctx) error {
	details, err := i.service.Details(c.Query("token"))
	if err != nil {
		return err
	}
	return c.JSON(details)
}

// Accept consumes an invitation token, activating the invited account
func (i *Controller) Accept(c *fiber.Ctx) error {
	var input acceptance
	if err := c.BodyParser(&input); err != nil {
		return fiber.ErrBadRequest
	}

	if _, err := i.service.Accept(input.Token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{})
}
