package invitation

import "github.com/gofiber/fiber/v2"

// Status returns the invitation status of the primary contact of a burial record
func (i *Controller) Status(c *fiber.Ctx) error {
	view, err := i.service.Status(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(view)
}
