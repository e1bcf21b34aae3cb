package burial

import (
	"github.com/gofiber/fiber/v2"
	"github.com/svera/camposanto/internal/burial"
	"github.com/svera/camposanto/internal/contact"
)

// UpdateContact replaces the primary or secondary contact of a burial record
func (b *Controller) UpdateContact(c *fiber.Ctx) error {
	var fields contact.Fields
	if err := c.BodyParser(&fields); err != nil {
		return fiber.ErrBadRequest
	}

	if _, err := b.contacts.Update(c.Params("id"), c.Params("slot"), fields); err != nil {
		return err
	}

	record, err := b.service.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(burial.NewView(record))
}
