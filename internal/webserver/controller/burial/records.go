package burial

import (
	"github.com/gofiber/fiber/v2"
	"github.com/svera/camposanto/internal/burial"
	"github.com/svera/camposanto/internal/webserver/model"
)

func (b *Controller) Create(c *fiber.Ctx) error {
	var fields burial.Fields
	if err := c.BodyParser(&fields); err != nil {
		return fiber.ErrBadRequest
	}

	record, err := b.service.Create(fields)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(burial.NewView(record))
}

func (b *Controller) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	records, err := b.service.List(page, model.ResultsPerPage)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	views := make([]burial.View, len(records.Hits()))
	for i := range records.Hits() {
		views[i] = burial.NewView(&records.Hits()[i])
	}

	return c.JSON(fiber.Map{
		"results":     views,
		"page":        records.Page(),
		"total_pages": records.TotalPages(),
		"total_hits":  records.TotalHits(),
	})
}

func (b *Controller) Detail(c *fiber.Ctx) error {
	record, err := b.service.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(burial.NewView(record))
}

func (b *Controller) Update(c *fiber.Ctx) error {
	var fields burial.Fields
	if err := c.BodyParser(&fields); err != nil {
		return fiber.ErrBadRequest
	}

	record, err := b.service.Update(c.Params("id"), fields)
	if err != nil {
		return err
	}
	return c.JSON(burial.NewView(record))
}
