package qrcode

import (
	"github.com/gofiber/fiber/v2"
	"github.com/svera/camposanto/internal/qrcode"
	"github.com/svera/camposanto/internal/webserver/model"
)

type registry interface {
	Generate(recordUuid string) (*model.QRCode, error)
	Regenerate(recordUuid string) (*model.QRCode, error)
	Deactivate(code string) (*model.QRCode, error)
	Active(recordUuid string) (*model.QRCode, error)
	Image(code string) ([]byte, error)
}

type Controller struct {
	registry registry
}

func NewController(registry registry) *Controller {
	return &Controller{registry: registry}
}

func (q *Controller) Generate(c *fiber.Ctx) error {
	code, err := q.registry.Generate(c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(qrcode.NewView(code))
}

func (q *Controller) Regenerate(c *fiber.Ctx) error {
	code, err := q.registry.Regenerate(c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(qrcode.NewView(code))
}

func (q *Controller) Deactivate(c *fiber.Ctx) error {
	code, err := q.registry.Deactivate(c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(qrcode.NewView(code))
}

// Active returns the active code of a burial record
func (q *Controller) Active(c *fiber.Ctx) error {
	code, err := q.registry.Active(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(qrcode.NewView(code))
}

// Image renders a code as a printable PNG
func (q *Controller) Image(c *fiber.Ctx) error {
	png, err := q.registry.Image(c.Params("code"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
