package public

import (
	"github.com/gofiber/fiber/v2"
	"github.com/svera/camposanto/internal/public"
)

type resolver interface {
	ResolveByCode(code string) (public.Profile, error)
	Photo(code string) ([]byte, error)
	Search(query string, limit int) ([]public.Profile, error)
}

// Controller serves the pages of the public site. It never requires a session.
type Controller struct {
	resolver resolver
}

func NewController(resolver resolver) *Controller {
	return &Controller{resolver: resolver}
}

func (p *Controller) Grave(c *fiber.Ctx) error {
	profile, err := p.resolver.ResolveByCode(c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (p *Controller) Photo(c *fiber.Ctx) error {
	photo, err := p.resolver.Photo(c.Params("code"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(photo)
}

func (p *Controller) Search(c *fiber.Ctx) error {
	profiles, err := p.resolver.Search(c.Query("q"), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"results": profiles})
}
