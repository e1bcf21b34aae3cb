package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/svera/camposanto/internal/webserver/model"
)

// List lists the users registered in the database, optionally filtered by
// name or email
func (u *Controller) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	users, err := u.repository.List(page, model.ResultsPerPage, c.Query("q"))
	if err != nil {
		return fiber.ErrInternalServerError
	}

	views := make([]View, len(users.Hits()))
	for i := range users.Hits() {
		views[i] = NewView(&users.Hits()[i])
	}

	return c.JSON(fiber.Map{
		"results":     views,
		"page":        users.Page(),
		"total_pages": users.TotalPages(),
		"total_hits":  users.TotalHits(),
		"admins":      u.repository.Admins(),
	})
}

func (u *Controller) Detail(c *fiber.Ctx) error {
	user, err := u.repository.FindByUuid(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(NewView(user))
}
