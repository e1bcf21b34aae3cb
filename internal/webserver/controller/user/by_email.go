package user

import "github.com/gofiber/fiber/v2"

// ByEmail returns the id and name of the account activated through an
// invitation for the given email, so that forms can be auto-filled
func (u *Controller) ByEmail(c *fiber.Ctx) error {
	summary, err := u.linker.FindActivatedByEmail(c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
