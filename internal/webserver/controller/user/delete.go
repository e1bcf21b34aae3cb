package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/webserver/model"
)

// Delete removes a staff member or an admin. Accounts created through
// invitations stay, as accepted invitations keep pointing at them; they can
// be deactivated instead.
func (u *Controller) Delete(c *fiber.Ctx) error {
	user, err := u.repository.FindByUuid(c.Params("id"))
	if err != nil {
		return err
	}

	lang, _ := c.Locals("Lang").(string)
	if !user.IsOperator() {
		return fiber.NewError(fiber.StatusConflict, u.translator.T(lang, "Accounts created by invitations cannot be deleted, deactivate them instead"))
	}

	if user.Active && user.Role == model.RoleAdmin && u.repository.Admins() <= 1 {
		return fiber.NewError(fiber.StatusForbidden, u.translator.T(lang, "There must be at least one active administrator"))
	}

	if err = u.repository.Delete(user.Uuid); err != nil {
		return fiber.ErrInternalServerError
	}

	log.Infof("user %s deleted", user.Uuid)
	return c.SendStatus(fiber.StatusNoContent)
}
