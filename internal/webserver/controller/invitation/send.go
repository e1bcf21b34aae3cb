package invitation

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/invitation"
	"github.com/svera/camposanto/internal/webserver/controller"
)

// Send issues the first invitation for a burial record
func (i *Controller) Send(c *fiber.Ctx) error {
	issued, err := i.service.Send(c.Params("id"))
	if err != nil {
		return err
	}
	return i.deliver(c, issued)
}

// Resend replaces a pending or expired invitation with a new one
func (i *Controller) Resend(c *fiber.Ctx) error {
	issued, err := i.service.Resend(c.Params("id"))
	if err != nil {
		return err
	}
	return i.deliver(c, issued)
}

// deliver mails the invitation and hands the temporary password to the
// operator. This response is the only time the password is shown.
func (i *Controller) deliver(c *fiber.Ctx, issued invitation.Issued) error {
	lang, _ := c.Locals("Lang").(string)

	body, err := i.renderEmail(c, lang, issued)
	if err != nil {
		log.Errorf("error rendering invitation email: %s", err)
	} else {
		subject := i.translator.T(lang, "You have been invited to remember %s", issued.DeceasedName)
		go func(address string) {
			if err := i.sender.Send(address, subject, body); err != nil {
				log.Errorf("error sending invitation email: %s", err)
			}
		}(issued.Email)
	}

	return c.JSON(fiber.Map{
		"message":    i.translator.T(lang, "Invitation sent to %s", issued.Email),
		"email":      issued.Email,
		"password":   issued.Password,
		"expires_at": issued.ExpiresAt,
	})
}

func (i *Controller) renderEmail(c *fiber.Ctx, lang string, issued invitation.Issued) (string, error) {
	views := c.App().Config().Views
	if views == nil {
		return "", fmt.Errorf("no views engine configured")
	}

	var buf bytes.Buffer
	err := views.Render(&buf, "mail/invitation", fiber.Map{
		"Lang":              lang,
		"RecipientName":     issued.RecipientName,
		"DeceasedName":      issued.DeceasedName,
		"Email":             issued.Email,
		"Password":          issued.Password,
		"InvitationLink":    i.invitationLink(issued.Token),
		"InvitationTimeout": strconv.FormatFloat(i.config.InvitationTimeout.Hours(), 'f', -1, 64),
	})
	return buf.String(), err
}

func (i *Controller) invitationLink(token string) string {
	return fmt.Sprintf("%s/invitations/accept?token=%s", controller.BaseURL(i.config.FQDN), url.QueryEscape(token))
}
