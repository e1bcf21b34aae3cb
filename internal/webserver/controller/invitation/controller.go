package invitation

import (
	"time"

	"github.com/svera/camposanto/internal/i18n"
	"github.com/svera/camposanto/internal/invitation"
)

type Sender interface {
	Send(address, subject, body string) error
}

type invitationService interface {
	Status(recordUuid string) (invitation.View, error)
	Send(recordUuid string) (invitation.Issued, error)
	Resend(recordUuid string) (invitation.Issued, error)
	Accept(rawToken string) (invitation.Accepted, error)
	Details(rawToken string) (invitation.Details, error)
}

type Config struct {
	FQDN              string
	InvitationTimeout time.Duration
}

type Controller struct {
	service    invitationService
	sender     Sender
	translator i18n.Translator
	config     Config
}

// NewController returns a new instance of the invitations controller
func NewController(service invitationService, sender Sender, cfg Config, translator i18n.Translator) *Controller {
	return &Controller{
		service:    service,
		sender:     sender,
		translator: translator,
		config:     cfg,
	}
}
