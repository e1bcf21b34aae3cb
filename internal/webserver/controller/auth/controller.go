package auth

import (
	"time"

	"github.com/svera/camposanto/internal/i18n"
	"github.com/svera/camposanto/internal/token"
	"github.com/svera/camposanto/internal/webserver/model"
)

type authRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByUuid(uuid string) (*model.User, error)
	FindByRecoverySelector(selector string) (*model.User, error)
	Update(user *model.User) error
	ResetPassword(user *model.User, passwordHash string) error
}

type tokenCodec interface {
	NewInvitation() (token.Invitation, error)
	HashPassword(password string) (string, error)
}

type recoveryEmail interface {
	Send(address, subject, body string) error
}

type Controller struct {
	repository authRepository
	codec      tokenCodec
	sender     recoveryEmail
	translator i18n.Translator
	config     Config
	now        func() time.Time
}

type Config struct {
	Secret            []byte
	MinPasswordLength int
	SessionTimeout    time.Duration
	RecoveryTimeout   time.Duration
	FQDN              string
}

func NewController(repository authRepository, codec tokenCodec, sender recoveryEmail, cfg Config, translator i18n.Translator) *Controller {
	return &Controller{
		repository: repository,
		codec:      codec,
		sender:     sender,
		translator: translator,
		config:     cfg,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}
