package user

import (
	"time"

	"github.com/svera/camposanto/internal/account"
	"github.com/svera/camposanto/internal/i18n"
	"github.com/svera/camposanto/internal/result"
	"github.com/svera/camposanto/internal/webserver/model"
)

type accountLinker interface {
	FindActivatedByEmail(email string) (account.Summary, error)
}

type usersRepository interface {
	List(page int, resultsPerPage int, filter string) (result.Paginated[[]model.User], error)
	FindByUuid(uuid string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	Admins() int64
	Delete(uuid string) error
}

type passwordHasher interface {
	HashPassword(password string) (string, error)
}

type Config struct {
	MinPasswordLength int
}

type Controller struct {
	linker     accountLinker
	repository usersRepository
	hasher     passwordHasher
	translator i18n.Translator
	config     Config
}

// NewController returns a new instance of the users controller
func NewController(linker accountLinker, repository usersRepository, hasher passwordHasher, cfg Config, translator i18n.Translator) *Controller {
	return &Controller{
		linker:     linker,
		repository: repository,
		hasher:     hasher,
		translator: translator,
		config:     cfg,
	}
}

// View is the representation of a user handed out to admins. Credentials and
// recovery data are never part of it.
type View struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               int       `json:"role"`
	Active             bool      `json:"active"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewView(user *model.User) View {
	return View{
		ID:                 user.Uuid,
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		Active:             user.Active,
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          user.CreatedAt,
	}
}
