package account

import (
	"errors"
	"fmt"

	"github.com/svera/camposanto/internal/sentinel"
	"github.com/svera/camposanto/internal/webserver/model"
)

type usersRepository interface {
	FindByEmail(email string) (*model.User, error)
}

type invitationsRepository interface {
	AcceptedByUser(userID uint) (bool, error)
}

// Summary is the only user data handed out for form auto-fill
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Linker looks up accounts which have been activated through an invitation.
// It must not be used to take authentication or authorization decisions.
type Linker struct {
	users       usersRepository
	invitations invitationsRepository
}

func NewLinker(users usersRepository, invitations invitationsRepository) *Linker {
	return &Linker{users: users, invitations: invitations}
}

// FindActivatedByEmail returns sentinel.ErrNotFound alike for unknown
// addresses, inactive users and users who never accepted an invitation
func (l *Linker) FindActivatedByEmail(email string) (Summary, error) {
	normalized := model.NormalizeEmail(email)
	if normalized == "" {
		return Summary{}, fmt.Errorf("find account: %w", sentinel.ErrNotFound)
	}

	user, err := l.users.FindByEmail(normalized)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Summary{}, fmt.Errorf("find account: %w", sentinel.ErrNotFound)
		}
		return Summary{}, err
	}

	if !user.Active {
		return Summary{}, fmt.Errorf("find account: %w", sentinel.ErrNotFound)
	}

	accepted, err := l.invitations.AcceptedByUser(user.ID)
	if err != nil {
		return Summary{}, err
	}
	if !accepted {
		return Summary{}, fmt.Errorf("find account: %w", sentinel.ErrNotFound)
	}

	return Summary{ID: user.Uuid, Name: user.Name}, nil
}
