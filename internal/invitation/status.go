package invitation

import (
	"errors"
	"time"

	"github.com/svera/camposanto/internal/sentinel"
	"github.com/svera/camposanto/internal/webserver/model"
)

type Status string

const (
	StatusNotSent  Status = "not_sent"
	StatusNoEmail  Status = "no_email"
	StatusPending  Status = "pending"
	StatusExpired  Status = "expired"
	StatusAccepted Status = "accepted"
)

// DeriveStatus computes the invitation status of a burial record from its
// primary contact and its latest invitation which has not been superseded.
// Both may be nil. It never touches storage, so expiry is always evaluated
// against now.
func DeriveStatus(contact *model.Contact, invitation *model.Invitation, now time.Time) Status {
	if invitation != nil && invitation.Status == model.InvitationAccepted && contact != nil && contact.UserID != nil {
		return StatusAccepted
	}

	if contact == nil || model.NormalizeEmail(contact.Email) == "" {
		return StatusNoEmail
	}

	if invitation == nil ||
		invitation.Status != model.InvitationPending ||
		invitation.ContactEmail != model.NormalizeEmail(contact.Email) {
		return StatusNotSent
	}

	if invitation.ExpiredAt(now) {
		return StatusExpired
	}

	return StatusPending
}

// CurrentStatus loads what DeriveStatus needs for record through repos, which
// are expected to be bound to the caller's transaction
func CurrentStatus(repos model.Repositories, record *model.BurialRecord, now time.Time) (Status, *model.Invitation, error) {
	latest, err := repos.Invitations.Latest(record.ID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return "", nil, err
		}
		latest = nil
	}

	return DeriveStatus(record.Contact(model.SlotPrimary), latest, now), latest, nil
}

// View is the status of the invitation of a burial record as shown to operators
type View struct {
	Status Status    `json:"status"`
	User   *UserView `json:"user,omitempty"`
}

type UserView struct {
	Email                string     `json:"email"`
	InvitationExpiresAt  *time.Time `json:"invitation_expires_at,omitempty"`
	InvitationAcceptedAt *time.Time `json:"invitation_accepted_at,omitempty"`
}

func newView(status Status, contact *model.Contact, invitation *model.Invitation) View {
	view := View{Status: status}

	switch status {
	case StatusAccepted:
		email := invitation.ContactEmail
		if contact.User != nil {
			email = contact.User.Email
		}
		view.User = &UserView{
			Email:                email,
			InvitationAcceptedAt: invitation.AcceptedAt,
		}
	case StatusPending, StatusExpired:
		expiresAt := invitation.ExpiresAt
		view.User = &UserView{
			Email:               invitation.ContactEmail,
			InvitationExpiresAt: &expiresAt,
		}
	}

	return view
}
