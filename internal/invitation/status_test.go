package invitation_test

import (
	"testing"
	"time"

	"github.com/svera/camposanto/internal/invitation"
	"github.com/svera/camposanto/internal/webserver/model"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	userID := uint(7)

	withEmail := &model.Contact{Email: "Family@Example.com"}
	linked := &model.Contact{Email: "family@example.com", UserID: &userID}
	linkedWithoutEmail := &model.Contact{UserID: &userID}

	pending := &model.Invitation{ContactEmail: "family@example.com", Status: model.InvitationPending, ExpiresAt: now.Add(time.Hour)}
	expired := &model.Invitation{ContactEmail: "family@example.com", Status: model.InvitationPending, ExpiresAt: now}
	otherEmail := &model.Invitation{ContactEmail: "other@example.com", Status: model.InvitationPending, ExpiresAt: now.Add(time.Hour)}
	accepted := &model.Invitation{ContactEmail: "family@example.com", Status: model.InvitationAccepted, ExpiresAt: now.Add(-time.Hour)}

	var cases = []struct {
		name       string
		contact    *model.Contact
		invitation *model.Invitation
		expected   invitation.Status
	}{
		{"No primary contact", nil, nil, invitation.StatusNoEmail},
		{"Primary contact without email", &model.Contact{FirstName: "Luis"}, nil, invitation.StatusNoEmail},
		{"Primary contact with an invalid email", &model.Contact{Email: "not an email"}, nil, invitation.StatusNoEmail},
		{"Email but no invitation", withEmail, nil, invitation.StatusNotSent},
		{"Pending invitation before expiry", withEmail, pending, invitation.StatusPending},
		{"Pending invitation at its expiry time", withEmail, expired, invitation.StatusExpired},
		{"Pending invitation for a previous email", withEmail, otherEmail, invitation.StatusNotSent},
		{"Accepted invitation linked to a user", linked, accepted, invitation.StatusAccepted},
		{"Accepted invitation survives an email removal", linkedWithoutEmail, accepted, invitation.StatusAccepted},
		{"Accepted invitation without linked user", withEmail, accepted, invitation.StatusNotSent},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			if got := invitation.DeriveStatus(tcase.contact, tcase.invitation, now); got != tcase.expected {
				t.Errorf("Wrong status, expected '%s', got '%s'", tcase.expected, got)
			}
		})
	}
}
