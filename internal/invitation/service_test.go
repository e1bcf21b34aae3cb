package invitation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/svera/camposanto/internal/invitation"
	"github.com/svera/camposanto/internal/sentinel"
	"github.com/svera/camposanto/internal/token"
	"github.com/svera/camposanto/internal/webserver/infrastructure"
	"github.com/svera/camposanto/internal/webserver/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const timeout = 72 * time.Hour

func TestSendAndAccept(t *testing.T) {
	db, service := setup()
	record := createRecord(t, db, "Family@Example.com")

	view, err := service.Status(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if view.Status != invitation.StatusNotSent {
		t.Errorf("Wrong status, expected '%s', got '%s'", invitation.StatusNotSent, view.Status)
	}

	issued, err := service.Send(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if issued.Email != "family@example.com" {
		t.Errorf("Wrong email, expected 'family@example.com', got '%s'", issued.Email)
	}
	if issued.DeceasedName != "Ana García" {
		t.Errorf("Wrong deceased name, expected 'Ana García', got '%s'", issued.DeceasedName)
	}
	if err = token.ValidatePasswordStrength(issued.Password); err != nil {
		t.Errorf("Expected a strong temporary password, got '%s'", issued.Password)
	}

	view, err = service.Status(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if view.Status != invitation.StatusPending {
		t.Errorf("Wrong status, expected '%s', got '%s'", invitation.StatusPending, view.Status)
	}
	if view.User == nil || view.User.InvitationExpiresAt == nil || view.User.InvitationExpiresAt.Sub(issued.ExpiresAt).Abs() > time.Second {
		t.Errorf("Expected pending view to carry the expiry date, got %+v", view.User)
	}

	t.Run("Sending again is not allowed while pending", func(t *testing.T) {
		_, err := service.Send(record.Uuid)
		assertStateError(t, err, invitation.StatusPending)
	})

	t.Run("Details reveal the temporary password before acceptance", func(t *testing.T) {
		details, err := service.Details(issued.Token)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if details.Email != issued.Email || details.Password != issued.Password {
			t.Errorf("Wrong details, expected '%s'/'%s', got '%s'/'%s'", issued.Email, issued.Password, details.Email, details.Password)
		}
	})

	t.Run("Accepting creates a family user with the temporary password", func(t *testing.T) {
		accepted, err := service.Accept(issued.Token)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !accepted.Created {
			t.Error("Expected a new user to be created")
		}

		user, err := model.NewRepositories(db).Users.FindByUuid(accepted.UserUuid)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if user.Role != model.RoleFamily || !user.MustChangePassword || !user.Active {
			t.Errorf("Wrong user settings, got role %d, must change password %t, active %t", user.Role, user.MustChangePassword, user.Active)
		}
		if !token.CheckPassword(user.PasswordHash, issued.Password) {
			t.Error("Expected user to sign in with the temporary password")
		}
		if user.Name != "Luis García" {
			t.Errorf("Wrong user name, expected 'Luis García', got '%s'", user.Name)
		}

		view, err := service.Status(record.Uuid)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if view.Status != invitation.StatusAccepted {
			t.Errorf("Wrong status, expected '%s', got '%s'", invitation.StatusAccepted, view.Status)
		}
		if view.User == nil || view.User.InvitationAcceptedAt == nil {
			t.Errorf("Expected accepted view to carry the acceptance date, got %+v", view.User)
		}
	})

	t.Run("A token cannot be accepted twice", func(t *testing.T) {
		if _, err := service.Accept(issued.Token); !errors.Is(err, sentinel.ErrTokenInvalid) {
			t.Errorf("Expected an invalid token error, got %v", err)
		}
		if _, err := service.Details(issued.Token); !errors.Is(err, sentinel.ErrTokenInvalid) {
			t.Errorf("Expected an invalid token error, got %v", err)
		}
	})

	t.Run("Accepted invitations cannot be sent or resent", func(t *testing.T) {
		_, err := service.Send(record.Uuid)
		assertStateError(t, err, invitation.StatusAccepted)
		_, err = service.Resend(record.Uuid)
		assertStateError(t, err, invitation.StatusAccepted)
	})

	var stored model.Invitation
	db.Where("burial_record_id = ?", record.ID).First(&stored)
	if stored.SealedPassword != "" || stored.TemporaryPasswordHash != "" {
		t.Error("Expected invitation secrets to be wiped after acceptance")
	}
}

func TestSendWithoutEmail(t *testing.T) {
	db, service := setup()
	record := createRecord(t, db, "")

	_, err := service.Send(record.Uuid)
	assertStateError(t, err, invitation.StatusNoEmail)

	_, err = service.Resend(record.Uuid)
	assertStateError(t, err, invitation.StatusNoEmail)

	if _, err = service.Send(uuid.NewString()); !errors.Is(err, sentinel.ErrNotFound) {
		t.Errorf("Expected a not found error, got %v", err)
	}
}

func TestOneUserPerMailbox(t *testing.T) {
	db, service := setup()

	t.Run("Addresses with a display name are not sendable", func(t *testing.T) {
		record := createRecord(t, db, "Juan <jdc@example.com>")

		_, err := service.Send(record.Uuid)
		assertStateError(t, err, invitation.StatusNoEmail)
	})

	t.Run("Differently cased addresses share the same user", func(t *testing.T) {
		var users []string
		for _, email := range []string{"jdc@example.com", "JDC@Example.com"} {
			record := createRecord(t, db, email)

			issued, err := service.Send(record.Uuid)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if issued.Email != "jdc@example.com" {
				t.Errorf("Wrong email, expected 'jdc@example.com', got '%s'", issued.Email)
			}

			accepted, err := service.Accept(issued.Token)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			users = append(users, accepted.UserUuid)
		}

		if users[0] != users[1] {
			t.Errorf("Expected both invitations to link the same user, got '%s' and '%s'", users[0], users[1])
		}

		var total int64
		db.Model(&model.User{}).Where("email LIKE ?", "%jdc@example.com%").Count(&total)
		if total != 1 {
			t.Errorf("Wrong number of users for the mailbox, expected 1, got %d", total)
		}
	})
}

func TestResendIsOnlyAllowedForPendingOrExpired(t *testing.T) {
	db, service := setup()
	record := createRecord(t, db, "family@example.com")

	_, err := service.Resend(record.Uuid)
	assertStateError(t, err, invitation.StatusNotSent)

	first, err := service.Send(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	second, err := service.Resend(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if second.Token == first.Token || second.Password == first.Password {
		t.Error("Expected resend to mint a new token and password")
	}

	if _, err = service.Accept(first.Token); !errors.Is(err, sentinel.ErrTokenInvalid) {
		t.Errorf("Expected superseded token to be invalid, got %v", err)
	}
	if _, err = service.Accept(second.Token); err != nil {
		t.Errorf("Unexpected error accepting the new token: %v", err)
	}
}

func TestExpiredInvitation(t *testing.T) {
	db, service := setup()
	record := createRecord(t, db, "family@example.com")

	issued, err := service.Send(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	sentAt := service.Now()
	service.Now = func() time.Time {
		return sentAt.Add(timeout + time.Minute)
	}

	view, err := service.Status(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if view.Status != invitation.StatusExpired {
		t.Errorf("Wrong status, expected '%s', got '%s'", invitation.StatusExpired, view.Status)
	}

	if _, err = service.Accept(issued.Token); !errors.Is(err, sentinel.ErrTokenExpired) {
		t.Errorf("Expected an expired token error, got %v", err)
	}
	if _, err = service.Details(issued.Token); !errors.Is(err, sentinel.ErrTokenExpired) {
		t.Errorf("Expected an expired token error, got %v", err)
	}

	_, err = service.Send(record.Uuid)
	assertStateError(t, err, invitation.StatusExpired)

	renewed, err := service.Resend(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !renewed.ExpiresAt.After(issued.ExpiresAt) {
		t.Errorf("Expected new expiry after %s, got %s", issued.ExpiresAt, renewed.ExpiresAt)
	}
	if _, err = service.Accept(renewed.Token); err != nil {
		t.Errorf("Unexpected error accepting renewed invitation: %v", err)
	}
}

func TestInvalidTokens(t *testing.T) {
	db, service := setup()
	record := createRecord(t, db, "family@example.com")

	issued, err := service.Send(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var cases = []struct {
		name  string
		token string
	}{
		{"Empty token", ""},
		{"Malformed token", "not-a-token"},
		{"Unknown selector", uuid.NewString() + ".verifier"},
		{"Tampered verifier", issued.Token + "x"},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			if _, err := service.Accept(tcase.token); !errors.Is(err, sentinel.ErrTokenInvalid) {
				t.Errorf("Expected an invalid token error, got %v", err)
			}
			if _, err := service.Details(tcase.token); !errors.Is(err, sentinel.ErrTokenInvalid) {
				t.Errorf("Expected an invalid token error, got %v", err)
			}
		})
	}
}

func TestEmailChangeInvalidatesPendingInvitation(t *testing.T) {
	db, service := setup()
	record := createRecord(t, db, "family@example.com")

	issued, err := service.Send(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	db.Model(&model.Contact{}).Where("burial_record_id = ?", record.ID).Update("email", "someone.else@example.com")

	view, err := service.Status(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if view.Status != invitation.StatusNotSent {
		t.Errorf("Wrong status, expected '%s', got '%s'", invitation.StatusNotSent, view.Status)
	}

	if _, err = service.Accept(issued.Token); !errors.Is(err, sentinel.ErrTokenInvalid) {
		t.Errorf("Expected an invalid token error, got %v", err)
	}

	reissued, err := service.Send(record.Uuid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reissued.Email != "someone.else@example.com" {
		t.Errorf("Wrong email, expected 'someone.else@example.com', got '%s'", reissued.Email)
	}
}

func TestAcceptLinksExistingUsers(t *testing.T) {
	t.Run("Active users keep their password", func(t *testing.T) {
		db, service := setup()
		record := createRecord(t, db, "family@example.com")
		existing := createUser(t, db, "family@example.com", "existing-password")

		issued, err := service.Send(record.Uuid)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		accepted, err := service.Accept(issued.Token)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if accepted.Created {
			t.Error("Expected no user to be created")
		}
		if accepted.UserUuid != existing.Uuid {
			t.Errorf("Wrong user, expected '%s', got '%s'", existing.Uuid, accepted.UserUuid)
		}

		user, _ := model.NewRepositories(db).Users.FindByUuid(existing.Uuid)
		if !token.CheckPassword(user.PasswordHash, "existing-password") {
			t.Error("Expected existing password to be kept")
		}

		var contact model.Contact
		db.Where("burial_record_id = ? AND slot = ?", record.ID, model.SlotPrimary).First(&contact)
		if contact.UserID == nil || *contact.UserID != existing.ID {
			t.Errorf("Expected contact to be linked to user %d, got %v", existing.ID, contact.UserID)
		}
	})

	t.Run("Inactive users are re-activated with the temporary password", func(t *testing.T) {
		db, service := setup()
		record := createRecord(t, db, "family@example.com")
		existing := createUser(t, db, "family@example.com", "existing-password")
		existing.Active = false
		if err := model.NewRepositories(db).Users.Update(existing); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		issued, err := service.Send(record.Uuid)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, err = service.Accept(issued.Token); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		user, _ := model.NewRepositories(db).Users.FindByUuid(existing.Uuid)
		if !user.Active || !user.MustChangePassword {
			t.Errorf("Expected user to be active and forced to change password, got active %t, must change %t", user.Active, user.MustChangePassword)
		}
		if !token.CheckPassword(user.PasswordHash, issued.Password) {
			t.Error("Expected user password to be the temporary one")
		}
	})
}

func setup() (*gorm.DB, *invitation.Service) {
	db := infrastructure.Connect("file::memory:")
	codec := token.Codec{PasswordLength: 12, PasswordCost: bcrypt.MinCost}
	return db, invitation.NewService(db, codec, invitation.Config{Timeout: timeout})
}

func createRecord(t *testing.T, db *gorm.DB, email string) *model.BurialRecord {
	t.Helper()

	repos := model.NewRepositories(db)
	record := &model.BurialRecord{Uuid: uuid.NewString(), FirstName: "Ana", LastName: "García"}
	if err := repos.BurialRecords.Create(record); err != nil {
		t.Fatalf("Unexpected error creating burial record: %v", err)
	}

	contact := &model.Contact{
		BurialRecordID: record.ID,
		Slot:           model.SlotPrimary,
		FirstName:      "Luis",
		LastName:       "García",
		Email:          email,
	}
	if err := repos.Contacts.Save(contact); err != nil {
		t.Fatalf("Unexpected error creating contact: %v", err)
	}
	return record
}

func createUser(t *testing.T, db *gorm.DB, email, password string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	user := &model.User{
		Uuid:         uuid.NewString(),
		Name:         "Existing",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleFamily,
		Active:       true,
	}
	if err = model.NewRepositories(db).Users.Create(user); err != nil {
		t.Fatalf("Unexpected error creating user: %v", err)
	}
	return user
}

func assertStateError(t *testing.T, err error, status invitation.Status) {
	t.Helper()

	var stateErr *invitation.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("Expected a state error, got %v", err)
	}
	if stateErr.Status != status {
		t.Errorf("Wrong status in error, expected '%s', got '%s'", status, stateErr.Status)
	}
	if !errors.Is(err, sentinel.ErrInvalidState) {
		t.Error("Expected state error to be an invalid state error")
	}
}
