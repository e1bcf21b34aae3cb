package invitation

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/svera/camposanto/internal/sentinel"
	"github.com/svera/camposanto/internal/token"
	"github.com/svera/camposanto/internal/webserver/model"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type Config struct {
	Timeout time.Duration
}

// Service owns the invitation lifecycle of the primary contact of each burial
// record. Every mutation runs in a transaction which bumps the record version,
// so two operations on the same record cannot both commit.
type Service struct {
	db     *gorm.DB
	codec  token.Codec
	config Config
	Now    func() time.Time
}

// Issued is returned by Send and Resend. It is the only place where the
// token and the temporary password are ever available in clear.
type Issued struct {
	Email         string
	RecipientName string
	DeceasedName  string
	Password      string
	Token         string
	ExpiresAt     time.Time
}

type Accepted struct {
	UserUuid string
	Email    string
	Created  bool
}

// Details is the pre-acceptance preview of an invitation
type Details struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewService(db *gorm.DB, codec token.Codec, cfg Config) *Service {
	return &Service{
		db:     db,
		codec:  codec,
		config: cfg,
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Status returns the current invitation status of a burial record
func (s *Service) Status(recordUuid string) (View, error) {
	repos := model.NewRepositories(s.db)

	record, err := repos.BurialRecords.FindByUuid(recordUuid)
	if err != nil {
		return View{}, err
	}

	status, latest, err := CurrentStatus(repos, record, s.Now())
	if err != nil {
		return View{}, err
	}

	return newView(status, record.Contact(model.SlotPrimary), latest), nil
}

// Send issues the first invitation for the primary contact of a burial record
func (s *Service) Send(recordUuid string) (Issued, error) {
	return s.issue("send", recordUuid, StatusNotSent)
}

// Resend replaces a pending or expired invitation with a new one. The previous
// token stops being valid in the same transaction.
func (s *Service) Resend(recordUuid string) (Issued, error) {
	return s.issue("resend", recordUuid, StatusPending, StatusExpired)
}

func (s *Service) issue(op, recordUuid string, allowed ...Status) (Issued, error) {
	var issued Issued

	err := model.InTransaction(s.db, func(repos model.Repositories) error {
		now := s.Now()

		record, err := repos.BurialRecords.FindByUuid(recordUuid)
		if err != nil {
			return err
		}

		status, _, err := CurrentStatus(repos, record, now)
		if err != nil {
			return err
		}
		if !slices.Contains(allowed, status) {
			return &StateError{Op: op, Status: status}
		}

		if err = repos.BurialRecords.Touch(record); err != nil {
			return err
		}

		if err = repos.Invitations.SupersedePending(record.ID); err != nil {
			return err
		}

		contact := record.Contact(model.SlotPrimary)
		invitation, password, credentials, err := s.mint(record, contact, now)
		if err != nil {
			return err
		}

		if err = repos.Invitations.Create(invitation); err != nil {
			return err
		}

		issued = Issued{
			Email:         invitation.ContactEmail,
			RecipientName: contact.Name(),
			DeceasedName:  record.FullName(),
			Password:      password,
			Token:         credentials.Token,
			ExpiresAt:     invitation.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return Issued{}, fmt.Errorf("%s invitation: %w", op, err)
	}

	log.Infof("invitation issued for burial record %s", recordUuid)
	return issued, nil
}

func (s *Service) mint(record *model.BurialRecord, contact *model.Contact, now time.Time) (*model.Invitation, string, token.Invitation, error) {
	credentials, err := s.codec.NewInvitation()
	if err != nil {
		return nil, "", token.Invitation{}, err
	}

	password, err := s.codec.NewTemporaryPassword()
	if err != nil {
		return nil, "", token.Invitation{}, err
	}

	hash, err := s.codec.HashPassword(password)
	if err != nil {
		return nil, "", token.Invitation{}, err
	}

	sealed, err := token.Seal(credentials.Verifier(), password)
	if err != nil {
		return nil, "", token.Invitation{}, err
	}

	invitation := &model.Invitation{
		BurialRecordID:        record.ID,
		ContactEmail:          model.NormalizeEmail(contact.Email),
		Selector:              credentials.Selector,
		TokenSalt:             credentials.Salt,
		TokenHash:             credentials.Hash,
		TemporaryPasswordHash: hash,
		SealedPassword:        sealed,
		IssuedAt:              now,
		ExpiresAt:             now.Add(s.config.Timeout),
		Status:                model.InvitationPending,
	}

	return invitation, password, credentials, nil
}

// Accept consumes an invitation token. The user for the invited email is
// created, or re-activated with the temporary password if it was inactive,
// and linked to the contact. A token can only be accepted once.
func (s *Service) Accept(rawToken string) (Accepted, error) {
	var accepted Accepted

	selector, verifier, err := token.Split(rawToken)
	if err != nil {
		return Accepted{}, fmt.Errorf("accept invitation: %w", sentinel.ErrTokenInvalid)
	}

	err = model.InTransaction(s.db, func(repos model.Repositories) error {
		now := s.Now()

		invitation, err := pendingInvitation(repos, selector, verifier, now)
		if err != nil {
			return err
		}

		record, err := repos.BurialRecords.FindByID(invitation.BurialRecordID)
		if err != nil {
			return err
		}

		contact := record.Contact(model.SlotPrimary)
		if contact == nil || model.NormalizeEmail(contact.Email) != invitation.ContactEmail {
			return sentinel.ErrTokenInvalid
		}

		if err = repos.BurialRecords.Touch(record); err != nil {
			return err
		}

		user, created, err := s.activateUser(repos, invitation, contact)
		if err != nil {
			return err
		}

		if err = repos.Invitations.MarkAccepted(invitation, user.ID, now); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return sentinel.ErrTokenInvalid
			}
			return err
		}

		if err = repos.Contacts.LinkUser(contact.ID, user.ID); err != nil {
			return err
		}

		accepted = Accepted{UserUuid: user.Uuid, Email: user.Email, Created: created}
		return nil
	})
	if err != nil {
		return Accepted{}, fmt.Errorf("accept invitation: %w", err)
	}

	log.Infof("invitation accepted by user %s", accepted.UserUuid)
	return accepted, nil
}

func (s *Service) activateUser(repos model.Repositories, invitation *model.Invitation, contact *model.Contact) (*model.User, bool, error) {
	user, err := repos.Users.FindByEmail(invitation.ContactEmail)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, err
	}

	if user == nil {
		user = &model.User{
			Uuid:               uuid.NewString(),
			Name:               contact.Name(),
			Email:              invitation.ContactEmail,
			PasswordHash:       invitation.TemporaryPasswordHash,
			Role:               model.RoleFamily,
			MustChangePassword: true,
			Active:             true,
		}
		if err = repos.Users.Create(user); err != nil {
			return nil, false, err
		}
		return user, true, nil
	}

	if !user.Active {
		user.PasswordHash = invitation.TemporaryPasswordHash
		user.MustChangePassword = true
		user.Active = true
		if err = repos.Users.Update(user); err != nil {
			return nil, false, err
		}
	}

	return user, false, nil
}

// Details returns the invited email and temporary password of a pending
// invitation, provided the token is valid
func (s *Service) Details(rawToken string) (Details, error) {
	selector, verifier, err := token.Split(rawToken)
	if err != nil {
		return Details{}, fmt.Errorf("invitation details: %w", sentinel.ErrTokenInvalid)
	}

	invitation, err := pendingInvitation(model.NewRepositories(s.db), selector, verifier, s.Now())
	if err != nil {
		return Details{}, fmt.Errorf("invitation details: %w", err)
	}

	password, err := token.Open(verifier, invitation.SealedPassword)
	if err != nil {
		return Details{}, fmt.Errorf("invitation details: %w", sentinel.ErrTokenInvalid)
	}

	return Details{Email: invitation.ContactEmail, Password: password}, nil
}

// pendingInvitation finds the invitation a token refers to. Unknown, tampered,
// superseded and consumed tokens are all reported as invalid; only a genuine
// pending invitation past its expiry is reported as expired.
func pendingInvitation(repos model.Repositories, selector, verifier string, now time.Time) (*model.Invitation, error) {
	invitation, err := repos.Invitations.FindBySelector(selector)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, sentinel.ErrTokenInvalid
		}
		return nil, err
	}

	if !token.Matches(invitation.TokenSalt, invitation.TokenHash, verifier) {
		return nil, sentinel.ErrTokenInvalid
	}

	if invitation.Status != model.InvitationPending {
		return nil, sentinel.ErrTokenInvalid
	}

	if invitation.ExpiredAt(now) {
		return nil, sentinel.ErrTokenExpired
	}

	return invitation, nil
}
