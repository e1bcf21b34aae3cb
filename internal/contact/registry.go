package contact

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/invitation"
	"github.com/svera/camposanto/internal/webserver/model"
	"gorm.io/gorm"
)

// Fields holds the editable data of a contact
type Fields struct {
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
}

// Registry edits the contacts attached to burial records
type Registry struct {
	db  *gorm.DB
	Now func() time.Time
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		db: db,
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Update replaces the contact in slot of a burial record, creating it if
// needed. Once the invitation of the record has been accepted the email of the
// primary contact cannot change anymore.
func (r *Registry) Update(recordUuid, slot string, fields Fields) (*model.Contact, error) {
	if !model.ValidSlot(slot) {
		return nil, fmt.Errorf("update contact: %w", ValidationErrors{"slot": "Slot must be primary or secondary"})
	}

	normalized, errs := normalize(fields)
	if len(errs) > 0 {
		return nil, fmt.Errorf("update contact: %w", errs)
	}

	var saved *model.Contact
	err := model.InTransaction(r.db, func(repos model.Repositories) error {
		record, err := repos.BurialRecords.FindByUuid(recordUuid)
		if err != nil {
			return err
		}

		current := record.Contact(slot)
		if current == nil {
			current = &model.Contact{BurialRecordID: record.ID, Slot: slot}
		}

		if slot == model.SlotPrimary && model.NormalizeEmail(current.Email) != normalized.Email {
			status, _, err := invitation.CurrentStatus(repos, record, r.Now())
			if err != nil {
				return err
			}
			if status == invitation.StatusAccepted {
				return &FieldError{Field: "email"}
			}
		}

		current.FirstName = normalized.FirstName
		current.MiddleName = normalized.MiddleName
		current.LastName = normalized.LastName
		current.Email = normalized.Email
		current.Phone = normalized.Phone
		current.CountryCode = normalized.CountryCode

		if err = repos.BurialRecords.Touch(record); err != nil {
			return err
		}
		if err = repos.Contacts.Save(current); err != nil {
			return err
		}

		saved = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}

	log.Infof("contact %s of burial record %s updated", slot, recordUuid)
	return saved, nil
}

func normalize(fields Fields) (Fields, ValidationErrors) {
	errs := ValidationErrors{}
	normalized := Fields{
		FirstName:   NormalizeName(fields.FirstName),
		MiddleName:  NormalizeName(fields.MiddleName),
		LastName:    NormalizeName(fields.LastName),
		CountryCode: normalizeCountryCode(fields.CountryCode),
	}

	if strings.TrimSpace(fields.Email) != "" {
		normalized.Email = model.NormalizeEmail(fields.Email)
		if normalized.Email == "" {
			errs["email"] = "Incorrect email address"
		}
	}

	for _, char := range normalized.CountryCode {
		if char < '0' || char > '9' {
			errs["country_code"] = "Country code must only contain digits"
			break
		}
	}

	if strings.TrimSpace(fields.Phone) != "" {
		phone, ok := normalizePhone(fields.Phone)
		required := RequiredPhoneDigits(normalized.CountryCode)
		switch {
		case !ok:
			errs["phone"] = "Phone number can only contain digits"
		case len(phone) != required:
			errs["phone"] = fmt.Sprintf("Phone number must have %d digits", required)
		}
		normalized.Phone = phone
	}

	return normalized, errs
}
