package model

import (
	"strings"
	"time"
)

const (
	SlotPrimary   = "primary"
	SlotSecondary = "secondary"
)

// Contact is a next of kin attached to a burial record. Invitations are only
// issued to the primary contact.
type Contact struct {
	ID             uint `gorm:"primarykey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	BurialRecordID uint   `gorm:"uniqueIndex:idx_contacts_record_slot; not null"`
	Slot           string `gorm:"uniqueIndex:idx_contacts_record_slot; not null"`
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string `gorm:"index"`
	Phone          string
	CountryCode    string
	UserID         *uint `gorm:"index"`
	User           *User `gorm:"constraint:OnDelete:SET NULL"`
}

// Name joins all contact name parts which are not empty
func (c Contact) Name() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// ValidSlot reports whether slot names one of the two contact slots
func ValidSlot(slot string) bool {
	return slot == SlotPrimary || slot == SlotSecondary
}
