package model

import (
	"strings"
	"time"
)

// BurialRecord identifies a deceased individual and the plot they rest in.
// Only records with IsPubliclySearchable set may ever leave the server
// through a public endpoint.
type BurialRecord struct {
	ID                   uint `gorm:"primarykey"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Uuid                 string `gorm:"uniqueIndex; not null"`
	FirstName            string `gorm:"not null"`
	MiddleName           string
	LastName             string `gorm:"not null"`
	Suffix               string
	Nickname             string
	BirthDate            *time.Time
	DeathDate            *time.Time
	BurialDate           *time.Time
	Obituary             string
	PhotoPath            string
	IsPubliclySearchable bool `gorm:"not null; default:false"`
	Version              int  `gorm:"not null; default:0"`
	PlotID               *uint `gorm:"uniqueIndex"`
	Plot                 *Plot     `gorm:"constraint:OnDelete:SET NULL"`
	Contacts             []Contact `gorm:"constraint:OnDelete:CASCADE"`
}

// FullName joins all name parts which are not empty
func (b BurialRecord) FullName() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{b.FirstName, b.MiddleName, b.LastName, b.Suffix} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// Contact returns the contact stored in the given slot, or nil if there is none
func (b BurialRecord) Contact(slot string) *Contact {
	for i := range b.Contacts {
		if b.Contacts[i].Slot == slot {
			return &b.Contacts[i]
		}
	}
	return nil
}

// Validate checks the record has the minimum data required and its dates are coherent
func (b BurialRecord) Validate() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(b.FirstName) == "" {
		errs["first_name"] = "First name cannot be empty"
	}

	if strings.TrimSpace(b.LastName) == "" {
		errs["last_name"] = "Last name cannot be empty"
	}

	if len(b.FullName()) > 200 {
		errs["name"] = "Name cannot be longer than 200 characters"
	}

	if b.BirthDate != nil && b.DeathDate != nil && b.DeathDate.Before(*b.BirthDate) {
		errs["death_date"] = "Date of death cannot be before date of birth"
	}

	if b.DeathDate != nil && b.BurialDate != nil && b.BurialDate.Before(*b.DeathDate) {
		errs["burial_date"] = "Burial date cannot be before date of death"
	}

	if b.Plot != nil {
		for field, msg := range b.Plot.Validate() {
			errs["plot."+field] = msg
		}
	}

	return errs
}
