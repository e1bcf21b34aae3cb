package model

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Plot is the physical location of a grave inside the cemetery
type Plot struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Section   string
	Block     string
	Row       string
	Lot       string
	Latitude  *float64
	Longitude *float64
}

// Identifier returns the canonical plot identifier, e. g. "a-3-12-4" for
// section A, block 3, row 12, lot 4
func (p Plot) Identifier() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{p.Section, p.Block, p.Row, p.Lot} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return slug.Make(strings.Join(parts, " "))
}

// Validate checks coordinates are inside their valid ranges
func (p Plot) Validate() map[string]string {
	errs := map[string]string{}

	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		errs["latitude"] = "Latitude must be between -90 and 90"
	}

	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		errs["longitude"] = "Longitude must be between -180 and 180"
	}

	if (p.Latitude == nil) != (p.Longitude == nil) {
		errs["coordinates"] = "Latitude and longitude must be set together"
	}

	return errs
}
