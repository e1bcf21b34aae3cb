package burial

import (
	"strings"
	"time"

	"github.com/svera/camposanto/internal/contact"
	"github.com/svera/camposanto/internal/webserver/model"
)

const dateLayout = "2006-01-02"

type PlotFields struct {
	Section   string   `json:"section"`
	Block     string   `json:"block"`
	Row       string   `json:"row"`
	Lot       string   `json:"lot"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Fields holds the editable data of a burial record. Nil fields are left
// untouched; empty dates clear the stored one.
type Fields struct {
	FirstName            *string     `json:"first_name"`
	MiddleName           *string     `json:"middle_name"`
	LastName             *string     `json:"last_name"`
	Suffix               *string     `json:"suffix"`
	Nickname             *string     `json:"nickname"`
	BirthDate            *string     `json:"birth_date"`
	DeathDate            *string     `json:"death_date"`
	BurialDate           *string     `json:"burial_date"`
	Obituary             *string     `json:"obituary"`
	IsPubliclySearchable *bool       `json:"is_publicly_searchable"`
	Plot                 *PlotFields `json:"plot"`
}

func (f Fields) apply(record *model.BurialRecord) contact.ValidationErrors {
	errs := contact.ValidationErrors{}

	setName(&record.FirstName, f.FirstName)
	setName(&record.MiddleName, f.MiddleName)
	setName(&record.LastName, f.LastName)
	if f.Suffix != nil {
		record.Suffix = strings.TrimSpace(*f.Suffix)
	}
	if f.Nickname != nil {
		record.Nickname = strings.TrimSpace(*f.Nickname)
	}
	if f.Obituary != nil {
		record.Obituary = *f.Obituary
	}
	if f.IsPubliclySearchable != nil {
		record.IsPubliclySearchable = *f.IsPubliclySearchable
	}

	setDate(&record.BirthDate, f.BirthDate, "birth_date", errs)
	setDate(&record.DeathDate, f.DeathDate, "death_date", errs)
	setDate(&record.BurialDate, f.BurialDate, "burial_date", errs)

	if f.Plot != nil {
		if record.Plot == nil {
			record.Plot = &model.Plot{}
		}
		record.Plot.Section = strings.TrimSpace(f.Plot.Section)
		record.Plot.Block = strings.TrimSpace(f.Plot.Block)
		record.Plot.Row = strings.TrimSpace(f.Plot.Row)
		record.Plot.Lot = strings.TrimSpace(f.Plot.Lot)
		record.Plot.Latitude = f.Plot.Latitude
		record.Plot.Longitude = f.Plot.Longitude
	}

	for field, msg := range record.Validate() {
		if _, ok := errs[field]; !ok {
			errs[field] = msg
		}
	}
	return errs
}

func setName(target *string, value *string) {
	if value != nil {
		*target = contact.NormalizeName(*value)
	}
}

func setDate(target **time.Time, value *string, field string, errs contact.ValidationErrors) {
	if value == nil {
		return
	}
	if strings.TrimSpace(*value) == "" {
		*target = nil
		return
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(*value))
	if err != nil {
		errs[field] = "Dates must be in YYYY-MM-DD format"
		return
	}
	*target = &date
}
