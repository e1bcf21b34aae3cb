package burial

import (
	"time"

	"github.com/svera/camposanto/internal/webserver/model"
)

type PlotView struct {
	Identifier string   `json:"identifier"`
	Section    string   `json:"section"`
	Block      string   `json:"block"`
	Row        string   `json:"row"`
	Lot        string   `json:"lot"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type ContactView struct {
	Slot        string `json:"slot"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
	Linked      bool   `json:"linked"`
}

// View is the representation of a burial record handed to operators
type View struct {
	ID                   string        `json:"id"`
	FirstName            string        `json:"first_name"`
	MiddleName           string        `json:"middle_name"`
	LastName             string        `json:"last_name"`
	Suffix               string        `json:"suffix"`
	Nickname             string        `json:"nickname"`
	FullName             string        `json:"full_name"`
	BirthDate            string        `json:"birth_date,omitempty"`
	DeathDate            string        `json:"death_date,omitempty"`
	BurialDate           string        `json:"burial_date,omitempty"`
	Obituary             string        `json:"obituary"`
	HasPhoto             bool          `json:"has_photo"`
	IsPubliclySearchable bool          `json:"is_publicly_searchable"`
	Plot                 *PlotView     `json:"plot,omitempty"`
	Contacts             []ContactView `json:"contacts"`
}

func NewView(record *model.BurialRecord) View {
	view := View{
		ID:                   record.Uuid,
		FirstName:            record.FirstName,
		MiddleName:           record.MiddleName,
		LastName:             record.LastName,
		Suffix:               record.Suffix,
		Nickname:             record.Nickname,
		FullName:             record.FullName(),
		BirthDate:            FormatDate(record.BirthDate),
		DeathDate:            FormatDate(record.DeathDate),
		BurialDate:           FormatDate(record.BurialDate),
		Obituary:             record.Obituary,
		HasPhoto:             record.PhotoPath != "",
		IsPubliclySearchable: record.IsPubliclySearchable,
		Plot:                 NewPlotView(record.Plot),
		Contacts:             make([]ContactView, 0, len(record.Contacts)),
	}

	for _, c := range record.Contacts {
		view.Contacts = append(view.Contacts, ContactView{
			Slot:        c.Slot,
			FirstName:   c.FirstName,
			MiddleName:  c.MiddleName,
			LastName:    c.LastName,
			Email:       c.Email,
			Phone:       c.Phone,
			CountryCode: c.CountryCode,
			Linked:      c.UserID != nil,
		})
	}

	return view
}

func NewPlotView(plot *model.Plot) *PlotView {
	if plot == nil {
		return nil
	}
	return &PlotView{
		Identifier: plot.Identifier(),
		Section:    plot.Section,
		Block:      plot.Block,
		Row:        plot.Row,
		Lot:        plot.Lot,
		Latitude:   plot.Latitude,
		Longitude:  plot.Longitude,
	}
}

// FormatDate renders a date as YYYY-MM-DD, or an empty string if it is unknown
func FormatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(dateLayout)
}
