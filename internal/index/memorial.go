package index

import (
	"strings"
	"time"

	"github.com/svera/camposanto/internal/webserver/model"
)

const dayLayout = "2006-01-02"

// Memorial is the document stored in the index for each public burial record
type Memorial struct {
	FullName string
	Nickname string
	Plot     string
	Dates    string
	DeathDay string
	Public   bool
}

func NewMemorial(record *model.BurialRecord) Memorial {
	memorial := Memorial{
		FullName: record.FullName(),
		Nickname: record.Nickname,
		DeathDay: day(record.DeathDate),
		Public:   record.IsPubliclySearchable,
	}

	if record.Plot != nil {
		memorial.Plot = record.Plot.Identifier()
	}

	dates := make([]string, 0, 3)
	for _, date := range []*time.Time{record.BirthDate, record.DeathDate, record.BurialDate} {
		if date != nil {
			dates = append(dates, day(date))
		}
	}
	memorial.Dates = strings.Join(dates, " ")

	return memorial
}

func day(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(dayLayout)
}
