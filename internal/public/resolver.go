package public

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/microcosm-cc/bluemonday"
	"github.com/svera/camposanto/internal/burial"
	"github.com/svera/camposanto/internal/index"
	"github.com/svera/camposanto/internal/sentinel"
	"github.com/svera/camposanto/internal/webserver/model"
	"gorm.io/gorm"
)

type searcher interface {
	Search(keywords string, limit int) ([]index.Hit, error)
}

type photoReader interface {
	Read(fileName string) ([]byte, error)
}

type Config struct {
	MaxResults int
}

// Profile is the sanitized view of a burial record shown on the public site
type Profile struct {
	Code       string           `json:"code,omitempty"`
	Name       string           `json:"name"`
	Nickname   string           `json:"nickname,omitempty"`
	BirthDate  string           `json:"birth_date,omitempty"`
	DeathDate  string           `json:"death_date,omitempty"`
	BurialDate string           `json:"burial_date,omitempty"`
	Obituary   string           `json:"obituary,omitempty"`
	Photo      string           `json:"photo,omitempty"`
	Plot       *burial.PlotView `json:"plot,omitempty"`
}

// Resolver answers public lookups. Every negative outcome, be it an unknown
// code, an inactive one or a hidden record, is reported as sentinel.ErrNotFound.
type Resolver struct {
	db       *gorm.DB
	searcher searcher
	photos   photoReader
	policy   *bluemonday.Policy
	config   Config
}

func NewResolver(db *gorm.DB, searcher searcher, photos photoReader, cfg Config) *Resolver {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 20
	}
	return &Resolver{
		db:       db,
		searcher: searcher,
		photos:   photos,
		policy:   bluemonday.UGCPolicy(),
		config:   cfg,
	}
}

// ResolveByCode returns the profile behind an active public code
func (r *Resolver) ResolveByCode(code string) (Profile, error) {
	record, err := r.visibleRecord(code)
	if err != nil {
		return Profile{}, err
	}
	return r.profile(record, code), nil
}

// Photo returns the memorial photo behind an active public code, with the
// same visibility rules as ResolveByCode
func (r *Resolver) Photo(code string) ([]byte, error) {
	record, err := r.visibleRecord(code)
	if err != nil {
		return nil, err
	}
	if record.PhotoPath == "" {
		return nil, fmt.Errorf("photo: %w", sentinel.ErrNotFound)
	}

	photo, err := r.photos.Read(record.PhotoPath)
	if err != nil {
		log.Errorf("error reading photo of burial record %s: %s", record.Uuid, err)
		return nil, fmt.Errorf("photo: %w", sentinel.ErrNotFound)
	}
	return photo, nil
}

// Search returns at most limit public profiles matching query, most relevant
// first. A limit out of bounds is replaced by the configured maximum.
func (r *Resolver) Search(query string, limit int) ([]Profile, error) {
	profiles := []Profile{}
	if strings.TrimSpace(query) == "" {
		return profiles, nil
	}
	if limit <= 0 || limit > r.config.MaxResults {
		limit = r.config.MaxResults
	}

	hits, err := r.searcher.Search(query, limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	uuids := make([]string, len(hits))
	for i, hit := range hits {
		uuids[i] = hit.Uuid
	}

	repos := model.NewRepositories(r.db)
	records, err := repos.BurialRecords.FindPublicByUuids(uuids)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	byUuid := make(map[string]*model.BurialRecord, len(records))
	for i := range records {
		byUuid[records[i].Uuid] = &records[i]
	}

	for _, hit := range hits {
		record, ok := byUuid[hit.Uuid]
		if !ok {
			continue
		}
		code := ""
		if qr, err := repos.QRCodes.FindActiveByRecord(record.ID); err == nil {
			code = qr.Code
		}
		profiles = append(profiles, r.profile(record, code))
	}

	return profiles, nil
}

func (r *Resolver) visibleRecord(code string) (*model.BurialRecord, error) {
	repos := model.NewRepositories(r.db)

	qr, err := repos.QRCodes.FindByCode(code)
	if err != nil {
		return nil, collapse(err)
	}
	if !qr.Active {
		return nil, fmt.Errorf("resolve code: %w", sentinel.ErrNotFound)
	}

	record, err := repos.BurialRecords.FindByID(qr.BurialRecordID)
	if err != nil {
		return nil, collapse(err)
	}
	if !record.IsPubliclySearchable {
		return nil, fmt.Errorf("resolve code: %w", sentinel.ErrNotFound)
	}

	return record, nil
}

func (r *Resolver) profile(record *model.BurialRecord, code string) Profile {
	profile := Profile{
		Code:       code,
		Name:       record.FullName(),
		Nickname:   record.Nickname,
		BirthDate:  burial.FormatDate(record.BirthDate),
		DeathDate:  burial.FormatDate(record.DeathDate),
		BurialDate: burial.FormatDate(record.BurialDate),
		Obituary:   strings.TrimSpace(r.policy.Sanitize(record.Obituary)),
		Plot:       burial.NewPlotView(record.Plot),
	}
	if record.PhotoPath != "" && code != "" {
		profile.Photo = "/public/grave/" + code + "/photo"
	}
	return profile
}

func collapse(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return fmt.Errorf("resolve code: %w", sentinel.ErrNotFound)
	}
	return err
}
