package qrcode

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	goqrcode "github.com/skip2/go-qrcode"
	"github.com/svera/camposanto/internal/sentinel"
	"github.com/svera/camposanto/internal/token"
	"github.com/svera/camposanto/internal/webserver/model"
	"gorm.io/gorm"
)

const imageSize = 256

type Config struct {
	// PublicURL is the canonical origin of the public site, e. g. https://camposanto.example.com
	PublicURL string
}

// View is the representation of a QR code handed to operators
type View struct {
	Code          string     `json:"code"`
	URL           string     `json:"url"`
	Active        bool       `json:"active"`
	GeneratedAt   time.Time  `json:"generated_at"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
}

func NewView(code *model.QRCode) View {
	return View{
		Code:          code.Code,
		URL:           code.URL,
		Active:        code.Active,
		GeneratedAt:   code.GeneratedAt,
		DeactivatedAt: code.DeactivatedAt,
	}
}

// Registry manages the public codes bound to burial records. A record has at
// most one active code at any time.
type Registry struct {
	db     *gorm.DB
	codec  token.Codec
	config Config
	Now    func() time.Time
}

func NewRegistry(db *gorm.DB, codec token.Codec, cfg Config) *Registry {
	cfg.PublicURL = strings.TrimSuffix(cfg.PublicURL, "/")
	return &Registry{
		db:     db,
		codec:  codec,
		config: cfg,
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Generate mints the first active code of a burial record. It fails with
// sentinel.ErrAlreadyExists if the record has an active code already.
func (r *Registry) Generate(recordUuid string) (*model.QRCode, error) {
	var code *model.QRCode

	err := model.InTransaction(r.db, func(repos model.Repositories) error {
		record, err := repos.BurialRecords.FindByUuid(recordUuid)
		if err != nil {
			return err
		}

		if _, err = repos.QRCodes.FindActiveByRecord(record.ID); err == nil {
			return sentinel.ErrAlreadyExists
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return err
		}

		if err = repos.BurialRecords.Touch(record); err != nil {
			return err
		}

		code, err = r.mint(repos, record)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("generate QR code: %w", err)
	}

	log.Infof("QR code generated for burial record %s", recordUuid)
	return code, nil
}

// Regenerate deactivates the active code of a burial record, if any, and
// mints a new one in the same transaction
func (r *Registry) Regenerate(recordUuid string) (*model.QRCode, error) {
	var code *model.QRCode

	err := model.InTransaction(r.db, func(repos model.Repositories) error {
		record, err := repos.BurialRecords.FindByUuid(recordUuid)
		if err != nil {
			return err
		}

		if err = repos.BurialRecords.Touch(record); err != nil {
			return err
		}

		current, err := repos.QRCodes.FindActiveByRecord(record.ID)
		switch {
		case err == nil:
			if err = repos.QRCodes.Deactivate(current, r.Now()); err != nil {
				return err
			}
		case !errors.Is(err, sentinel.ErrNotFound):
			return err
		}

		code, err = r.mint(repos, record)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("regenerate QR code: %w", err)
	}

	log.Infof("QR code regenerated for burial record %s", recordUuid)
	return code, nil
}

// Deactivate switches a code off, keeping it as history. Deactivating an
// inactive code does nothing.
func (r *Registry) Deactivate(value string) (*model.QRCode, error) {
	var code *model.QRCode

	err := model.InTransaction(r.db, func(repos model.Repositories) error {
		var err error
		code, err = repos.QRCodes.FindByCode(value)
		if err != nil {
			return err
		}
		if !code.Active {
			return nil
		}

		record, err := repos.BurialRecords.FindByID(code.BurialRecordID)
		if err != nil {
			return err
		}
		if err = repos.BurialRecords.Touch(record); err != nil {
			return err
		}

		return repos.QRCodes.Deactivate(code, r.Now())
	})
	if err != nil {
		return nil, fmt.Errorf("deactivate QR code: %w", err)
	}

	return code, nil
}

// Active returns the active code of a burial record
func (r *Registry) Active(recordUuid string) (*model.QRCode, error) {
	repos := model.NewRepositories(r.db)

	record, err := repos.BurialRecords.FindByUuid(recordUuid)
	if err != nil {
		return nil, err
	}
	return repos.QRCodes.FindActiveByRecord(record.ID)
}

// Image renders the public URL of a code as a PNG
func (r *Registry) Image(value string) ([]byte, error) {
	code, err := model.NewRepositories(r.db).QRCodes.FindByCode(value)
	if err != nil {
		return nil, err
	}
	return goqrcode.Encode(code.URL, goqrcode.Medium, imageSize)
}

// URL returns the public address of a grave code
func (r *Registry) URL(code string) string {
	return r.config.PublicURL + "/grave/" + code
}

func (r *Registry) mint(repos model.Repositories, record *model.BurialRecord) (*model.QRCode, error) {
	value, err := r.codec.NewPublicCode()
	if err != nil {
		return nil, err
	}

	code := &model.QRCode{
		Code:           value,
		BurialRecordID: record.ID,
		PlotID:         record.PlotID,
		URL:            r.URL(value),
		Active:         true,
		GeneratedAt:    r.Now(),
	}
	if err = repos.QRCodes.Create(code); err != nil {
		return nil, err
	}
	return code, nil
}
