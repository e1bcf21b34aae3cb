package burial

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/svera/camposanto/internal/result"
	"github.com/svera/camposanto/internal/webserver/model"
	"gorm.io/gorm"
)

type indexer interface {
	Index(record *model.BurialRecord) error
	Remove(uuid string) error
}

// Service manages burial records and keeps the public search index in sync
// with their visibility flag
type Service struct {
	db      *gorm.DB
	indexer indexer
	photos  *PhotoStore
}

func NewService(db *gorm.DB, indexer indexer, photos *PhotoStore) *Service {
	return &Service{db: db, indexer: indexer, photos: photos}
}

func (s *Service) Create(fields Fields) (*model.BurialRecord, error) {
	record := &model.BurialRecord{Uuid: uuid.NewString()}
	if errs := fields.apply(record); len(errs) > 0 {
		return nil, fmt.Errorf("create burial record: %w", errs)
	}

	if err := model.NewRepositories(s.db).BurialRecords.Create(record); err != nil {
		return nil, fmt.Errorf("create burial record: %w", err)
	}

	s.reindex(record)
	return record, nil
}

func (s *Service) Get(recordUuid string) (*model.BurialRecord, error) {
	return model.NewRepositories(s.db).BurialRecords.FindByUuid(recordUuid)
}

func (s *Service) List(page, resultsPerPage int) (result.Paginated[[]model.BurialRecord], error) {
	if page < 1 {
		page = 1
	}
	return model.NewRepositories(s.db).BurialRecords.List(page, resultsPerPage)
}

// Update applies the non-nil fields to a burial record
func (s *Service) Update(recordUuid string, fields Fields) (*model.BurialRecord, error) {
	var record *model.BurialRecord

	err := model.InTransaction(s.db, func(repos model.Repositories) error {
		var err error
		record, err = repos.BurialRecords.FindByUuid(recordUuid)
		if err != nil {
			return err
		}

		if errs := fields.apply(record); len(errs) > 0 {
			return errs
		}

		if err = repos.BurialRecords.Touch(record); err != nil {
			return err
		}
		return repos.BurialRecords.Update(record)
	})
	if err != nil {
		return nil, fmt.Errorf("update burial record: %w", err)
	}

	s.reindex(record)
	return record, nil
}

// SetPhoto replaces the memorial photo of a burial record
func (s *Service) SetPhoto(recordUuid string, r io.Reader) (*model.BurialRecord, error) {
	var record *model.BurialRecord

	err := model.InTransaction(s.db, func(repos model.Repositories) error {
		var err error
		record, err = repos.BurialRecords.FindByUuid(recordUuid)
		if err != nil {
			return err
		}

		fileName, err := s.photos.Save(record.Uuid, r)
		if err != nil {
			return err
		}
		record.PhotoPath = fileName

		if err = repos.BurialRecords.Touch(record); err != nil {
			return err
		}
		return repos.BurialRecords.Update(record)
	})
	if err != nil {
		return nil, fmt.Errorf("set photo: %w", err)
	}

	return record, nil
}

// reindex is run after commit. A failure leaves the index stale but never
// exposes a hidden record, as public search checks the flag again.
func (s *Service) reindex(record *model.BurialRecord) {
	if err := s.indexer.Index(record); err != nil {
		log.Errorf("error indexing burial record %s: %s", record.Uuid, err)
	}
}
