package model

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/result"
	"github.com/svera/camposanto/internal/sentinel"
	"gorm.io/gorm"
)

type BurialRecordRepository struct {
	DB *gorm.DB
}

func (b *BurialRecordRepository) Create(record *BurialRecord) error {
	if result := b.DB.Create(record); result.Error != nil {
		log.Errorf("error creating burial record: %s", result.Error)
		return result.Error
	}
	return nil
}

// Update persists the record fields and its plot. Contacts are managed through
// ContactRepository and are never written from here.
func (b *BurialRecordRepository) Update(record *BurialRecord) error {
	if record.Plot != nil {
		if result := b.DB.Save(record.Plot); result.Error != nil {
			log.Errorf("error updating plot: %s", result.Error)
			return result.Error
		}
		record.PlotID = &record.Plot.ID
	}
	result := b.DB.Model(record).
		Select("FirstName", "MiddleName", "LastName", "Suffix", "Nickname", "BirthDate",
			"DeathDate", "BurialDate", "Obituary", "PhotoPath", "IsPubliclySearchable", "PlotID").
		Updates(record)
	if result.Error != nil {
		log.Errorf("error updating burial record: %s", result.Error)
		return result.Error
	}
	return nil
}

// Touch bumps the record version only if nobody else did since it was read.
// Every mutation of a record's invitations or QR codes calls it inside the same
// transaction, so concurrent writers on one record cannot both commit.
func (b *BurialRecordRepository) Touch(record *BurialRecord) error {
	result := b.DB.Model(&BurialRecord{}).
		Where("id = ? AND version = ?", record.ID, record.Version).
		Update("version", gorm.Expr("version + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return sentinel.ErrConflict
	}
	record.Version++
	return nil
}

func (b *BurialRecordRepository) FindByUuid(uuid string) (*BurialRecord, error) {
	var record BurialRecord

	result := b.withAssociations().Where("uuid = ?", uuid).First(&record)
	if result.Error != nil {
		return nil, notFound(result.Error, "burial record")
	}
	return &record, nil
}

func (b *BurialRecordRepository) FindByID(id uint) (*BurialRecord, error) {
	var record BurialRecord

	result := b.withAssociations().Where("id = ?", id).First(&record)
	if result.Error != nil {
		return nil, notFound(result.Error, "burial record")
	}
	return &record, nil
}

// FindPublicByUuids returns the records among uuids flagged as publicly
// searchable, in no particular order
func (b *BurialRecordRepository) FindPublicByUuids(uuids []string) ([]BurialRecord, error) {
	records := make([]BurialRecord, 0, len(uuids))
	if len(uuids) == 0 {
		return records, nil
	}

	result := b.DB.Preload("Plot").
		Where("uuid IN ? AND is_publicly_searchable = ?", uuids, true).
		Find(&records)
	if result.Error != nil {
		log.Errorf("error finding public burial records: %s", result.Error)
		return nil, result.Error
	}
	return records, nil
}

// ListPublic returns all records flagged as publicly searchable
func (b *BurialRecordRepository) ListPublic() ([]BurialRecord, error) {
	var records []BurialRecord

	result := b.DB.Preload("Plot").Where("is_publicly_searchable = ?", true).Order("id ASC").Find(&records)
	if result.Error != nil {
		log.Errorf("error listing public burial records: %s", result.Error)
		return nil, result.Error
	}
	return records, nil
}

func (b *BurialRecordRepository) List(page int, resultsPerPage int) (result.Paginated[[]BurialRecord], error) {
	var records []BurialRecord

	res := b.DB.Preload("Plot").Scopes(Paginate(page, resultsPerPage)).
		Order("last_name ASC, first_name ASC, id ASC").
		Find(&records)
	if res.Error != nil {
		log.Errorf("error listing burial records: %s", res.Error)
		return result.Paginated[[]BurialRecord]{}, res.Error
	}

	return result.NewPaginated(
		resultsPerPage,
		page,
		int(b.Total()),
		records,
	), nil
}

func (b *BurialRecordRepository) Total() int64 {
	var totalRows int64
	b.DB.Model(&BurialRecord{}).Count(&totalRows)
	return totalRows
}

func (b *BurialRecordRepository) withAssociations() *gorm.DB {
	return b.DB.Preload("Plot").Preload("Contacts").Preload("Contacts.User")
}
