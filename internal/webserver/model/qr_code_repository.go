package model

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/sentinel"
	"gorm.io/gorm"
)

type QRCodeRepository struct {
	DB *gorm.DB
}

func (q *QRCodeRepository) Create(code *QRCode) error {
	if result := q.DB.Create(code); result.Error != nil {
		log.Errorf("error creating QR code: %s", result.Error)
		return result.Error
	}
	return nil
}

func (q *QRCodeRepository) FindActiveByRecord(recordID uint) (*QRCode, error) {
	var code QRCode

	result := q.DB.Where("burial_record_id = ? AND active = ?", recordID, true).First(&code)
	if result.Error != nil {
		return nil, notFound(result.Error, "QR code")
	}
	return &code, nil
}

func (q *QRCodeRepository) FindByCode(code string) (*QRCode, error) {
	var qr QRCode

	result := q.DB.Where("code = ?", code).First(&qr)
	if result.Error != nil {
		return nil, notFound(result.Error, "QR code")
	}
	return &qr, nil
}

// Deactivate switches an active code off. It fails with sentinel.ErrConflict
// if the code was not active anymore.
func (q *QRCodeRepository) Deactivate(code *QRCode, at time.Time) error {
	result := q.DB.Model(&QRCode{}).
		Where("id = ? AND active = ?", code.ID, true).
		Updates(map[string]any{"active": false, "deactivated_at": at})
	if result.Error != nil {
		log.Errorf("error deactivating QR code: %s", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return sentinel.ErrConflict
	}

	code.Active = false
	code.DeactivatedAt = &at
	return nil
}
