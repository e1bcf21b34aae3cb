package model

import (
	"errors"
	"fmt"

	"github.com/svera/camposanto/internal/sentinel"
	"gorm.io/gorm"
)

// Repositories groups every repository bound to the same database handle, which
// may be a transaction
type Repositories struct {
	BurialRecords *BurialRecordRepository
	Contacts      *ContactRepository
	Invitations   *InvitationRepository
	Users         *UserRepository
	QRCodes       *QRCodeRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		BurialRecords: &BurialRecordRepository{DB: db},
		Contacts:      &ContactRepository{DB: db},
		Invitations:   &InvitationRepository{DB: db},
		Users:         &UserRepository{DB: db},
		QRCodes:       &QRCodeRepository{DB: db},
	}
}

// InTransaction runs fn with repositories bound to a single transaction, which
// is committed if fn returns nil and rolled back otherwise
func InTransaction(db *gorm.DB, fn func(repos Repositories) error) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", entity, sentinel.ErrNotFound)
	}
	return err
}
