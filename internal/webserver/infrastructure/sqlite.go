package infrastructure

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/svera/camposanto/internal/token"
	"github.com/svera/camposanto/internal/webserver/model"
	"gorm.io/gorm"
)

const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "admin"
)

// Partial unique indexes can't be declared through struct tags
var partialIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_invitations_one_pending ON invitations (burial_record_id) WHERE status = 'pending'",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_qr_codes_one_active ON qr_codes (burial_record_id) WHERE active = 1",
}

func Connect(path string) *gorm.DB {
	if _, err := os.Stat(path); os.IsNotExist(err) && !strings.Contains(path, ":memory:") {
		if _, err = os.Create(path); err != nil {
			log.Fatal(err)
		}
		log.Printf("Created database at %s\n", path)
	}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)), &gorm.Config{
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	// Writers on the same burial record are serialized through a version
	// check inside their transaction. Keeping a single connection also makes
	// in-memory databases shared by every request.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Plot{},
		&model.BurialRecord{},
		&model.Contact{},
		&model.Invitation{},
		&model.QRCode{},
	); err != nil {
		log.Fatal(err)
	}

	for _, statement := range partialIndexes {
		if err := db.Exec(statement).Error; err != nil {
			log.Fatal(err)
		}
	}

	addDefaultAdmin(db)
	return db
}

func addDefaultAdmin(db *gorm.DB) {
	var result int64
	db.Table("users").Count(&result)

	if result == 0 {
		hash, err := token.NewCodec(0).HashPassword(DefaultAdminPassword)
		if err != nil {
			log.Fatal(err)
		}

		user := &model.User{
			Uuid:               uuid.NewString(),
			Name:               "Admin",
			Email:              DefaultAdminEmail,
			PasswordHash:       hash,
			Role:               model.RoleAdmin,
			MustChangePassword: true,
			Active:             true,
		}
		result := db.Create(user)
		if result.Error != nil {
			log.Fatal("Couldn't create default admin")
		}
	}
}
