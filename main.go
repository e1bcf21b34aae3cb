package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/afero"
	"github.com/svera/camposanto/internal/index"
	"github.com/svera/camposanto/internal/webserver"
	"github.com/svera/camposanto/internal/webserver/infrastructure"
	"github.com/svera/camposanto/internal/webserver/model"
	"gorm.io/gorm"
)

const batchSize = 100

var version string = "unknown"

func main() {
	var cfg Config

	if err := readConfig(&cfg); err != nil {
		log.Fatal(fmt.Sprintf("Error parsing configuration: %s", err))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatal("Error retrieving user home dir")
	}
	dataDir := filepath.Join(homeDir, ".camposanto")
	cfg.DBPath = withDefault(cfg.DBPath, filepath.Join(dataDir, "camposanto.db"))
	cfg.IndexPath = withDefault(cfg.IndexPath, filepath.Join(dataDir, "index"))
	cfg.PhotosDir = withDefault(cfg.PhotosDir, filepath.Join(dataDir, "photos"))

	for _, dir := range []string{filepath.Dir(cfg.DBPath), filepath.Dir(cfg.IndexPath), cfg.PhotosDir} {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			log.Fatal(fmt.Errorf("Couldn't create %s, exiting", dir))
		}
	}

	run(cfg, afero.NewOsFs())
}

// readConfig loads the YAML file named in CONFIG_FILE, if any, with
// environment variables taking precedence over it
func readConfig(cfg *Config) error {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return cleanenv.ReadConfig(path, cfg)
	}
	return cleanenv.ReadEnv(cfg)
}

func run(cfg Config, appFs afero.Fs) {
	var sender webserver.Sender

	db := infrastructure.Connect(cfg.DBPath)
	idx := openIndex(cfg.IndexPath)
	defer idx.Close()

	reindex(idx, db)

	sender = &infrastructure.NoEmail{}
	if cfg.SmtpServer != "" && cfg.SmtpUser != "" && cfg.SmtpPassword != "" {
		sender = &infrastructure.SMTP{
			Server:   cfg.SmtpServer,
			Port:     cfg.SmtpPort,
			User:     cfg.SmtpUser,
			Password: cfg.SmtpPassword,
		}
	}

	webserverConfig := webserver.Config{
		Version:                 version,
		FQDN:                    cfg.FQDN,
		JwtSecret:               []byte(cfg.JwtSecret),
		SessionTimeout:          time.Duration(cfg.SessionTimeout * float64(time.Hour)),
		InvitationTimeout:       time.Duration(cfg.InvitationTimeout * float64(time.Hour)),
		RecoveryTimeout:         time.Duration(cfg.RecoveryTimeout * float64(time.Hour)),
		MinPasswordLength:       cfg.MinPasswordLength,
		TemporaryPasswordLength: cfg.TemporaryPasswordLength,
		SearchMaxResults:        cfg.SearchMaxResults,
		PhotosDir:               cfg.PhotosDir,
		PhotoMaxWidth:           cfg.PhotoMaxWidth,
		DefaultLanguage:         cfg.DefaultLanguage,
		AccessLog:               cfg.AccessLog,
	}

	controllers, _ := webserver.SetupControllers(webserverConfig, db, idx, sender, appFs)
	app := webserver.New(webserverConfig, controllers)

	log.Printf("Camposanto version %s started listening on port %d\n", version, cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatal(err)
	}
}

func openIndex(path string) *index.BleveIndexer {
	indexFile, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		log.Println("No index found, creating a new one")
		indexFile, err = bleve.New(path, index.Mapping())
	}
	if err != nil {
		log.Fatal(err)
	}
	return index.NewBleve(indexFile)
}

// reindex brings the search index in line with the database, dropping any
// record which stopped being public while the server was down
func reindex(idx *index.BleveIndexer, db *gorm.DB) {
	start := time.Now()

	records, err := model.NewRepositories(db).BurialRecords.ListPublic()
	if err != nil {
		log.Fatal(err)
	}
	if err = idx.Reset(); err != nil {
		log.Fatal(err)
	}
	if err = idx.AddRecords(records, batchSize); err != nil {
		log.Fatal(err)
	}

	log.Printf("Indexed %d public burial records in %s\n", len(records), time.Since(start).Round(time.Millisecond))
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
