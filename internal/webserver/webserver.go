package webserver

import (
	"embed"
	"io/fs"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

//go:embed embedded
var embedded embed.FS

type Config struct {
	Version                 string
	FQDN                    string
	JwtSecret               []byte
	SessionTimeout          time.Duration
	InvitationTimeout       time.Duration
	RecoveryTimeout         time.Duration
	MinPasswordLength       int
	TemporaryPasswordLength int
	SearchMaxResults        int
	PhotosDir               string
	PhotoMaxWidth           int
	DefaultLanguage         string
	AccessLog               bool
}

type Sender interface {
	Send(address, subject, body string) error
	From() string
}

// New builds a new Fiber application and sets up the required routes
func New(cfg Config, controllers Controllers) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 controllers.Views,
		AppName:               cfg.Version,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New())
	}

	routes(app, controllers, controllers.Languages)
	return app
}

func translationsFS() fs.FS {
	dir, err := fs.Sub(embedded, "embedded/translations")
	if err != nil {
		panic(err)
	}
	return dir
}

func viewsFS() fs.FS {
	dir, err := fs.Sub(embedded, "embedded/views")
	if err != nil {
		panic(err)
	}
	return dir
}
