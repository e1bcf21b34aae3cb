package webserver

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/spf13/afero"
	"github.com/svera/camposanto/internal/account"
	"github.com/svera/camposanto/internal/burial"
	"github.com/svera/camposanto/internal/contact"
	"github.com/svera/camposanto/internal/i18n"
	"github.com/svera/camposanto/internal/index"
	"github.com/svera/camposanto/internal/invitation"
	"github.com/svera/camposanto/internal/public"
	"github.com/svera/camposanto/internal/qrcode"
	"github.com/svera/camposanto/internal/token"
	"github.com/svera/camposanto/internal/webserver/controller"
	"github.com/svera/camposanto/internal/webserver/controller/auth"
	burialcontroller "github.com/svera/camposanto/internal/webserver/controller/burial"
	invitationcontroller "github.com/svera/camposanto/internal/webserver/controller/invitation"
	publiccontroller "github.com/svera/camposanto/internal/webserver/controller/public"
	qrcodecontroller "github.com/svera/camposanto/internal/webserver/controller/qrcode"
	"github.com/svera/camposanto/internal/webserver/controller/user"
	"github.com/svera/camposanto/internal/webserver/infrastructure"
	"github.com/svera/camposanto/internal/webserver/model"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type Controllers struct {
	Auth                  *auth.Controller
	Users                 *user.Controller
	BurialRecords         *burialcontroller.Controller
	Invitations           *invitationcontroller.Controller
	QRCodes               *qrcodecontroller.Controller
	Public                *publiccontroller.Controller
	Views                 *html.Engine
	Languages             []string
	RequireAuthentication fiber.Handler
}

// Services exposes the domain services behind the controllers, so that
// callers can swap their clocks or reuse them outside HTTP
type Services struct {
	Invitations   *invitation.Service
	Contacts      *contact.Registry
	QRCodes       *qrcode.Registry
	BurialRecords *burial.Service
	Resolver      *public.Resolver
}

func SetupControllers(cfg Config, db *gorm.DB, idx *index.BleveIndexer, sender Sender, appFs afero.Fs) (Controllers, Services) {
	printers, err := i18n.Printers(translationsFS(), cfg.DefaultLanguage)
	if err != nil {
		log.Fatal(err)
	}
	translator := i18n.NewTranslator(printers, cfg.DefaultLanguage)

	languages := make([]string, 0, len(printers))
	languages = append(languages, cfg.DefaultLanguage)
	for lang := range printers {
		if lang != cfg.DefaultLanguage {
			languages = append(languages, lang)
		}
	}
	slices.Sort(languages[1:])

	codec := token.NewCodec(cfg.TemporaryPasswordLength)
	photos := &burial.PhotoStore{Fs: appFs, Dir: cfg.PhotosDir, MaxWidth: cfg.PhotoMaxWidth}

	services := Services{
		Invitations:   invitation.NewService(db, codec, invitation.Config{Timeout: cfg.InvitationTimeout}),
		Contacts:      contact.NewRegistry(db),
		QRCodes:       qrcode.NewRegistry(db, codec, qrcode.Config{PublicURL: controller.BaseURL(cfg.FQDN)}),
		BurialRecords: burial.NewService(db, idx, photos),
		Resolver:      public.NewResolver(db, idx, photos, public.Config{MaxResults: cfg.SearchMaxResults}),
	}

	usersRepository := &model.UserRepository{DB: db}
	invitationsRepository := &model.InvitationRepository{DB: db}

	authCfg := auth.Config{
		MinPasswordLength: cfg.MinPasswordLength,
		Secret:            cfg.JwtSecret,
		SessionTimeout:    cfg.SessionTimeout,
		RecoveryTimeout:   cfg.RecoveryTimeout,
		FQDN:              cfg.FQDN,
	}

	usersCfg := user.Config{
		MinPasswordLength: cfg.MinPasswordLength,
	}

	invitationsCfg := invitationcontroller.Config{
		FQDN:              cfg.FQDN,
		InvitationTimeout: cfg.InvitationTimeout,
	}

	return Controllers{
		Auth:                  auth.NewController(usersRepository, codec, sender, authCfg, translator),
		Users:                 user.NewController(account.NewLinker(usersRepository, invitationsRepository), usersRepository, codec, usersCfg, translator),
		BurialRecords:         burialcontroller.NewController(services.BurialRecords, services.Contacts, services.BurialRecords),
		Invitations:           invitationcontroller.NewController(services.Invitations, sender, invitationsCfg, translator),
		QRCodes:               qrcodecontroller.NewController(services.QRCodes),
		Public:                publiccontroller.NewController(services.Resolver),
		Views:                 infrastructure.TemplateEngine(viewsFS(), translator),
		Languages:             languages,
		RequireAuthentication: RequireAuthentication(cfg.JwtSecret),
	}, services
}
