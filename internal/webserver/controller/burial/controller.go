package burial

import (
	"github.com/svera/camposanto/internal/burial"
	"github.com/svera/camposanto/internal/contact"
	"github.com/svera/camposanto/internal/result"
	"github.com/svera/camposanto/internal/webserver/model"
)

type burialService interface {
	Create(fields burial.Fields) (*model.BurialRecord, error)
	Get(recordUuid string) (*model.BurialRecord, error)
	List(page, resultsPerPage int) (result.Paginated[[]model.BurialRecord], error)
	Update(recordUuid string, fields burial.Fields) (*model.BurialRecord, error)
}

type contactRegistry interface {
	Update(recordUuid, slot string, fields contact.Fields) (*model.Contact, error)
}

type Controller struct {
	service  burialService
	contacts contactRegistry
	photos   burialPhotos
}

func NewController(service burialService, contacts contactRegistry, photos burialPhotos) *Controller {
	return &Controller{service: service, contacts: contacts, photos: photos}
}
