package burial

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/burial"
	"github.com/svera/camposanto/internal/contact"
	"github.com/svera/camposanto/internal/webserver/model"
	"github.com/valyala/fasthttp"
	"golang.org/x/exp/slices"
)

type burialPhotos interface {
	SetPhoto(recordUuid string, r io.Reader) (*model.BurialRecord, error)
}

var allowedPhotoTypes = []string{"image/jpeg", "image/jpg", "image/png"}

// UploadPhoto stores the memorial photo of a burial record
func (b *Controller) UploadPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if errors.Is(err, fasthttp.ErrMissingFile) {
		return contact.ValidationErrors{"photo": "No photo provided"}
	}
	if err != nil {
		log.Error(err)
		return fiber.ErrBadRequest
	}

	if !slices.Contains(allowedPhotoTypes, file.Header.Get(fiber.HeaderContentType)) {
		return contact.ValidationErrors{"photo": "Only JPEG and PNG images are allowed"}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return contact.ValidationErrors{"photo": "Only .jpg, .jpeg and .png files are allowed"}
	}

	fileReader, err := file.Open()
	if err != nil {
		log.Error(err)
		return fiber.ErrInternalServerError
	}
	defer fileReader.Close()

	record, err := b.photos.SetPhoto(c.Params("id"), fileReader)
	if err != nil {
		if errors.Is(err, burial.ErrInvalidImage) {
			return contact.ValidationErrors{"photo": "Invalid image file"}
		}
		return err
	}
	return c.JSON(burial.NewView(record))
}
