package burial

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/afero"
)

var ErrInvalidImage = errors.New("invalid image")

// PhotoStore keeps memorial photos as JPEG files, resized to a maximum width
type PhotoStore struct {
	Fs       afero.Fs
	Dir      string
	MaxWidth int
}

// Save decodes a JPEG or PNG image from r and stores it as <name>.jpg,
// returning the stored file name
func (p *PhotoStore) Save(name string, r io.Reader) (string, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidImage, err)
	}

	if p.MaxWidth > 0 && img.Bounds().Dx() > p.MaxWidth {
		img = imaging.Resize(img, p.MaxWidth, 0, imaging.Box)
	}

	if err = p.Fs.MkdirAll(p.Dir, 0755); err != nil {
		return "", err
	}

	fileName := name + ".jpg"
	path := filepath.Join(p.Dir, fileName)
	if exists, _ := afero.Exists(p.Fs, path); exists {
		if err := p.Fs.Remove(path); err != nil {
			log.Error(fmt.Errorf("error removing old photo '%s': %w", path, err))
		}
	}

	if err = p.write(img, path); err != nil {
		return "", fmt.Errorf("error saving photo '%s': %w", path, err)
	}
	return fileName, nil
}

// Read returns the contents of a stored photo
func (p *PhotoStore) Read(fileName string) ([]byte, error) {
	return afero.ReadFile(p.Fs, filepath.Join(p.Dir, filepath.Base(fileName)))
}

func (p *PhotoStore) write(img image.Image, path string) (err error) {
	file, err := p.Fs.Create(path)
	if err != nil {
		return err
	}
	err = imaging.Encode(file, img, imaging.JPEG)
	errc := file.Close()
	if err == nil {
		err = errc
	}
	return err
}
