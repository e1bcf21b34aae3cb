package i18n

import (
	"io/fs"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printers returns a message printer per translation found in dir, keyed by
// language code
func Printers(dir fs.FS, fallbackLang string) (map[string]*message.Printer, error) {
	cat, languages, err := NewCatalogFromFolder(dir, fallbackLang)
	if err != nil {
		return nil, err
	}

	printers := make(map[string]*message.Printer, len(languages))
	for _, lang := range languages {
		printers[lang] = message.NewPrinter(language.MustParse(lang), message.Catalog(cat))
	}
	return printers, nil
}
