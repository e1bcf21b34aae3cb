package i18n

import "golang.org/x/text/message"

type Translator interface {
	T(lang, key string, values ...any) string
}

type printersTranslator struct {
	printers map[string]*message.Printer
	fallback string
}

// NewTranslator returns a Translator backed by printers. Languages without a
// printer are rendered with the fallback language.
func NewTranslator(printers map[string]*message.Printer, fallback string) Translator {
	return printersTranslator{printers: printers, fallback: fallback}
}

func (p printersTranslator) T(lang, key string, values ...any) string {
	printer, ok := p.printers[lang]
	if !ok {
		printer, ok = p.printers[p.fallback]
	}
	if !ok {
		return message.NewPrinter(message.MatchLanguage(p.fallback)).Sprintf(key, values...)
	}
	return printer.Sprintf(key, values...)
}
