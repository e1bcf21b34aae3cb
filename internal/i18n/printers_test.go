package i18n_test

import (
	"os"
	"testing"

	"github.com/svera/camposanto/internal/i18n"
)

func TestPrinters(t *testing.T) {
	printers, err := i18n.Printers(os.DirFS("testdata"), "en")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(printers) != 2 {
		t.Fatalf("Wrong number of printers, expected 2, got %d", len(printers))
	}

	var cases = []struct {
		name     string
		lang     string
		key      string
		args     []any
		expected string
	}{
		{"Translates a plain key", "es", "Hello", nil, "Hola"},
		{"Translates a key with arguments", "es", "Invitation sent to %s", []any{"jdc@example.com"}, "Invitación enviada a jdc@example.com"},
		{"Falls back to the key when there is no translation", "en", "Invitation sent to %s", []any{"jdc@example.com"}, "Invitation sent to jdc@example.com"},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			got := printers[tcase.lang].Sprintf(tcase.key, tcase.args...)
			if got != tcase.expected {
				t.Errorf("Wrong translation, expected '%s', got '%s'", tcase.expected, got)
			}
		})
	}
}

func TestParseDictRejectsInvalidYAML(t *testing.T) {
	if _, err := i18n.ParseDict([]byte("key: [unclosed")); err == nil {
		t.Errorf("Expected an error parsing invalid yaml, got nil")
	}
}

func TestTranslatorFallsBackToDefaultLanguage(t *testing.T) {
	printers, err := i18n.Printers(os.DirFS("testdata"), "en")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	translator := i18n.NewTranslator(printers, "es")
	if got := translator.T("fr", "Hello"); got != "Hola" {
		t.Errorf("Wrong translation, expected 'Hola', got '%s'", got)
	}
	if got := translator.T("en", "Hello"); got != "Hello" {
		t.Errorf("Wrong translation, expected 'Hello', got '%s'", got)
	}
}
