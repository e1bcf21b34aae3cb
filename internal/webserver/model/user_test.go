package model_test

import (
	"testing"

	"github.com/svera/camposanto/internal/webserver/model"
)

func TestNormalizeEmail(t *testing.T) {
	var cases = []struct {
		name     string
		raw      string
		expected string
	}{
		{"Bare address is lower cased", "JDC@Example.com", "jdc@example.com"},
		{"Surrounding spaces are trimmed", "  jdc@example.com ", "jdc@example.com"},
		{"Blank input", "   ", ""},
		{"Display name is rejected", "Juan <JDC@example.com>", ""},
		{"Angle brackets are rejected", "<jdc@example.com>", ""},
		{"Missing domain is rejected", "jdc@", ""},
		{"Several addresses are rejected", "a@example.com, b@example.com", ""},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			if normalized := model.NormalizeEmail(tcase.raw); normalized != tcase.expected {
				t.Errorf("Wrong email, expected '%s', got '%s'", tcase.expected, normalized)
			}
		})
	}
}
