package controller

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

// BestLanguage picks the supported language which fits best the
// Accept-Language header of the request. The first supported language is
// used when nothing matches.
func BestLanguage(c *fiber.Ctx, supportedLanguages []string) string {
	if len(supportedLanguages) == 0 {
		return ""
	}

	acceptHeader := c.Get(fiber.HeaderAcceptLanguage)
	tags := make([]language.Tag, len(supportedLanguages))
	for i, lang := range supportedLanguages {
		tags[i] = language.Make(lang)
	}
	languageMatcher := language.NewMatcher(tags)

	t, _, _ := language.ParseAcceptLanguage(acceptHeader)
	_, index, confidence := languageMatcher.Match(t...)
	if confidence == language.No {
		return supportedLanguages[0]
	}
	return supportedLanguages[index]
}
