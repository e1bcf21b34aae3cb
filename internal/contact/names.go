package contact

import (
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// participles are kept in lower case unless they open the name
var participles = []string{"de", "del", "dela", "delos", "las", "los", "san", "santa", "von", "van", "der"}

// NormalizeName title-cases every word of a name and collapses repeated
// spaces, e. g. "juan  DE la cruz" becomes "Juan de La Cruz"
func NormalizeName(name string) string {
	words := strings.Fields(name)
	caser := cases.Title(language.Und)

	for i, word := range words {
		lower := strings.ToLower(word)
		if i > 0 && slices.Contains(participles, lower) {
			words[i] = lower
			continue
		}
		words[i] = caser.String(word)
	}

	return strings.Join(words, " ")
}
