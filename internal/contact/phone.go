package contact

import "strings"

const defaultPhoneDigits = 10

// phoneDigits maps international calling codes to the number of digits a
// national phone number must have
var phoneDigits = map[string]int{
	"1":   10,
	"33":  9,
	"34":  9,
	"39":  10,
	"44":  10,
	"49":  11,
	"52":  10,
	"61":  9,
	"63":  10,
	"65":  8,
	"81":  10,
	"82":  10,
	"86":  11,
	"91":  10,
	"852": 8,
	"966": 9,
	"971": 9,
}

// RequiredPhoneDigits returns the number of digits required for phone
// numbers under a calling code. Unknown codes require 10 digits.
func RequiredPhoneDigits(countryCode string) int {
	if digits, ok := phoneDigits[normalizeCountryCode(countryCode)]; ok {
		return digits
	}
	return defaultPhoneDigits
}

func normalizeCountryCode(code string) string {
	return strings.TrimPrefix(strings.TrimSpace(code), "+")
}

// normalizePhone strips everything but digits from a phone number. The second
// return value is false if the number contains characters other than digits
// and the usual separators.
func normalizePhone(phone string) (string, bool) {
	var b strings.Builder
	for _, char := range phone {
		switch {
		case char >= '0' && char <= '9':
			b.WriteRune(char)
		case char == ' ' || char == '-' || char == '(' || char == ')' || char == '.':
		default:
			return "", false
		}
	}
	return b.String(), true
}
