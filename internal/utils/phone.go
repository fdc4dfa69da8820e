package utils

import (
	"fmt"
	"strings"
)

// DefaultCountryCode is prepended to local numbers that arrive without one
const DefaultCountryCode = "62"

// NormalizePhone reduces a user-entered or WhatsApp-supplied mobile number to
// bare digits with a country code: punctuation and the "+" prefix are
// stripped, and a single leading zero is replaced with the default country
// code. Returns an error only when no digits remain.
func NormalizePhone(raw string) (string, error) {
	var builder strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}
	digits := builder.String()
	if digits == "" {
		return "", fmt.Errorf("no digits in phone number %q", raw)
	}

	if strings.HasPrefix(digits, "0") {
		digits = DefaultCountryCode + strings.TrimLeft(digits, "0")
	}
	return digits, nil
}

// MaskMobile hides the middle digits of a normalized number for list views,
// e.g. "6281234567890" -> "6281*******90". Short numbers are masked entirely.
func MaskMobile(number string) string {
	const keepHead, keepTail = 4, 2
	if len(number) <= keepHead+keepTail {
		return strings.Repeat("*", len(number))
	}
	return number[:keepHead] + strings.Repeat("*", len(number)-keepHead-keepTail) + number[len(number)-keepTail:]
}
