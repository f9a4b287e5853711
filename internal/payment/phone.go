package payment

import (
	"errors"
	"strings"
)

// ErrInvalidPhone rejects numbers that cannot be normalized to the canonical
// Kenyan 254XXXXXXXXX form. Validation runs before any network call.
var ErrInvalidPhone = errors.New("invalid M-Pesa phone number")

// NormalizePhone converts user input to canonical 254XXXXXXXXX form:
// a leading 0 is replaced with 254, a bare 9-digit local number is prefixed
// with 254, and anything that does not end up as 12 digits starting with 254
// is rejected.
func NormalizePhone(raw string) (string, error) {
	digits := digitsOnly(raw)
	switch {
	case strings.HasPrefix(digits, "0"):
		digits = "254" + digits[1:]
	case len(digits) == 9:
		digits = "254" + digits
	}
	if !IsValidKenyanNumber(digits) {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

// IsValidKenyanNumber reports whether msisdn is exactly 12 digits starting
// with 254.
func IsValidKenyanNumber(msisdn string) bool {
	if len(msisdn) != 12 || !strings.HasPrefix(msisdn, "254") {
		return false
	}
	for _, r := range msisdn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
