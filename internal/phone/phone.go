// Package phone normalizes and validates phone numbers against a dialing
// country code. The canonical form produced by Format is the directory key:
// registration and login both format their input first, so "08012345678" and
// "2348012345678" resolve to the same entry.
package phone

import "strings"

const (
	minNationalDigits = 7
	maxNationalDigits = 15
)

// Valid reports whether phone contains a plausible national number for the
// given country code: after stripping non-digits and an already-present
// country-code prefix, the remaining digit count must be within [7, 15].
//
// Known ambiguity: a national number that happens to begin with the same
// digits as the country code is misread as carrying the prefix and has those
// digits stripped before the length check. This matches the deployed
// behavior and is intentionally not special-cased.
func Valid(phone, countryCode string) bool {
	if phone == "" || countryCode == "" {
		return false
	}
	digits := stripNonDigits(phone)
	national := strings.TrimPrefix(digits, countryCode)
	n := len(national)
	return n >= minNationalDigits && n <= maxNationalDigits
}

// Format returns the canonical representation of phone: digits only, one
// leading zero (trunk prefix) removed, country code prepended when absent.
// Format is idempotent: Format(Format(p, c), c) == Format(p, c).
func Format(phone, countryCode string) string {
	if phone == "" || countryCode == "" {
		return ""
	}
	digits := stripNonDigits(phone)
	digits = strings.TrimPrefix(digits, "0")
	if !strings.HasPrefix(digits, countryCode) {
		digits = countryCode + digits
	}
	return digits
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
