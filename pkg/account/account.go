package account

import (
	"strings"
)

// Mask boundaries for account identifiers. Matches the service convention of
// hiding the middle of a phone-number style username.
const (
	maskStart = 3
	maskEnd   = 7
)

// Credential holds one account's login pair. Immutable once parsed; the
// ordering of credentials in the source list is significant (it defines
// cohort membership).
type Credential struct {
	Username string
	Password string
}

// Masked returns the username with the standard identifier range hidden.
// The raw username must never appear in logs or reports.
func (c Credential) Masked() string {
	return Mask(c.Username, maskStart, maskEnd)
}

// Mask replaces the runes at indices [start, end) with '*', leaving the rest
// of the string untouched. Out-of-range bounds are clamped.
func Mask(s string, start, end int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	for i := start; i < end; i++ {
		runes[i] = '*'
	}
	return string(runes)
}

// ParseList splits a whitespace/newline separated flat list of alternating
// username/password tokens into credentials. A malformed trailing entry
// (username with no password) is dropped; the number of dropped entries is
// returned so the caller can log a warning.
func ParseList(raw string) ([]Credential, int) {
	fields := strings.Fields(raw)

	creds := make([]Credential, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		creds = append(creds, Credential{
			Username: fields[i],
			Password: fields[i+1],
		})
	}

	dropped := len(fields) % 2
	return creds, dropped
}
