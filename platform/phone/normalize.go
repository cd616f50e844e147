// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when the caller has no region preference.
const DefaultRegion = "GB"

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := parse(trimmed, region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// IsValid reports whether input parses to a valid number for region.
func IsValid(input, region string) bool {
	number, err := parse(strings.TrimSpace(input), region)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}

func parse(input, region string) (*phonenumbers.PhoneNumber, error) {
	if region == "" {
		region = DefaultRegion
	}
	return phonenumbers.Parse(input, region)
}
