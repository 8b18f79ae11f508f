// Package phone validates phone numbers at form entry. Numbers are only
// checked when a lead is created or edited, never re-validated during
// filtering or sorting.
package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// ValidationResult contains the result of phone number validation.
type ValidationResult struct {
	IsValid    bool   `json:"isValid"`
	E164Format string `json:"e164Format"`
	Region     string `json:"region"`
}

// Validate parses and validates a phone number. The default region is
// applied for numbers entered without a country prefix.
func Validate(phone, defaultRegion string) (*ValidationResult, error) {
	if phone == "" {
		return nil, fmt.Errorf("phone number cannot be empty")
	}
	if defaultRegion == "" {
		defaultRegion = "IN"
	}

	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone number: %w", err)
	}

	return &ValidationResult{
		IsValid:    phonenumbers.IsValidNumber(parsed),
		E164Format: phonenumbers.Format(parsed, phonenumbers.E164),
		Region:     phonenumbers.GetRegionCodeForNumber(parsed),
	}, nil
}

// IsPlausible reports whether a phone string looks like a dialable
// number. Used as a soft pre-check before forwarding a draft upstream;
// a false result blocks submission with a per-field error.
func IsPlausible(phone, defaultRegion string) bool {
	if defaultRegion == "" {
		defaultRegion = "IN"
	}
	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed) || phonenumbers.IsPossibleNumber(parsed)
}
