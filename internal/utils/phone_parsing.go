package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// parsePhoneNumber parses a free-text phone number, assuming Brazil when no
// country code is given
func parsePhoneNumber(phoneString string) (*phonenumbers.PhoneNumber, error) {
	cleanPhone := strings.TrimSpace(phoneString)
	if cleanPhone == "" {
		return nil, fmt.Errorf("empty phone number")
	}

	num, err := phonenumbers.Parse(cleanPhone, "BR")
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return nil, fmt.Errorf("invalid phone number: %s", phoneString)
	}

	return num, nil
}

// FormatPhoneForDisplay renders a phone number for the directory listing.
// Brazilian numbers use the national format, e.g. "(31) 99999-8888", other
// countries the international one. Text that is not a recognizable phone
// number is returned unchanged, since the directory never rejects it.
func FormatPhoneForDisplay(phoneString string) string {
	num, err := parsePhoneNumber(phoneString)
	if err != nil {
		return strings.TrimSpace(phoneString)
	}

	if num.GetCountryCode() == 55 {
		return phonenumbers.Format(num, phonenumbers.NATIONAL)
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
