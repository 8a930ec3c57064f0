// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

var (
	zipCodeRegex = regexp.MustCompile(`^\d{5}$`)
	isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateZipCode checks for a 5-digit US zip code
func ValidateZipCode(zip string) bool {
	return zipCodeRegex.MatchString(zip)
}

// ValidateISODate checks for a YYYY-MM-DD date string
func ValidateISODate(date string) bool {
	return isoDateRegex.MatchString(date)
}
