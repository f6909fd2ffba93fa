package common

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	// local part, "@", and a domain containing a dot
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// digits, spaces, +, -, parentheses
	phonePattern = regexp.MustCompile(`^[\d\s+\-()]+$`)
)

// EmailRule validates the loose email shape accepted by the public forms
var EmailRule = validation.Match(emailPattern).Error("Invalid email format")

// PhoneRule validates the characters accepted in a phone number
var PhoneRule = validation.Match(phonePattern).Error("Invalid phone number format")

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate runs ozzo rules against a single value and wraps the first
// failure as a ValidationError.
func Validate(value interface{}, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

// RequireFields fails with message when any of values is blank
func RequireFields(message string, values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return NewValidationError(message)
		}
	}
	return nil
}

// OneOf fails with message unless value is in allowed
func OneOf(value string, message string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return NewValidationError(message)
}

// ValidateEmail rejects blank or malformed addresses
func ValidateEmail(email string) error {
	return Validate(email, validation.Required.Error("Invalid email format"), EmailRule)
}

// ValidatePhone rejects blank numbers or ones with characters outside the phone charset
func ValidatePhone(phone string) error {
	return Validate(phone, validation.Required.Error("Invalid phone number format"), PhoneRule)
}
