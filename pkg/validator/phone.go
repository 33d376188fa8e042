package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidLength indicates phone number length is not 11 digits
	ErrInvalidLength = errors.New("phone number must be exactly 11 digits")

	// ErrInvalidPrefix indicates phone number doesn't start with a valid Turkish mobile prefix
	ErrInvalidPrefix = errors.New("phone number must start with 050, 053, 054, or 055")

	// ErrInvalidFormat indicates phone number contains invalid characters
	ErrInvalidFormat = errors.New("phone number can only contain digits")

	// ErrEmptyPhone indicates phone number is empty
	ErrEmptyPhone = errors.New("phone number cannot be empty")
)

// validPrefixes contains the Turkish mobile operator prefixes
var validPrefixes = []string{
	"050", // Türk Telekom
	"053", // Turkcell
	"054", // Vodafone
	"055", // Turkcell
}

// phoneRegex matches digits only
var phoneRegex = regexp.MustCompile(`^\d+$`)

// PhoneValidator handles phone number validation
type PhoneValidator struct{}

// NewPhoneValidator creates a new phone validator instance
func NewPhoneValidator() *PhoneValidator {
	return &PhoneValidator{}
}

// Validate validates a Turkish mobile number
// Accepts format: 05321234567 or 0532 123 45 67 or +90 532 123 45 67
// Returns sanitized phone number (digits only) and error if invalid
func (v *PhoneValidator) Validate(phone string) (string, error) {
	if phone == "" {
		return "", ErrEmptyPhone
	}

	sanitized := v.Sanitize(phone)

	if !phoneRegex.MatchString(sanitized) {
		return "", ErrInvalidFormat
	}

	if len(sanitized) != 11 {
		return "", ErrInvalidLength
	}

	if !v.IsValidPrefix(sanitized) {
		return "", ErrInvalidPrefix
	}

	return sanitized, nil
}

// Sanitize removes all non-digit characters from phone number
func (v *PhoneValidator) Sanitize(phone string) string {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.ReplaceAll(phone, "(", "")
	phone = strings.ReplaceAll(phone, ")", "")
	phone = strings.ReplaceAll(phone, "+", "")
	phone = strings.ReplaceAll(phone, ".", "")

	// Remove country code if present (90)
	if strings.HasPrefix(phone, "90") && len(phone) == 12 {
		phone = "0" + phone[2:]
	}

	return phone
}

// IsValidPrefix checks if phone number has a valid Turkish mobile prefix
func (v *PhoneValidator) IsValidPrefix(phone string) bool {
	if len(phone) < 3 {
		return false
	}

	prefix := phone[:3]
	for _, validPrefix := range validPrefixes {
		if prefix == validPrefix {
			return true
		}
	}

	return false
}

// Format formats a phone number in the standard display format: 05XX XXX XX XX
func (v *PhoneValidator) Format(phone string) (string, error) {
	sanitized, err := v.Validate(phone)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s %s %s",
		sanitized[0:4],   // 05XX
		sanitized[4:7],   // XXX
		sanitized[7:9],   // XX
		sanitized[9:11],  // XX
	), nil
}

// IsValid is a convenience method that returns true if phone is valid
func (v *PhoneValidator) IsValid(phone string) bool {
	_, err := v.Validate(phone)
	return err == nil
}
