package secval

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/guardkit/pkg/sanitizer"
)

var (
	// Optional 1-4 digit country code followed by a national number of
	// 8-15 digits, neither part starting with zero.
	phoneRegex = regexp.MustCompile(`^(\+?[1-9]\d{0,3})?[1-9]\d{7,14}$`)

	digitsOnlyRegex = regexp.MustCompile(`^\+?\d+$`)

	emailShapeRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]{2,}$`)
)

// emailDangerousChars are rejected outright: they enable header injection
// and markup breakage when the address is echoed into templates or SMTP
// envelopes.
const emailDangerousChars = "<>()[]\\,;:\"'` "

const (
	phoneMinDigits = 8
	phoneMaxDigits = 15

	emailMaxLength = 254
)

// Phone validates an international phone number. Formatting characters
// (spaces, dashes, dots, parentheses) are stripped before validation and
// the normalized number is returned.
//
//	Phone("+226 70 12 34 56") // "+22670123456", nil
func Phone(v string) (string, error) {
	normalized := sanitizer.StripPhoneFormatting(strings.TrimSpace(v))
	if normalized == "" {
		return "", newErr("phone", CodeInvalidPhone, "phone number is required")
	}

	if !digitsOnlyRegex.MatchString(normalized) {
		return "", newErr("phone", CodeInvalidPhone, "phone number contains invalid characters")
	}

	digits := strings.TrimPrefix(normalized, "+")
	if len(digits) < phoneMinDigits {
		return "", newErr("phone", CodePhoneTooShort, "phone number is too short")
	}
	if len(digits) > phoneMaxDigits {
		return "", newErr("phone", CodePhoneTooLong, "phone number is too long")
	}

	if !phoneRegex.MatchString(normalized) {
		return "", newErr("phone", CodeInvalidPhone, "phone number format is invalid")
	}

	return normalized, nil
}

// Email validates a basic email shape, rejecting consecutive dots, a fixed
// dangerous-character set, and addresses longer than 254 characters.
// The address is returned trimmed and lowercased.
func Email(v string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(v))
	if email == "" {
		return "", newErr("email", CodeInvalidEmail, "email address is required")
	}

	if len(email) > emailMaxLength {
		return "", newErr("email", CodeEmailTooLong, "email address is too long")
	}

	if strings.ContainsAny(email, emailDangerousChars) {
		return "", newErr("email", CodeEmailDangerousChars, "email address contains forbidden characters")
	}

	if strings.Contains(email, "..") || !emailShapeRegex.MatchString(email) {
		return "", newErr("email", CodeInvalidEmail, "email address format is invalid")
	}

	return email, nil
}
