package secval

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a validation failure kind. Codes are stable strings used
// for field-level error translation by the calling application.
type Code string

const (
	CodeInvalidPhone  Code = "invalid_phone"
	CodePhoneTooShort Code = "phone_too_short"
	CodePhoneTooLong  Code = "phone_too_long"

	CodeDangerousContent Code = "dangerous_content"

	CodeInvalidNumeric  Code = "invalid_numeric"
	CodeNegativeValue   Code = "negative_value"
	CodeValueTooHigh    Code = "value_too_high"
	CodeTooManyDecimals Code = "too_many_decimals"

	CodeInvalidDateFormat Code = "invalid_date_format"
	CodeFutureDate        Code = "future_date"

	CodeInvalidEmail        Code = "invalid_email"
	CodeEmailTooLong        Code = "email_too_long"
	CodeEmailDangerousChars Code = "email_dangerous_chars"

	CodeWeakPassword Code = "weak_password"

	CodeNameTooShort       Code = "name_too_short"
	CodeNameTooLong        Code = "name_too_long"
	CodeInvalidNameChars   Code = "invalid_name_chars"
	CodeNameDangerousChars Code = "name_dangerous_chars"

	CodeUsernameTooShort        Code = "username_too_short"
	CodeUsernameTooLong         Code = "username_too_long"
	CodeInvalidUsernameChars    Code = "invalid_username_chars"
	CodeUsernameStartsWithDigit Code = "username_starts_with_digit"
)

// Password rule identifiers reported inside a weak-password failure.
const (
	RuleTooShort       = "too_short"
	RuleTooLong        = "too_long"
	RuleMissingUpper   = "missing_uppercase"
	RuleMissingLower   = "missing_lowercase"
	RuleMissingDigit   = "missing_digit"
	RuleMissingSpecial = "missing_special"
	RuleCommonPassword = "common_password"
)

// FieldError is a typed validation failure for a single input field.
// It is always recoverable: callers surface Message next to the field.
type FieldError struct {
	Field   string
	Code    Code
	Message string

	// Violations lists every broken rule for failures that aggregate
	// multiple checks, such as password strength.
	Violations []string
}

func (e *FieldError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, strings.Join(e.Violations, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsFieldError extracts a *FieldError from err, or nil if err is not one.
func AsFieldError(err error) *FieldError {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

func newErr(field string, code Code, message string) *FieldError {
	return &FieldError{Field: field, Code: code, Message: message}
}
