// Package secval validates untrusted user input before it reaches the data
// layer. All validators are pure functions: they take the raw value,
// normalize it, and return either the safe form or a typed *FieldError
// carrying a stable failure code for field-level error display.
//
// Validators:
//
//   - Phone: international numbers, formatting stripped, E.164-ish shape
//   - Email: basic shape, dangerous characters and consecutive dots rejected
//   - Text: free text, markup/SQL injection fragments rejected, HTML-escaped
//   - Numeric: non-negative amounts up to 999999999.99, two decimals
//   - Date: ISO and localized day-first layouts, no future dates
//   - Name: 2-50 letters/spaces/hyphens/apostrophes, accents allowed
//   - Username: 3-30 alphanumerics/hyphen/underscore, no leading digit
//   - PasswordStrength: aggregated rule check reporting every violation
//
// Example:
//
//	phone, err := secval.Phone("+226 70 12 34 56")
//	if err != nil {
//	    fe := secval.AsFieldError(err)
//	    // fe.Code == secval.CodePhoneTooShort, etc.
//	}
package secval
