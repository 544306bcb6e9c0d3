package secval

import (
	"regexp"
	"strings"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 128
)

var (
	passwordUpperRegex   = regexp.MustCompile(`[A-Z]`)
	passwordLowerRegex   = regexp.MustCompile(`[a-z]`)
	passwordDigitRegex   = regexp.MustCompile(`[0-9]`)
	passwordSpecialRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?~` + "`" + `]`)
)

// Frequently compromised passwords, compared case-insensitively.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"passw0rd":    {},
	"123456":      {},
	"1234567":     {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty":      {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"azerty":      {},
	"azerty123":   {},
	"abc123":      {},
	"letmein":     {},
	"welcome":     {},
	"welcome1":    {},
	"iloveyou":    {},
	"sunshine":    {},
	"princess":    {},
	"dragon":      {},
	"monkey":      {},
	"football":    {},
	"baseball":    {},
	"superman":    {},
	"batman":      {},
	"trustno1":    {},
	"admin":       {},
	"admin123":    {},
	"root":        {},
	"secret":      {},
	"master":      {},
	"shadow":      {},
	"111111":      {},
	"000000":      {},
	"123123":      {},
	"654321":      {},
	"666666":      {},
	"google":      {},
	"computer":    {},
	"internet":    {},
}

// PasswordStrength checks a candidate password against the full rule set:
// 8-128 characters with uppercase, lowercase, digit and special character,
// and not on the common-password denylist. On failure the returned
// FieldError lists every violated rule, so the caller can present all
// problems at once instead of one per submission.
func PasswordStrength(v string) error {
	var violations []string

	if len(v) < passwordMinLength {
		violations = append(violations, RuleTooShort)
	}
	if len(v) > passwordMaxLength {
		violations = append(violations, RuleTooLong)
	}
	if !passwordUpperRegex.MatchString(v) {
		violations = append(violations, RuleMissingUpper)
	}
	if !passwordLowerRegex.MatchString(v) {
		violations = append(violations, RuleMissingLower)
	}
	if !passwordDigitRegex.MatchString(v) {
		violations = append(violations, RuleMissingDigit)
	}
	if !passwordSpecialRegex.MatchString(v) {
		violations = append(violations, RuleMissingSpecial)
	}
	if _, found := commonPasswords[strings.ToLower(v)]; found {
		violations = append(violations, RuleCommonPassword)
	}

	if len(violations) > 0 {
		return &FieldError{
			Field:      "password",
			Code:       CodeWeakPassword,
			Message:    "password does not meet strength requirements",
			Violations: violations,
		}
	}
	return nil
}
