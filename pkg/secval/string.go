package secval

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/guardkit/pkg/sanitizer"
)

const (
	nameMinLength = 2
	nameMaxLength = 50

	usernameMinLength = 3
	usernameMaxLength = 30
)

// nameDangerousChars is the explicit blocklist checked before the general
// character-class rule, so script-looking input gets a security-specific
// failure instead of a generic format one.
const nameDangerousChars = "<>&\"/\\;={}[]$%|`"

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Text validates free-form text against script, markup, event-handler and
// SQL-injection fragments. Safe input is returned HTML-escaped.
func Text(v string) (string, error) {
	if sanitizer.ContainsMarkupInjection(v) || sanitizer.ContainsSQLInjection(v) {
		return "", newErr("text", CodeDangerousContent, "text contains forbidden content")
	}
	return sanitizer.EscapeHTML(v), nil
}

// Name validates a person or business name: 2-50 characters, letters
// (including accented), spaces, hyphens, and apostrophes. The value is
// returned trimmed and NFC-normalized so composed and decomposed accents
// compare equal downstream.
func Name(v string) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(v))

	if strings.ContainsAny(name, nameDangerousChars) {
		return "", newErr("name", CodeNameDangerousChars, "name contains forbidden characters")
	}

	runes := []rune(name)
	if len(runes) < nameMinLength {
		return "", newErr("name", CodeNameTooShort, "name is too short")
	}
	if len(runes) > nameMaxLength {
		return "", newErr("name", CodeNameTooLong, "name is too long")
	}

	for _, r := range runes {
		if unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\'' {
			continue
		}
		return "", newErr("name", CodeInvalidNameChars, "name may only contain letters, spaces, hyphens and apostrophes")
	}

	return name, nil
}

// Username validates a login handle: 3-30 characters, alphanumerics,
// hyphens and underscores, not starting with a digit.
func Username(v string) (string, error) {
	username := strings.TrimSpace(v)

	runes := []rune(username)
	if len(runes) < usernameMinLength {
		return "", newErr("username", CodeUsernameTooShort, "username is too short")
	}
	if len(runes) > usernameMaxLength {
		return "", newErr("username", CodeUsernameTooLong, "username is too long")
	}

	if !usernameRegex.MatchString(username) {
		return "", newErr("username", CodeInvalidUsernameChars, "username may only contain letters, digits, hyphens and underscores")
	}

	if unicode.IsDigit(runes[0]) {
		return "", newErr("username", CodeUsernameStartsWithDigit, "username must not start with a digit")
	}

	return username, nil
}
