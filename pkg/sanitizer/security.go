package sanitizer

import (
	"html"
	"regexp"
)

// Patterns that indicate script or markup injection in free-text input.
// All are case-insensitive and match across newlines, since payloads are
// routinely split over multiple lines to evade naive single-line checks.
var markupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b`),
	regexp.MustCompile(`(?is)</script\s*>`),
	regexp.MustCompile(`(?is)<iframe\b`),
	regexp.MustCompile(`(?is)<object\b`),
	regexp.MustCompile(`(?is)<embed\b`),
	regexp.MustCompile(`(?is)javascript\s*:`),
	regexp.MustCompile(`(?is)vbscript\s*:`),
	regexp.MustCompile(`(?is)\bon(?:click|load|error|mouseover|focus|blur|submit|change)\s*=`),
	regexp.MustCompile(`(?is)expression\s*\(`),
}

// Patterns that indicate SQL injection fragments. These target statement
// keywords in suspicious positions rather than bare words, so ordinary prose
// containing "select" or "from" is not rejected.
var sqlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)\bunion\s+(?:all\s+)?select\b`),
	regexp.MustCompile(`(?is)\bselect\s+.+\bfrom\b`),
	regexp.MustCompile(`(?is)\binsert\s+into\b`),
	regexp.MustCompile(`(?is)\bupdate\s+\S+\s+set\b`),
	regexp.MustCompile(`(?is)\bdelete\s+from\b`),
	regexp.MustCompile(`(?is)\bdrop\s+(?:table|database|schema)\b`),
	regexp.MustCompile(`(?is)\btruncate\s+table\b`),
	regexp.MustCompile(`(?is)\bexec(?:ute)?\s*\(`),
	regexp.MustCompile(`(?is)['"]\s*or\s+['"]?\d+['"]?\s*=\s*['"]?\d+`),
	regexp.MustCompile(`(?is);\s*--`),
	regexp.MustCompile(`(?is)\bxp_cmdshell\b`),
}

// ContainsMarkupInjection reports whether s contains script tags, dangerous
// markup, event-handler attributes, or script protocols.
func ContainsMarkupInjection(s string) bool {
	for _, re := range markupPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// ContainsSQLInjection reports whether s contains SQL statement fragments
// commonly used in injection payloads.
func ContainsSQLInjection(s string) bool {
	for _, re := range sqlPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// EscapeHTML escapes HTML special characters so the value is safe to embed
// in markup.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
