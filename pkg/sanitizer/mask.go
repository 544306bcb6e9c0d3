package sanitizer

import "strings"

// MaskTail keeps the first keep runes of s and replaces the remainder with
// '*', preserving the original rune length. Strings of keep runes or fewer
// are returned unchanged.
func MaskTail(s string, keep int) string {
	runes := []rune(s)
	if keep < 0 {
		keep = 0
	}
	if len(runes) <= keep {
		return s
	}

	var b strings.Builder
	b.Grow(len(runes))
	b.WriteString(string(runes[:keep]))
	b.WriteString(strings.Repeat("*", len(runes)-keep))
	return b.String()
}

// StripPhoneFormatting removes characters commonly used to format phone
// numbers: whitespace, dashes, dots, and parentheses. The leading plus and
// digits pass through untouched.
func StripPhoneFormatting(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '-', '.', '(', ')':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
