package secval

import (
	"strings"
	"time"
)

// Accepted input layouts: ISO, and the slashed/dashed day-first forms used
// by the localized entry screens.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// Date validates a date input against the accepted layouts and rejects
// dates in the future. The parsed date is returned in UTC.
func Date(v string) (time.Time, error) {
	raw := strings.TrimSpace(v)
	if raw == "" {
		return time.Time{}, newErr("date", CodeInvalidDateFormat, "date is required")
	}

	var parsed time.Time
	var ok bool
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			parsed, ok = t, true
			break
		}
	}
	if !ok {
		return time.Time{}, newErr("date", CodeInvalidDateFormat, "date format is invalid")
	}

	if parsed.After(time.Now()) {
		return time.Time{}, newErr("date", CodeFutureDate, "date must not be in the future")
	}

	return parsed.UTC(), nil
}
