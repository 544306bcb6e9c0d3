package secval

import (
	"math"
	"strconv"
	"strings"
)

const (
	numericMax      = 999999999.99
	numericMaxScale = 2
)

// Numeric validates a monetary or quantity input: non-negative, at most
// 999999999.99, with at most two decimal places. Both "." and "," are
// accepted as decimal separators; the parsed value is returned.
func Numeric(v string) (float64, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
	if raw == "" {
		return 0, newErr("numeric", CodeInvalidNumeric, "value is required")
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, newErr("numeric", CodeInvalidNumeric, "value is not a valid number")
	}
	// ParseFloat accepts "NaN" and "Inf", which would slip past the range
	// checks below.
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, newErr("numeric", CodeInvalidNumeric, "value is not a valid number")
	}

	if value < 0 {
		return 0, newErr("numeric", CodeNegativeValue, "value must not be negative")
	}
	if value > numericMax {
		return 0, newErr("numeric", CodeValueTooHigh, "value exceeds the allowed maximum")
	}

	// Scale is checked on the textual form: float comparison cannot tell
	// 10.125 from its nearest 2-decimal neighbour reliably.
	if _, frac, ok := strings.Cut(raw, "."); ok && len(frac) > numericMaxScale {
		return 0, newErr("numeric", CodeTooManyDecimals, "value has too many decimal places")
	}

	return value, nil
}
