package dataset

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// floatPrefix matches the longest leading decimal literal, the same
	// prefix a lenient float parser accepts ("12abc" reads as 12).
	floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

	// numericPattern is the strict shape a first-row value must have for its
	// column to count as numeric: no exponent, no leading '+', no separators.
	numericPattern = regexp.MustCompile(`^-?\d*\.?\d+$`)
)

// ParseFloat reads the longest numeric prefix of s after leading whitespace.
// It returns NaN when no prefix parses and ±Inf for "Infinity" or values
// beyond float64 range. It never fails.
func ParseFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})

	m := floatPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}

	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// ErrRange still yields ±Inf or ±0, which is the wanted value.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsNumericValue reports whether a raw value qualifies its column as numeric.
func IsNumericValue(raw string) bool {
	v := strings.TrimSpace(raw)
	if v == "" || !numericPattern.MatchString(v) {
		return false
	}
	return IsFinite(ParseFloat(v))
}

// DetectNumericColumns returns, in column order, the non-coordinate columns
// of row whose value passes IsNumericValue. Only the given row is sampled.
func DetectNumericColumns(row Row) []string {
	var cols []string
	for _, k := range row.keys {
		if k == LatColumn || k == LonColumn {
			continue
		}
		if IsNumericValue(row.values[k]) {
			cols = append(cols, k)
		}
	}
	return cols
}
