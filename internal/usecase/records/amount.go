package records

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount coerces a display string to whole currency units. Accepted
// forms include plain integers, es-AR grouped values ("80.000",
// "1.234,56") and a leading currency sign. Anything that cannot be read
// as a number coerces to 0 and is left to validation to reject.
func ParseAmount(raw string) int64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}

	switch {
	case strings.Contains(s, ","):
		// Dots are thousands separators, the comma starts the decimals.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	case strings.Count(s, ".") == 1:
		// A lone dot followed by exactly three digits reads as a
		// thousands separator, not a decimal point.
		if i := strings.Index(s, "."); len(s)-i-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.Round(0).IntPart()
}
