package lib

import (
	"strconv"
	"strings"
	"time"
)

// ParsePriceToCents parses a free-text money amount ("499.00", "499") into
// cents. Empty or malformed input yields nil so the value is stored as
// absent, never as zero.
func ParsePriceToCents(s string) *uint64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}

	whole, frac, hasFrac := strings.Cut(s, ".")

	units, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return nil
	}

	var cents uint64
	if hasFrac {
		if frac == "" || len(frac) > 2 {
			return nil
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return nil
		}
	}

	total := units*100 + cents
	return &total
}

// ParseOptionalDate parses a YYYY-MM-DD date, returning nil when the input
// is absent or blank
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NormalizeOptionalText trims an optional text field and collapses blank
// input to nil
func NormalizeOptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
