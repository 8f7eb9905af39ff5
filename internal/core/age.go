package core

import (
	"errors"
	"strconv"
	"strings"
)

// AgeClass is the outcome of classifying a raw age cell.
type AgeClass int

const (
	// AgeValid: a clean base-10 integer within [MinAge, MaxAge].
	AgeValid AgeClass = iota

	// AgeBadFormat: blank, missing, or not a clean integer (decimals,
	// stray characters, unparseable signs).
	AgeBadFormat

	// AgeOutOfRange: a clean integer outside the allowed range.
	AgeOutOfRange
)

// ClassifyAge parses a raw age cell and classifies it. Surrounding
// whitespace is ignored; a single leading sign is accepted. The returned
// value is meaningful only for AgeValid and AgeOutOfRange. Boundary values
// MinAge and MaxAge are valid.
func ClassifyAge(raw string) (int64, AgeClass) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, AgeBadFormat
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Clean digits that merely overflow int64 are a range problem,
		// not a format problem. ParseInt returns the nearest bound.
		if errors.Is(err, strconv.ErrRange) {
			return n, AgeOutOfRange
		}
		return 0, AgeBadFormat
	}

	if n < MinAge || n > MaxAge {
		return n, AgeOutOfRange
	}
	return n, AgeValid
}
