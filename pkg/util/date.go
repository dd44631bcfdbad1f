package util

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CanonicalLayout is the UTC millisecond form every upstream timestamp is normalized into.
const CanonicalLayout = "2006-01-02T15:04:05.000"

// ErrMalformedTimestamp is returned when a timestamp does not parse after normalization.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// NormalizeTimestamp parses upstream timestamps that may lack fractional seconds,
// carry only 1-2 fractional digits, or end with a UTC "Z" marker.
// The result is a UTC instant truncated to millisecond precision.
func NormalizeTimestamp(s string) (time.Time, error) {
	canon := CanonicalTimestamp(s)
	// Layout without a fraction still accepts one of any length when parsing.
	t, err := time.ParseInLocation("2006-01-02T15:04:05", canon, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	return t.Truncate(time.Millisecond), nil
}

// CanonicalTimestamp rewrites s into the 3-fractional-digit form without a zone marker.
// It does not validate; NormalizeTimestamp does.
func CanonicalTimestamp(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), "Z")
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s + ".000"
	}
	if frac := len(s) - dot - 1; frac < 3 {
		s += strings.Repeat("0", 3-frac)
	}
	return s
}

// FormatTimestamp renders t in CanonicalLayout, in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(CanonicalLayout)
}
