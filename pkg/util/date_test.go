package util

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeTimestampVariants(t *testing.T) {
	want := time.Date(2024, 10, 10, 10, 10, 10, 500*int(time.Millisecond), time.UTC)
	inputs := []string{
		"2024-10-10T10:10:10.5",
		"2024-10-10T10:10:10.50",
		"2024-10-10T10:10:10.500",
		"2024-10-10T10:10:10.5Z",
		"2024-10-10T10:10:10.500Z",
		"2024-10-10T10:10:10.5001234Z",
	}
	for _, in := range inputs {
		got, err := NormalizeTimestamp(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: got %v want %v", in, got, want)
		}
	}
}

func TestNormalizeTimestampNoFraction(t *testing.T) {
	for _, in := range []string{"2024-10-10T10:10:10", "2024-10-10T10:10:10Z", "2024-10-10T10:10:10."} {
		got, err := NormalizeTimestamp(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		want := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("%q: got %v want %v", in, got, want)
		}
		if got.Location() != time.UTC {
			t.Fatalf("%q: expected UTC location", in)
		}
	}
}

func TestNormalizeTimestampMatchesCanonicalParse(t *testing.T) {
	for _, in := range []string{"2023-01-02T03:04:05", "2023-01-02T03:04:05.1", "2023-01-02T03:04:05.12Z", "2023-01-02T03:04:05.123"} {
		got, err := NormalizeTimestamp(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		direct, err := time.ParseInLocation(CanonicalLayout, CanonicalTimestamp(in), time.UTC)
		if err != nil {
			t.Fatalf("%q: canonical parse: %v", in, err)
		}
		if !got.Equal(direct) {
			t.Fatalf("%q: got %v want %v", in, got, direct)
		}
	}
}

func TestNormalizeTimestampRoundTrip(t *testing.T) {
	orig := time.Date(2024, 2, 29, 23, 59, 59, 7*int(time.Millisecond), time.UTC)
	got, err := NormalizeTimestamp(FormatTimestamp(orig))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !got.Equal(orig) {
		t.Fatalf("round trip mismatch: %v vs %v", got, orig)
	}
}

func TestNormalizeTimestampMalformed(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-10T10:10:10", "2024-10-10 10:10"} {
		if _, err := NormalizeTimestamp(in); !errors.Is(err, ErrMalformedTimestamp) {
			t.Fatalf("%q: expected ErrMalformedTimestamp, got %v", in, err)
		}
	}
}

func TestCanonicalTimestamp(t *testing.T) {
	cases := map[string]string{
		"2024-10-10T10:10:10":     "2024-10-10T10:10:10.000",
		"2024-10-10T10:10:10Z":    "2024-10-10T10:10:10.000",
		"2024-10-10T10:10:10.1":   "2024-10-10T10:10:10.100",
		"2024-10-10T10:10:10.12Z": "2024-10-10T10:10:10.120",
		"2024-10-10T10:10:10.123": "2024-10-10T10:10:10.123",
	}
	for in, want := range cases {
		if got := CanonicalTimestamp(in); got != want {
			t.Fatalf("%q: got %q want %q", in, got, want)
		}
	}
}
