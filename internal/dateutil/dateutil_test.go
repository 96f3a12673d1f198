package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate() unexpected error: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 15 {
		t.Errorf("ParseDate() = %v, want 2026-03-15", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("ParseDate() should be local midnight, got %v", got)
	}
}

func TestParseDateEmptyDefaultsToToday(t *testing.T) {
	got, err := ParseDate("")
	if err != nil {
		t.Fatalf("ParseDate(\"\") unexpected error: %v", err)
	}
	if FormatDate(got) != Today() {
		t.Errorf("ParseDate(\"\") = %s, want %s", FormatDate(got), Today())
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []string{"15-03-2026", "2026/03/15", "2026-13-01", "not-a-date"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDateFormat", in, err)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid("2026-03-15") {
		t.Error("Valid(2026-03-15) = false")
	}
	if Valid("2026-3-15") {
		t.Error("Valid(2026-3-15) = true")
	}
	if Valid("") {
		t.Error("Valid(\"\") = true")
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2026-03-15", 1, "2026-03-16"},
		{"2026-03-15", -1, "2026-03-14"},
		{"2026-02-28", 1, "2026-03-01"},
		{"2026-12-31", 1, "2027-01-01"},
		{"2026-01-01", -1, "2025-12-31"},
		{"2026-03-15", 0, "2026-03-15"},
	}
	for _, tt := range tests {
		got, err := AddDays(tt.date, tt.n)
		if err != nil {
			t.Errorf("AddDays(%q, %d) unexpected error: %v", tt.date, tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.date, tt.n, got, tt.want)
		}
	}

	if _, err := AddDays("bogus", 1); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("AddDays(bogus) error = %v, want ErrInvalidDateFormat", err)
	}
}
