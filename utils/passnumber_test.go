package utils

import (
	"errors"
	"testing"
	"time"
)

var day = time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)

func TestDateKey(t *testing.T) {
	key, err := DateKey(day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "05032024" {
		t.Fatalf("expected 05032024, got %s", key)
	}
}

func TestDateKeyZeroTime(t *testing.T) {
	if _, err := DateKey(time.Time{}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateKeyUsesCalendarFieldsNotUTC(t *testing.T) {
	// 23:30 IST on March 5 is already March 5 18:00 UTC; 01:30 IST on
	// March 6 is still March 5 UTC. The key must follow the calendar
	// fields as given, never a converted instant.
	ist := time.FixedZone("IST", 5*3600+30*60)
	lateNight := time.Date(2024, time.March, 6, 1, 30, 0, 0, ist)

	key, err := DateKey(lateNight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "06032024" {
		t.Fatalf("expected 06032024, got %s", key)
	}
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"2024-03-05T10:30:00.000+05:30", "05032024"},
		{"2024-03-05T10:30:00Z", "05032024"},
		{"2024-03-05", "05032024"},
	}

	for _, tt := range tests {
		got, err := ParseDateKey(tt.value)
		if err != nil {
			t.Fatalf("ParseDateKey(%q): unexpected error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Fatalf("ParseDateKey(%q) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestParseDateKeyInvalid(t *testing.T) {
	if _, err := ParseDateKey("05/03/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateKeyRecoverableFromPassNumber(t *testing.T) {
	no, err := NextNumber(day, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	key, _ := DateKey(day)
	if got := no[len(GatePassPrefix) : len(GatePassPrefix)+8]; got != key {
		t.Fatalf("embedded day key %q does not match %q", got, key)
	}
}

func TestNextNumberFirstOfDay(t *testing.T) {
	no, err := NextNumber(day, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if no != "SDLGP05032024-0001" {
		t.Fatalf("expected SDLGP05032024-0001, got %s", no)
	}
}

func TestNextNumberIncrements(t *testing.T) {
	no, err := NextNumber(day, "SDLGP05032024-0007")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if no != "SDLGP05032024-0008" {
		t.Fatalf("expected SDLGP05032024-0008, got %s", no)
	}
}

func TestNextNumberOtherDayRestartsAtOne(t *testing.T) {
	no, err := NextNumber(day, "SDLGP04032024-0042")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if no != "SDLGP05032024-0001" {
		t.Fatalf("expected sequence restart, got %s", no)
	}
}

func TestNextNumberMalformedSuffixRestartsAtOne(t *testing.T) {
	for _, last := range []string{"SDLGP05032024-abcd", "SDLGP05032024-0000", "SDLGP05032024-"} {
		no, err := NextNumber(day, last)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", last, err)
		}
		if no != "SDLGP05032024-0001" {
			t.Fatalf("lastIssued=%q: expected restart at 0001, got %s", last, no)
		}
	}
}

func TestNextNumberWidensPastFourDigits(t *testing.T) {
	no, err := NextNumber(day, "SDLGP05032024-9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if no != "SDLGP05032024-10000" {
		t.Fatalf("expected padding to widen, got %s", no)
	}

	no, err = NextNumber(day, "SDLGP05032024-10000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if no != "SDLGP05032024-10001" {
		t.Fatalf("expected 10001, got %s", no)
	}
}

func TestLastIssuedPicksIntegerMax(t *testing.T) {
	numbers := []string{
		"SDLGP05032024-0002",
		"SDLGP05032024-0010",
		"SDLGP05032024-0009",
		"SDLGP04032024-0999",
		"SDLGP05032024-bogus",
	}

	last, err := LastIssued(day, numbers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// string comparison would pick -0009 over -0010
	if last != "SDLGP05032024-0010" {
		t.Fatalf("expected SDLGP05032024-0010, got %s", last)
	}
}

func TestLastIssuedEmptyWhenNoMatch(t *testing.T) {
	last, err := LastIssued(day, []string{"SDLGP04032024-0001"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != "" {
		t.Fatalf("expected empty, got %s", last)
	}
}

func TestNextNumberAfterLastIssuedRoundTrip(t *testing.T) {
	issued := []string{}
	for i := 0; i < 5; i++ {
		last, err := LastIssued(day, issued)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		next, err := NextNumber(day, last)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		issued = append(issued, next)
	}

	want := []string{
		"SDLGP05032024-0001",
		"SDLGP05032024-0002",
		"SDLGP05032024-0003",
		"SDLGP05032024-0004",
		"SDLGP05032024-0005",
	}
	for i := range want {
		if issued[i] != want[i] {
			t.Fatalf("step %d: expected %s, got %s", i, want[i], issued[i])
		}
	}
}
