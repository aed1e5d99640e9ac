package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GatePassPrefix is the fixed company prefix of every gate pass number.
const GatePassPrefix = "SDLGP"

// ErrInvalidDate is returned when a gate pass date cannot be used to derive
// a day key (zero time, or an unparseable date string).
var ErrInvalidDate = errors.New("invalid gate pass date")

// DateKey returns the DDMMYYYY day key of the date using its calendar
// fields, no timezone conversion.
func DateKey(date time.Time) (string, error) {
	if date.IsZero() {
		return "", ErrInvalidDate
	}
	return date.Format("02012006"), nil
}

// ParseDateKey derives the day key from a date string. Accepts the formats
// the frontend sends on create and update.
func ParseDateKey(value string) (string, error) {
	value = strings.TrimSpace(value)
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000-07:00",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateKey(t)
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// PassPrefix returns the day-scoped prefix, e.g. "SDLGP05032024-".
func PassPrefix(date time.Time) (string, error) {
	key, err := DateKey(date)
	if err != nil {
		return "", err
	}
	return GatePassPrefix + key + "-", nil
}

// NextNumber computes the next gate pass number for the date. lastIssued is
// the highest number already issued for that day, or empty when the day has
// no passes yet. A lastIssued from another day restarts the sequence at 1.
// The sequence is not capped: past 9999 the padding simply widens.
func NextNumber(date time.Time, lastIssued string) (string, error) {
	prefix, err := PassPrefix(date)
	if err != nil {
		return "", err
	}

	sequence := 1
	if strings.HasPrefix(lastIssued, prefix) {
		last, err := strconv.Atoi(lastIssued[len(prefix):])
		if err == nil && last > 0 {
			sequence = last + 1
		}
	}

	return fmt.Sprintf("%s%04d", prefix, sequence), nil
}

// LastIssued picks, among the given pass numbers, the one for the date with
// the numerically highest sequence. Comparison is on the parsed integer, not
// the string, so it stays correct if the padding ever widens. Returns ""
// when no number matches the day prefix.
func LastIssued(date time.Time, numbers []string) (string, error) {
	prefix, err := PassPrefix(date)
	if err != nil {
		return "", err
	}

	best := ""
	bestSeq := 0
	for _, no := range numbers {
		if !strings.HasPrefix(no, prefix) {
			continue
		}
		seq, err := strconv.Atoi(no[len(prefix):])
		if err != nil || seq <= 0 {
			continue
		}
		if seq > bestSeq {
			best = no
			bestSeq = seq
		}
	}
	return best, nil
}
