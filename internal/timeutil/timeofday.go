// Package timeutil handles "HH:MM" wall-clock strings as minutes since midnight.
package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const MinutesPerDay = 24 * 60

var ErrInvalidTime = errors.New("invalid time of day")

// ParseHHMM parses "HH:MM" (24h) or "H:MM AM/PM" into minutes since midnight.
// "24:00" is accepted as end of day.
func ParseHHMM(s string) (int, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return 0, fmt.Errorf("parse %q: %w", s, ErrInvalidTime)
	}

	meridiem := ""
	for _, suffix := range []string{"am", "pm"} {
		if strings.HasSuffix(raw, suffix) {
			meridiem = suffix
			raw = strings.TrimSpace(strings.TrimSuffix(raw, suffix))
			break
		}
	}

	hStr, mStr, ok := strings.Cut(raw, ":")
	if !ok {
		if meridiem == "" {
			return 0, fmt.Errorf("parse %q: %w", s, ErrInvalidTime)
		}
		mStr = "00"
	}

	h, err := strconv.Atoi(strings.TrimSpace(hStr))
	if err != nil {
		return 0, fmt.Errorf("parse %q: hour: %w", s, ErrInvalidTime)
	}
	m, err := strconv.Atoi(strings.TrimSpace(mStr))
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse %q: minute: %w", s, ErrInvalidTime)
	}

	switch meridiem {
	case "am", "pm":
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("parse %q: hour: %w", s, ErrInvalidTime)
		}
		if h == 12 {
			h = 0
		}
		if meridiem == "pm" {
			h += 12
		}
	default:
		if h < 0 || h > 24 || (h == 24 && m != 0) {
			return 0, fmt.Errorf("parse %q: hour: %w", s, ErrInvalidTime)
		}
	}

	return h*60 + m, nil
}

// FormatHHMM renders minutes since midnight as zero-padded "HH:MM".
// Values outside one day wrap around.
func FormatHHMM(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Range is a parsed [Start, End) interval in minutes since midnight.
type Range struct {
	Start int
	End   int
}

// ParseRange parses a start/end pair. End must be strictly after start.
func ParseRange(start, end string) (Range, error) {
	s, err := ParseHHMM(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseHHMM(end)
	if err != nil {
		return Range{}, err
	}
	if e <= s {
		return Range{}, fmt.Errorf("range %s-%s: end not after start: %w", start, end, ErrInvalidTime)
	}
	return Range{Start: s, End: e}, nil
}

// ParseWindow parses "HH:MM-HH:MM" peak-hour notation.
func ParseWindow(window string) (Range, error) {
	start, end, ok := strings.Cut(window, "-")
	if !ok {
		return Range{}, fmt.Errorf("window %q: %w", window, ErrInvalidTime)
	}
	return ParseRange(start, end)
}

func (r Range) Minutes() int { return r.End - r.Start }

// Contains reports whether minute m falls inside [Start, End).
func (r Range) Contains(m int) bool { return m >= r.Start && m < r.End }
