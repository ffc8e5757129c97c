package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var isoDateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// dateLayouts are tried in order when the input is not already an ISO date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"01/02/2006",
}

// NormalizeDate canonicalizes a date string to YYYY-MM-DD. Inputs already in
// that shape pass through unchanged; anything else is parsed against a set of
// common layouts and reformatted in UTC, discarding any time-of-day.
func NormalizeDate(input string) (string, error) {
	v := strings.TrimSpace(input)
	if isoDateShape.MatchString(v) {
		return v, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", Validationf("invalid date %q: expected YYYY-MM-DD or a parseable date", input)
}

var (
	time24 = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
	time12 = regexp.MustCompile(`^(1[0-2]|0?[1-9]):([0-5]\d)\s*([AaPp][Mm])$`)
	// Range separator: dash, en dash, or em dash, with optional whitespace.
	rangeSep = regexp.MustCompile(`\s*[-\x{2013}\x{2014}]\s*`)
)

// NormalizeTime canonicalizes a time or time range to zero-padded 24-hour
// form: "HH:mm" for a single time, "HH:mm-HH:mm" for a range. Each token may
// be 24-hour H:mm/HH:mm or 12-hour h:mm AM/PM (case-insensitive meridiem).
func NormalizeTime(input string) (string, error) {
	parts := rangeSep.Split(strings.TrimSpace(input), -1)
	switch len(parts) {
	case 1:
		return normalizeTimeToken(parts[0])
	case 2:
		start, err := normalizeTimeToken(parts[0])
		if err != nil {
			return "", err
		}
		end, err := normalizeTimeToken(parts[1])
		if err != nil {
			return "", err
		}
		return start + "-" + end, nil
	default:
		return "", Validationf("invalid time %q: expected HH:mm, h:mm AM/PM, or a range of two such times", input)
	}
}

func normalizeTimeToken(token string) (string, error) {
	tok := strings.TrimSpace(token)
	if m := time24.FindStringSubmatch(tok); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", hour, m[2]), nil
	}
	if m := time12.FindStringSubmatch(tok); m != nil {
		hour, _ := strconv.Atoi(m[1])
		pm := strings.EqualFold(m[3], "pm")
		if hour == 12 {
			hour = 0
		}
		if pm {
			hour += 12
		}
		return fmt.Sprintf("%02d:%s", hour, m[2]), nil
	}
	return "", Validationf("invalid time %q: expected HH:mm (24-hour) or h:mm AM/PM", token)
}

// emailShape is a pragmatic email check: local part, @, domain with a dot.
var emailShape = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail trims and lowercases an email address. Always applied before
// validation and storage.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailShape.MatchString(s)
}
