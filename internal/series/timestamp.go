package series

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned when a date or time string matches no known layout.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// quarterRe matches quarter-formatted dates, e.g. "2024-Q3".
var quarterRe = regexp.MustCompile(`^(\d{4})-Q([1-4])$`)

// localLayouts are tried in order and interpreted in the caller's location.
var localLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01",
	"2006",
}

// ParseQuarter converts "YYYY-Qn" to the first day of that quarter.
func ParseQuarter(value string, loc *time.Location) (time.Time, bool) {
	m := quarterRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	quarter, _ := strconv.Atoi(m[2])
	return time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, locOrLocal(loc)), true
}

// ParseTimestamp parses a sample date: quarter dates first, then RFC 3339,
// then local date/date-time layouts in loc (time.Local when nil).
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidTimestamp)
	}
	if t, ok := ParseQuarter(value, loc); ok {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	loc = locOrLocal(loc)
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// SampleTimestamp combines a sample date with an optional "HH:MM[:SS]" clock.
func SampleTimestamp(date string, clock *string, loc *time.Location) (time.Time, error) {
	base, err := ParseTimestamp(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	if clock == nil {
		return base, nil
	}

	hour, minute, second, err := parseClock(*clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, second, 0, base.Location()), nil
}

func parseClock(clock string) (int, int, int, error) {
	clock = strings.TrimSpace(clock)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("%w: time %q", ErrInvalidTimestamp, clock)
}

// DayKey returns the yyyy-MM-dd day a sample date falls on, or the raw string
// when it cannot be parsed.
func DayKey(date string) string {
	t, err := ParseTimestamp(date, time.UTC)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02")
}

func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
