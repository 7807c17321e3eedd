// Package frequency orders, parses and labels sampling frequencies such as
// "15 minutes" or "1 day".
package frequency

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

// ErrInvalidFrequency is returned by Parse for strings that are not "<n> <unit>".
var ErrInvalidFrequency = errors.New("invalid frequency")

// UnknownOrder is the rank of frequencies missing from the table.
const UnknownOrder = 999

// ranked lists the known frequencies from finest to coarsest.
var ranked = []string{
	"1 second",
	"1 minute",
	"15 minutes",
	"30 minutes",
	"1 hour",
	"1 day",
	"1 week",
	"1 month",
	"1 quarter",
	"1 year",
}

// Order returns the rank of f, or UnknownOrder.
func Order(f string) int {
	if i := slices.Index(ranked, f); i >= 0 {
		return i
	}
	return UnknownOrder
}

// Known lists the ranked frequencies from finest to coarsest.
func Known() []string {
	return slices.Clone(ranked)
}

// Sort returns a copy of fs ordered from finest to coarsest. Unknown
// frequencies go last and keep their relative order.
func Sort(fs []string) []string {
	out := slices.Clone(fs)
	slices.SortStableFunc(out, func(a, b string) int {
		return Order(a) - Order(b)
	})
	return out
}

// PickAvailable returns target when it is available, otherwise the finest
// available frequency at least as coarse as target, otherwise the coarsest
// available one. An empty target picks the finest available frequency.
// Returns "" when nothing is available.
func PickAvailable(target string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if slices.Contains(available, target) {
		return target
	}

	sorted := Sort(available)
	if target == "" {
		return sorted[0]
	}

	rank := Order(target)
	for _, f := range sorted {
		if Order(f) >= rank {
			return f
		}
	}
	return sorted[len(sorted)-1]
}

// Unit is a frequency unit.
type Unit string

const (
	Second  Unit = "second"
	Minute  Unit = "minute"
	Hour    Unit = "hour"
	Day     Unit = "day"
	Week    Unit = "week"
	Month   Unit = "month"
	Quarter Unit = "quarter"
	Year    Unit = "year"
)

var units = []Unit{Second, Minute, Hour, Day, Week, Month, Quarter, Year}

// Frequency is a parsed "<n> <unit>" interval.
type Frequency struct {
	Count int
	Unit  Unit
}

// Parse reads "<n> <unit>", with the unit optionally pluralized.
func Parse(s string) (Frequency, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 {
		return Frequency{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return Frequency{}, fmt.Errorf("%w: %q has no positive count", ErrInvalidFrequency, s)
	}

	unit := Unit(strings.TrimSuffix(fields[1], "s"))
	if !slices.Contains(units, unit) {
		return Frequency{}, fmt.Errorf("%w: unknown unit in %q", ErrInvalidFrequency, s)
	}
	return Frequency{Count: n, Unit: unit}, nil
}

// String formats f the way the ranked table spells it, e.g. "15 minutes".
func (f Frequency) String() string {
	if f.Count == 1 {
		return fmt.Sprintf("1 %s", f.Unit)
	}
	return fmt.Sprintf("%d %ss", f.Count, f.Unit)
}

// ISODuration converts f to an ISO 8601 duration. A quarter is three months.
func (f Frequency) ISODuration() *duration.Duration {
	n := float64(f.Count)
	d := &duration.Duration{}
	switch f.Unit {
	case Second:
		d.Seconds = n
	case Minute:
		d.Minutes = n
	case Hour:
		d.Hours = n
	case Day:
		d.Days = n
	case Week:
		d.Weeks = n
	case Month:
		d.Months = n
	case Quarter:
		d.Months = 3 * n
	case Year:
		d.Years = n
	}
	return d
}

// Approx returns the nominal length of f, using the ISO 8601 library's
// calendar approximations for months and years.
func (f Frequency) Approx() time.Duration {
	return f.ISODuration().ToTimeDuration()
}

// FromISO parses an ISO 8601 duration with a single component, e.g. "PT15M".
func FromISO(iso string) (Frequency, error) {
	d, err := duration.Parse(iso)
	if err != nil {
		return Frequency{}, fmt.Errorf("%w: %v", ErrInvalidFrequency, err)
	}

	var found []Frequency
	add := func(v float64, u Unit) {
		if v > 0 {
			found = append(found, Frequency{Count: int(v), Unit: u})
		}
	}
	add(d.Years, Year)
	add(d.Months, Month)
	add(d.Weeks, Week)
	add(d.Days, Day)
	add(d.Hours, Hour)
	add(d.Minutes, Minute)
	add(d.Seconds, Second)

	if len(found) != 1 {
		return Frequency{}, fmt.Errorf("%w: %q must have exactly one component", ErrInvalidFrequency, iso)
	}
	f := found[0]
	if f.Unit == Month && f.Count%3 == 0 && f.Count > 0 {
		f = Frequency{Count: f.Count / 3, Unit: Quarter}
	}
	return f, nil
}

var unitLabels = map[string]map[Unit][2]string{
	"fr": {
		Second:  {"seconde", "secondes"},
		Minute:  {"minute", "minutes"},
		Hour:    {"heure", "heures"},
		Day:     {"jour", "jours"},
		Week:    {"semaine", "semaines"},
		Month:   {"mois", "mois"},
		Quarter: {"trimestre", "trimestres"},
		Year:    {"an", "ans"},
	},
	"en": {
		Second:  {"second", "seconds"},
		Minute:  {"minute", "minutes"},
		Hour:    {"hour", "hours"},
		Day:     {"day", "days"},
		Week:    {"week", "weeks"},
		Month:   {"month", "months"},
		Quarter: {"quarter", "quarters"},
		Year:    {"year", "years"},
	},
}

// Label renders f for display in locale ("fr" or "en", default "fr").
// Unparseable frequencies are returned unchanged.
func Label(f string, locale string) string {
	parsed, err := Parse(f)
	if err != nil {
		return f
	}
	labels, ok := unitLabels[locale]
	if !ok {
		labels = unitLabels["fr"]
	}
	forms := labels[parsed.Unit]
	if parsed.Count == 1 {
		return "1 " + forms[0]
	}
	return fmt.Sprintf("%d %s", parsed.Count, forms[1])
}

// Described is a frequency with its display label and ISO 8601 duration.
// ISODuration is empty for frequencies that do not parse.
type Described struct {
	Frequency   string `json:"frequency"`
	Label       string `json:"label"`
	ISODuration string `json:"iso_duration,omitempty"`
}

// Describe labels f in locale.
func Describe(f string, locale string) Described {
	out := Described{Frequency: f, Label: Label(f, locale)}
	if parsed, err := Parse(f); err == nil {
		out.ISODuration = parsed.ISODuration().String()
	}
	return out
}

// DescribeAll labels fs in order.
func DescribeAll(fs []string, locale string) []Described {
	out := make([]Described, len(fs))
	for i, f := range fs {
		out[i] = Describe(f, locale)
	}
	return out
}
