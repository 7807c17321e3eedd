package calendar

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goodsign/monday"
)

// Locale selects month and weekday names for labels.
type Locale string

const (
	LocaleFR Locale = "fr"
	LocaleEN Locale = "en"
)

// DefaultLocale is used when none is given.
const DefaultLocale = LocaleFR

// timeLocales maps each supported locale to its date-name tables.
var timeLocales = map[Locale]monday.Locale{
	LocaleFR: monday.LocaleFrFR,
	LocaleEN: monday.LocaleEnUS,
}

// ParseLocale resolves a locale tag such as "fr", "en" or "fr-FR".
// An empty tag resolves to DefaultLocale.
func ParseLocale(tag string) (Locale, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return DefaultLocale, true
	}
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	l := Locale(tag)
	_, ok := timeLocales[l]
	return l, ok
}

func (l Locale) timeLocale() monday.Locale {
	if tl, ok := timeLocales[l]; ok {
		return tl
	}
	return timeLocales[DefaultLocale]
}

// format renders t with a time layout, month and weekday names localized.
func (l Locale) format(t time.Time, layout string) string {
	return monday.Format(t, layout, l.timeLocale())
}

// MonthName returns the full month name, lower-case in French.
func (l Locale) MonthName(m time.Month) string {
	return l.format(time.Date(2000, m, 1, 0, 0, 0, 0, time.UTC), "January")
}

// ShortMonth returns the capitalized three-letter month label, e.g. "Fév".
func (l Locale) ShortMonth(m time.Month) string {
	name := []rune(l.MonthName(m))
	if len(name) > 3 {
		name = name[:3]
	}
	return capitalize(string(name))
}

// WeekdayName returns the full weekday name.
func (l Locale) WeekdayName(d time.Weekday) string {
	// 2024-01-07 is a Sunday
	return l.format(time.Date(2024, 1, 7+int(d), 0, 0, 0, 0, time.UTC), "Monday")
}

// MonthTitle labels a month grid, e.g. "Janvier 2024".
func (l Locale) MonthTitle(t time.Time) string {
	return capitalize(l.format(t, "January 2006"))
}

// DayAriaLabel describes a day cell for assistive technology.
func (l Locale) DayAriaLabel(t time.Time) string {
	if l == LocaleEN {
		return l.format(t, "Monday, January 2, 2006")
	}
	return l.format(t, "Monday 2 January 2006")
}

// MonthAriaLabel describes a month cell.
func (l Locale) MonthAriaLabel(t time.Time) string {
	return l.format(t, "January 2006")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
