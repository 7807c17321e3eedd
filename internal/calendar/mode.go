package calendar

import "time"

// Mode is the display granularity of a calendar.
type Mode string

const (
	ModeMonth     Mode = "month"
	ModeYear      Mode = "year"
	ModeMultiYear Mode = "multi-year"
)

const (
	// MultiYearThreshold is the month span above which one cell per year is shown.
	MultiYearThreshold = 72
	// YearThreshold is the month span above which one cell per month is shown.
	YearThreshold = 6
)

// DetermineMode picks the display mode from the inclusive month span of [min, max].
func DetermineMode(min, max time.Time) Mode {
	span := MonthSpan(min, max)
	switch {
	case span > MultiYearThreshold:
		return ModeMultiYear
	case span > YearThreshold:
		return ModeYear
	default:
		return ModeMonth
	}
}
