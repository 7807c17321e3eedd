package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// MinSelectableYear bounds the year list when the range has no start.
	MinSelectableYear = 1900
	// MaxSelectableYear bounds the year list when the range has no end.
	MaxSelectableYear = 2100
)

// ErrInvalidDate is returned for dates that match none of the accepted layouts.
var ErrInvalidDate = errors.New("invalid date")

// PeriodType distinguishes year and month periods.
type PeriodType string

const (
	PeriodYear  PeriodType = "year"
	PeriodMonth PeriodType = "month"
)

// Period is one selectable year or month. Year periods set Value; month
// periods set Year and Month (1-12).
type Period struct {
	Type  PeriodType `json:"type"`
	Value int        `json:"value,omitempty"`
	Year  int        `json:"year,omitempty"`
	Month int        `json:"month,omitempty"`
}

// MonthRange is an inclusive range of months of the year (1-12).
type MonthRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SelectablePeriods lists what a period picker may offer for a date range.
type SelectablePeriods struct {
	Years  []int      `json:"years"`
	Months MonthRange `json:"months"`
}

// CalculateSelectablePeriods derives the pickable years and months from a
// range. Returns nil when both bounds are missing.
func CalculateSelectablePeriods(start, end *time.Time) *SelectablePeriods {
	if start == nil && end == nil {
		return nil
	}

	startYear, endYear := MinSelectableYear, MaxSelectableYear
	months := MonthRange{Start: 1, End: 12}
	if start != nil {
		startYear = start.Year()
		months.Start = int(start.Month())
	}
	if end != nil {
		endYear = end.Year()
		months.End = int(end.Month())
	}

	years := make([]int, 0, max(endYear-startYear+1, 0))
	for y := startYear; y <= endYear; y++ {
		years = append(years, y)
	}
	return &SelectablePeriods{Years: years, Months: months}
}

// ExtractDefaultPeriods returns the periods preselected for a range: one per
// year when the range spans several years, otherwise one per month of the
// start year. Returns nil unless both bounds are set.
func ExtractDefaultPeriods(start, end *time.Time) []Period {
	if start == nil || end == nil {
		return nil
	}

	periods := []Period{}
	if start.Year() != end.Year() {
		for y := start.Year(); y <= end.Year(); y++ {
			periods = append(periods, Period{Type: PeriodYear, Value: y})
		}
		return periods
	}

	// a start month after the end month yields no periods
	for m := int(start.Month()); m <= int(end.Month()); m++ {
		periods = append(periods, Period{Type: PeriodMonth, Year: start.Year(), Month: m})
	}
	return periods
}

// ParseDateBound parses an optional range bound: "" gives nil, otherwise
// "2006-01-02" or RFC 3339.
func ParseDateBound(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
