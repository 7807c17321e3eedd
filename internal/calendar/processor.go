package calendar

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// EntryLayout is the fixed dd-MM-yyyy layout of calendar entry dates.
const EntryLayout = "02-01-2006"

// Entry is one calendar record. DateObj is filled in by Process.
type Entry struct {
	Date    string    `json:"date"`
	Color   string    `json:"color,omitempty"`
	DateObj time.Time `json:"dateObj,omitzero"`
}

// WarnFunc receives entries dropped by Process.
type WarnFunc func(entry Entry, err error)

// ProcessedData holds valid entries grouped by day, month and year key.
type ProcessedData struct {
	ByDay   map[string][]Entry
	ByMonth map[string][]Entry
	ByYear  map[string][]Entry
	MinDate time.Time
	MaxDate time.Time
	Total   int
	Invalid int
}

// HasData reports whether at least one entry was valid.
func (p ProcessedData) HasData() bool {
	return p.Total > p.Invalid
}

// AllInvalid reports a format failure: there were entries and none parsed.
// An empty input is "no data", not a failure.
func (p ProcessedData) AllInvalid() bool {
	return p.Total > 0 && p.Invalid == p.Total
}

// ParseEntryDate parses a dd-MM-yyyy date strictly, in UTC.
func ParseEntryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(EntryLayout) {
		return time.Time{}, fmt.Errorf("%w: %q is not dd-MM-yyyy", ErrInvalidDate, s)
	}
	t, err := time.Parse(EntryLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not dd-MM-yyyy", ErrInvalidDate, s)
	}
	return t, nil
}

// Process parses and groups calendar entries. Invalid dates are reported to
// warn and dropped; they never abort the batch.
func Process(entries []Entry, warn WarnFunc) ProcessedData {
	if warn == nil {
		warn = func(Entry, error) {}
	}

	data := ProcessedData{
		ByDay:   make(map[string][]Entry),
		ByMonth: make(map[string][]Entry),
		ByYear:  make(map[string][]Entry),
		Total:   len(entries),
	}

	for _, e := range entries {
		t, err := ParseEntryDate(e.Date)
		if err != nil {
			data.Invalid++
			warn(e, err)
			continue
		}
		e.DateObj = t

		data.ByDay[Key(t, BucketDay)] = append(data.ByDay[Key(t, BucketDay)], e)
		data.ByMonth[Key(t, BucketMonth)] = append(data.ByMonth[Key(t, BucketMonth)], e)
		data.ByYear[Key(t, BucketYear)] = append(data.ByYear[Key(t, BucketYear)], e)

		if data.MinDate.IsZero() || t.Before(data.MinDate) {
			data.MinDate = t
		}
		if data.MaxDate.IsZero() || t.After(data.MaxDate) {
			data.MaxDate = t
		}
	}
	return data
}

// ResolveAggregatedColor returns the color of the first entry that has one.
func ResolveAggregatedColor(entries []Entry) *string {
	i := slices.IndexFunc(entries, func(e Entry) bool { return e.Color != "" })
	if i < 0 {
		return nil
	}
	c := entries[i].Color
	return &c
}
