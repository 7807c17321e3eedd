package calendar

import (
	"fmt"
	"strconv"
	"time"
)

// Cell is one day, month or year of a calendar grid. Placeholder cells only pad
// the 7-column month grid and carry no data.
type Cell struct {
	Key           string    `json:"key"`
	Label         string    `json:"label"`
	Color         *string   `json:"color"`
	Mode          Mode      `json:"mode"`
	Entries       []Entry   `json:"entries"`
	PeriodStart   time.Time `json:"periodStart,omitzero"`
	PeriodEnd     time.Time `json:"periodEnd,omitzero"`
	IsInteractive bool      `json:"isInteractive"`
	AriaLabel     string    `json:"ariaLabel"`
	IsPlaceholder bool      `json:"isPlaceholder,omitempty"`
}

// Description is one displayed grid.
type Description struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	CompactMode bool   `json:"compactMode"`
	Cells       []Cell `json:"cells"`
}

// Build picks the mode for the processed range and generates its grids.
// Returns an empty list when there is no valid entry.
func Build(data ProcessedData, locale Locale) (Mode, []Description) {
	if !data.HasData() {
		return ModeMonth, []Description{}
	}

	mode := DetermineMode(data.MinDate, data.MaxDate)
	switch mode {
	case ModeMultiYear:
		return mode, GenerateMultiYear(data, locale)
	case ModeYear:
		return mode, GenerateYear(data, locale)
	default:
		return mode, GenerateMonth(data, locale)
	}
}

// GenerateMultiYear emits a single compact grid with one cell per year.
func GenerateMultiYear(data ProcessedData, _ Locale) []Description {
	w := NewWindow(data.MinDate, data.MaxDate, BucketYear)

	desc := Description{
		Key:         "multi-year",
		Title:       fmt.Sprintf("%d - %d", data.MinDate.Year(), data.MaxDate.Year()),
		CompactMode: true,
	}
	for _, year := range w.Subdivide() {
		key := Key(year, BucketYear)
		desc.Cells = append(desc.Cells, dataCell(key, key, key, ModeMultiYear, year, BucketYear, data.ByYear[key]))
	}
	return []Description{desc}
}

// GenerateYear emits one compact grid per year with twelve month cells.
func GenerateYear(data ProcessedData, locale Locale) []Description {
	w := NewWindow(data.MinDate, data.MaxDate, BucketYear)

	years := w.Subdivide()
	descs := make([]Description, 0, len(years))
	for _, year := range years {
		yearKey := Key(year, BucketYear)
		desc := Description{
			Key:         yearKey,
			Title:       yearKey,
			CompactMode: true,
			Cells:       make([]Cell, 0, 12),
		}

		months := Window{Start: year, End: SnapToEnd(year, BucketYear), Bucket: BucketMonth}
		for _, month := range months.Subdivide() {
			key := Key(month, BucketMonth)
			desc.Cells = append(desc.Cells, dataCell(key, locale.ShortMonth(month.Month()),
				locale.MonthAriaLabel(month), ModeYear, month, BucketMonth, data.ByMonth[key]))
		}
		descs = append(descs, desc)
	}
	return descs
}

// GenerateMonth emits one grid per month between the months of MinDate and
// MaxDate. Day 1 sits in its ISO weekday column and the last week is padded.
func GenerateMonth(data ProcessedData, locale Locale) []Description {
	w := NewWindow(data.MinDate, data.MaxDate, BucketMonth)

	var descs []Description
	for _, month := range w.Subdivide() {
		monthKey := Key(month, BucketMonth)
		desc := Description{
			Key:         monthKey,
			Title:       locale.MonthTitle(month),
			CompactMode: false,
		}

		// 1. Leading placeholders up to the weekday of day 1
		leading := isoWeekday(month) - 1
		for i := range leading {
			desc.Cells = append(desc.Cells, placeholder(fmt.Sprintf("%s-lead-%d", monthKey, i)))
		}

		// 2. Day cells
		days := Window{Start: month, End: SnapToEnd(month, BucketMonth), Bucket: BucketDay}
		for _, day := range days.Subdivide() {
			key := Key(day, BucketDay)
			desc.Cells = append(desc.Cells, dataCell(key, strconv.Itoa(day.Day()),
				locale.DayAriaLabel(day), ModeMonth, day, BucketDay, data.ByDay[key]))
		}

		// 3. Trailing placeholders to complete the last week
		trailing := (7 - len(desc.Cells)%7) % 7
		for i := range trailing {
			desc.Cells = append(desc.Cells, placeholder(fmt.Sprintf("%s-trail-%d", monthKey, i)))
		}

		descs = append(descs, desc)
	}
	return descs
}

func dataCell(key, label, aria string, mode Mode, start time.Time, bucket Bucket, entries []Entry) Cell {
	if entries == nil {
		entries = []Entry{}
	}
	return Cell{
		Key:           key,
		Label:         label,
		Color:         ResolveAggregatedColor(entries),
		Mode:          mode,
		Entries:       entries,
		PeriodStart:   start,
		PeriodEnd:     SnapToEnd(start, bucket),
		IsInteractive: len(entries) > 0,
		AriaLabel:     aria,
	}
}

func placeholder(key string) Cell {
	return Cell{
		Key:           key,
		Mode:          ModeMonth,
		Entries:       []Entry{},
		IsPlaceholder: true,
	}
}
