package calendar

import (
	"time"
)

// Bucket is the granularity a calendar cell covers.
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketMonth Bucket = "month"
	BucketYear  Bucket = "year"
)

// Window is a span of whole buckets.
type Window struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Bucket Bucket    `json:"bucket"`
}

// NewWindow creates a window whose boundaries are snapped to the enclosing buckets.
func NewWindow(start, end time.Time, bucket Bucket) Window {
	if bucket == "" {
		bucket = BucketDay
	}
	return Window{
		Start:  SnapToStart(start, bucket),
		End:    SnapToEnd(end, bucket),
		Bucket: bucket,
	}
}

// SnapToStart normalizes a timestamp to the beginning of its bucket (0:00:00).
func SnapToStart(t time.Time, bucket Bucket) time.Time {
	if t.IsZero() {
		return t
	}
	switch bucket {
	case BucketYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	case BucketMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// SnapToEnd normalizes a timestamp to the very end of its bucket (23:59:59.999...).
func SnapToEnd(t time.Time, bucket Bucket) time.Time {
	if t.IsZero() {
		return t
	}
	switch bucket {
	case BucketYear:
		return time.Date(t.Year()+1, time.January, 1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
	case BucketMonth:
		return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
	}
}

// Subdivide returns the start of every bucket within the window.
func (w Window) Subdivide() []time.Time {
	var buckets []time.Time
	current := w.Start

	for current.Before(w.End) {
		buckets = append(buckets, current)
		switch w.Bucket {
		case BucketYear:
			current = current.AddDate(1, 0, 0)
		case BucketMonth:
			current = current.AddDate(0, 1, 0)
		default:
			current = current.AddDate(0, 0, 1)
		}
	}
	return buckets
}

// FindBucketIndex returns the index of the bucket containing t. Returns -1 if out of bounds.
func (w Window) FindBucketIndex(t time.Time) int {
	tNorm := SnapToStart(t, w.Bucket)
	if tNorm.Before(w.Start) || tNorm.After(w.End) {
		return -1
	}

	switch w.Bucket {
	case BucketYear:
		return tNorm.Year() - w.Start.Year()
	case BucketMonth:
		return (tNorm.Year()-w.Start.Year())*12 + int(tNorm.Month()-w.Start.Month())
	default:
		// compare as UTC dates so DST days still count as one
		a := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, time.UTC)
		b := time.Date(tNorm.Year(), tNorm.Month(), tNorm.Day(), 0, 0, 0, 0, time.UTC)
		return int(b.Sub(a).Hours() / 24)
	}
}

// Key returns the grouping key of the bucket containing t
// ("2006-01-02", "2006-01" or "2006").
func Key(t time.Time, bucket Bucket) string {
	switch bucket {
	case BucketYear:
		return t.Format("2006")
	case BucketMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// MonthSpan counts the calendar months touched by [min, max], both ends included.
func MonthSpan(min, max time.Time) int {
	return (max.Year()-min.Year())*12 + int(max.Month()) - int(min.Month()) + 1
}

// isoWeekday returns 1 for Monday through 7 for Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
