package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSnapToStart(t *testing.T) {
	ts := time.Date(2024, time.August, 14, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		name   string
		bucket Bucket
		want   time.Time
	}{
		{"Day", BucketDay, date(2024, time.August, 14)},
		{"Month", BucketMonth, date(2024, time.August, 1)},
		{"Year", BucketYear, date(2024, time.January, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapToStart(ts, tt.bucket); !got.Equal(tt.want) {
				t.Errorf("SnapToStart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapToEnd(t *testing.T) {
	ts := date(2024, time.February, 10)
	tests := []struct {
		name   string
		bucket Bucket
		want   time.Time
	}{
		{"Day", BucketDay, time.Date(2024, time.February, 10, 23, 59, 59, 999999999, time.UTC)},
		{"LeapMonth", BucketMonth, time.Date(2024, time.February, 29, 23, 59, 59, 999999999, time.UTC)},
		{"Year", BucketYear, time.Date(2024, time.December, 31, 23, 59, 59, 999999999, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapToEnd(ts, tt.bucket); !got.Equal(tt.want) {
				t.Errorf("SnapToEnd() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindowSubdivide(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		bucket Bucket
		want   int
	}{
		{"DaysOfFebruary", date(2024, 2, 1), date(2024, 2, 29), BucketDay, 29},
		{"MonthsAcrossYear", date(2023, 11, 20), date(2024, 2, 3), BucketMonth, 4},
		{"Years", date(2019, 6, 1), date(2024, 1, 1), BucketYear, 6},
		{"SingleDay", date(2024, 5, 5), date(2024, 5, 5), BucketDay, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.start, tt.end, tt.bucket)
			if got := len(w.Subdivide()); got != tt.want {
				t.Errorf("len(Subdivide()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWindowFindBucketIndex(t *testing.T) {
	w := NewWindow(date(2023, 11, 1), date(2024, 2, 1), BucketMonth)
	if got := w.FindBucketIndex(date(2024, 1, 15)); got != 2 {
		t.Errorf("FindBucketIndex() = %d, want 2", got)
	}
	if got := w.FindBucketIndex(date(2024, 3, 1)); got != -1 {
		t.Errorf("FindBucketIndex() out of range = %d, want -1", got)
	}

	days := NewWindow(date(2024, 3, 30), date(2024, 4, 2), BucketDay)
	if got := days.FindBucketIndex(date(2024, 4, 1)); got != 2 {
		t.Errorf("FindBucketIndex() day = %d, want 2", got)
	}
}

func TestMonthSpan(t *testing.T) {
	tests := []struct {
		name     string
		min, max time.Time
		want     int
	}{
		{"SameMonth", date(2024, 1, 1), date(2024, 1, 31), 1},
		{"SixMonths", date(2024, 1, 15), date(2024, 6, 1), 6},
		{"CrossYear", date(2023, 12, 31), date(2024, 1, 1), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthSpan(tt.min, tt.max); got != tt.want {
				t.Errorf("MonthSpan() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDetermineMode(t *testing.T) {
	start := date(2024, 1, 1)
	tests := []struct {
		name string
		max  time.Time
		want Mode
	}{
		{"OneMonth", date(2024, 1, 20), ModeMonth},
		{"Span6", date(2024, 6, 30), ModeMonth},
		{"Span7", date(2024, 7, 1), ModeYear},
		{"Span72", date(2029, 12, 31), ModeYear},
		{"Span73", date(2030, 1, 1), ModeMultiYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineMode(start, tt.max); got != tt.want {
				t.Errorf("DetermineMode() = %v, want %v", got, tt.want)
			}
		})
	}
}
