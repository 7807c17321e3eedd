package series

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"Date", "2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, paris)},
		{"DateTime", "2024-02-29T08:15", time.Date(2024, 2, 29, 8, 15, 0, 0, paris)},
		{"DateTimeSeconds", "2024-02-29T08:15:30", time.Date(2024, 2, 29, 8, 15, 30, 0, paris)},
		{"SpaceSeparated", "2024-02-29 08:15", time.Date(2024, 2, 29, 8, 15, 0, 0, paris)},
		{"Month", "2024-02", time.Date(2024, 2, 1, 0, 0, 0, 0, paris)},
		{"Year", "2024", time.Date(2024, 1, 1, 0, 0, 0, 0, paris)},
		{"Q1", "2024-Q1", time.Date(2024, 1, 1, 0, 0, 0, 0, paris)},
		{"Q4", "2024-Q4", time.Date(2024, 10, 1, 0, 0, 0, 0, paris)},
		{"RFC3339", "2024-02-29T08:15:00Z", time.Date(2024, 2, 29, 8, 15, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.value, paris)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error: %v", tt.value, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, value := range []string{"", "29-02-2024", "2024-Q5", "yesterday"} {
		if _, err := ParseTimestamp(value, time.UTC); err == nil {
			t.Errorf("ParseTimestamp(%q) expected error", value)
		}
	}
}

func TestSampleTimestamp(t *testing.T) {
	clock := "14:30"
	got, err := SampleTimestamp("2024-06-01", &clock, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	bad := "noon"
	if _, err := SampleTimestamp("2024-06-01", &bad, time.UTC); err == nil {
		t.Error("expected error for unparseable clock")
	}
}

func TestDayKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-06-01", "2024-06-01"},
		{"2024-06-01T23:00:00Z", "2024-06-01"},
		{"2024-Q2", "2024-04-01"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := DayKey(tt.in); got != tt.want {
			t.Errorf("DayKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
