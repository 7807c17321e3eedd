package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"prelev-mcp/internal/series"
)

// ErrUnresolvedX is returned by UnixMilli for an x that was neither a date nor a number.
var ErrUnresolvedX = errors.New("x is neither a date nor epoch milliseconds")

// Abscissa is a point's x: either a date string (quarter-aware) or epoch milliseconds.
// Unresolved marks an x decoded from null, a boolean or a container.
type Abscissa struct {
	Date       string
	Millis     int64
	IsDate     bool
	Unresolved bool
}

// DateX builds a date abscissa such as "2024-05-01" or "2024-Q2".
func DateX(date string) Abscissa {
	return Abscissa{Date: date, IsDate: true}
}

// MillisX builds an epoch-millisecond abscissa.
func MillisX(ms int64) Abscissa {
	return Abscissa{Millis: ms}
}

// UnixMilli resolves the abscissa to epoch milliseconds.
func (a Abscissa) UnixMilli(loc *time.Location) (int64, error) {
	if a.Unresolved {
		return 0, ErrUnresolvedX
	}
	if !a.IsDate {
		return a.Millis, nil
	}
	t, err := series.ParseTimestamp(a.Date, loc)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

func (a *Abscissa) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*a = Abscissa{Unresolved: true}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = DateX(s)
		return nil
	case 'n', 't', 'f', '[', '{':
		*a = Abscissa{Unresolved: true}
		return nil
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return fmt.Errorf("x must be a date string or epoch milliseconds: %w", err)
	}
	*a = MillisX(int64(f))
	return nil
}

func (a Abscissa) MarshalJSON() ([]byte, error) {
	if a.Unresolved {
		return []byte("null"), nil
	}
	if a.IsDate {
		return json.Marshal(a.Date)
	}
	return json.Marshal(a.Millis)
}

// Point is one input observation.
type Point struct {
	X Abscissa      `json:"x"`
	Y series.Number `json:"y"`
}
