package chart

import (
	"slices"
	"time"

	"prelev-mcp/internal/series"
)

// AxisKey identifies the y axis a series is drawn against.
type AxisKey string

const (
	AxisLeft  AxisKey = "y-left"
	AxisRight AxisKey = "y-right"
)

// InputSeries is one parameter series before alignment. Axis is "left" or "right".
type InputSeries struct {
	ID        string  `json:"id"`
	Label     string  `json:"label,omitempty"`
	Axis      string  `json:"axis,omitempty"`
	Color     string  `json:"color,omitempty"`
	ValueType string  `json:"valueType,omitempty"`
	Data      []Point `json:"data"`
}

// AlignedSery is a series resampled onto the shared x axis.
type AlignedSery struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Color     string     `json:"color"`
	AxisKey   AxisKey    `json:"axisKey"`
	ValueType string     `json:"valueType,omitempty"`
	Data      []*float64 `json:"data"`
}

// Aligned is the output of Align.
type Aligned struct {
	XValues  []int64       `json:"xValues"`
	Series   []AlignedSery `json:"series"`
	AxisKeys []AxisKey     `json:"axisKeys"`
}

// AlignOption configures Align.
type AlignOption func(*alignOptions)

type alignOptions struct {
	loc *time.Location
}

// WithLocation sets the location used for date abscissas without an offset.
func WithLocation(loc *time.Location) AlignOption {
	return func(o *alignOptions) {
		if loc != nil {
			o.loc = loc
		}
	}
}

func axisKey(axis string) AxisKey {
	if axis == "right" || axis == string(AxisRight) {
		return AxisRight
	}
	return AxisLeft
}

// Align merges series onto one sorted x axis. Missing points and non-finite
// values become nil; series left entirely nil are dropped. Points whose x
// cannot be resolved are ignored.
func Align(input []InputSeries, opts ...AlignOption) Aligned {
	o := alignOptions{loc: time.Local}
	for _, opt := range opts {
		opt(&o)
	}

	// 1. Resolve every point once and build the union axis
	resolved := make([]map[int64]float64, len(input))
	seen := make(map[int64]struct{})
	for i, s := range input {
		values := make(map[int64]float64, len(s.Data))
		for _, p := range s.Data {
			ms, err := p.X.UnixMilli(o.loc)
			if err != nil {
				continue
			}
			seen[ms] = struct{}{}
			if v, ok := p.Y.Float(); ok {
				values[ms] = v
			} else {
				delete(values, ms)
			}
		}
		resolved[i] = values
	}

	xs := make([]int64, 0, len(seen))
	for ms := range seen {
		xs = append(xs, ms)
	}
	slices.Sort(xs)

	index := make(map[int64]int, len(xs))
	for i, ms := range xs {
		index[ms] = i
	}

	// 2. Densify each series and drop the empty ones
	out := Aligned{XValues: xs, Series: []AlignedSery{}, AxisKeys: []AxisKey{}}
	usedAxes := make(map[AxisKey]bool)
	for i, s := range input {
		if len(resolved[i]) == 0 {
			continue
		}
		data := make([]*float64, len(xs))
		for ms, v := range resolved[i] {
			data[index[ms]] = floatPtr(v)
		}

		label := s.Label
		if label == "" {
			label = s.ID
		}
		key := axisKey(s.Axis)
		usedAxes[key] = true
		out.Series = append(out.Series, AlignedSery{
			ID:        s.ID,
			Label:     label,
			Color:     s.Color,
			AxisKey:   key,
			ValueType: s.ValueType,
			Data:      data,
		})
	}

	for _, key := range []AxisKey{AxisLeft, AxisRight} {
		if usedAxes[key] {
			out.AxisKeys = append(out.AxisKeys, key)
		}
	}
	return out
}

// FromResult turns aggregated daily values into one input series per
// parameter, in parameter order.
func FromResult(res series.Result, params []string) []InputSeries {
	out := make([]InputSeries, len(params))
	for i, p := range params {
		out[i] = InputSeries{ID: p}
	}
	for _, day := range res.DailyValues {
		for i := range params {
			if i >= len(day.Values) {
				break
			}
			p := Point{X: DateX(day.Date)}
			if v := day.Values[i]; v != nil {
				p.Y = series.Num(*v)
			}
			out[i].Data = append(out[i].Data, p)
		}
	}
	return out
}

func floatPtr(v float64) *float64 {
	return &v
}
