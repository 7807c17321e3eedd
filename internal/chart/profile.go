package chart

import (
	"slices"
	"time"
)

// DefaultHiddenColor greys out hidden parameters when a profile sets none.
const DefaultHiddenColor = "#c8c8c8"

// BandProfile pairs a parameter with the series carrying its bounds.
type BandProfile struct {
	Parameter string `yaml:"parameter" json:"parameter"`
	Min       string `yaml:"min" json:"min"`
	Max       string `yaml:"max" json:"max"`
}

// ThresholdProfile is a constant reference line.
type ThresholdProfile struct {
	ID    string  `yaml:"id" json:"id"`
	Label string  `yaml:"label" json:"label,omitempty"`
	Value float64 `yaml:"value" json:"value"`
	Color string  `yaml:"color" json:"color,omitempty"`
	Axis  string  `yaml:"axis" json:"axis,omitempty"`
}

// Profile describes how a set of parameters is drawn.
type Profile struct {
	SeriesTypes map[string]SeriesType `yaml:"series_types" json:"series_types,omitempty"`
	Hidden      []string              `yaml:"hidden" json:"hidden,omitempty"`
	HiddenColor string                `yaml:"hidden_color" json:"hidden_color,omitempty"`
	Colors      map[string]string     `yaml:"colors" json:"colors,omitempty"`
	Axes        map[string]string     `yaml:"axes" json:"axes,omitempty"`
	Thresholds  []ThresholdProfile    `yaml:"thresholds" json:"thresholds,omitempty"`
	Bands       []BandProfile         `yaml:"bands" json:"bands,omitempty"`
	// ClassifyAt splits line series into above/below segments; nil keeps gap-only segments.
	ClassifyAt *float64 `yaml:"classify_at" json:"classify_at,omitempty"`
}

// ColorPolicy greys out hidden parameters.
func (p Profile) ColorPolicy() ColorResolver {
	grey := p.HiddenColor
	if grey == "" {
		grey = DefaultHiddenColor
	}
	return HiddenColorPolicy(p.Hidden, grey)
}

// TypePolicy resolves series types, defaulting to line.
func (p Profile) TypePolicy() TypeResolver {
	return TypePolicy(p.SeriesTypes)
}

// Classifier returns the segment classifier configured by ClassifyAt.
func (p Profile) Classifier() Classifier {
	if p.ClassifyAt == nil {
		return nil
	}
	return ThresholdClassifier(*p.ClassifyAt)
}

// Chart is a composed chart ready for rendering.
type Chart struct {
	XValues  []int64        `json:"xValues"`
	AxisKeys []AxisKey      `json:"axisKeys"`
	Series   []ComposedSery `json:"series"`
}

// Build runs the whole charting pipeline: align, segment, then compose with
// the profile's bands, thresholds and policies. Series used as band bounds are
// drawn only as bands.
func Build(input []InputSeries, p Profile, loc *time.Location) Chart {
	// 1. Apply profile colors and axes before aligning
	styled := make([]InputSeries, len(input))
	for i, s := range input {
		if c, ok := p.Colors[s.ID]; ok && s.Color == "" {
			s.Color = c
		}
		if a, ok := p.Axes[s.ID]; ok && s.Axis == "" {
			s.Axis = a
		}
		styled[i] = s
	}
	aligned := Align(styled, WithLocation(loc))
	length := len(aligned.XValues)

	byID := make(map[string]AlignedSery, len(aligned.Series))
	for _, s := range aligned.Series {
		byID[s.ID] = s
	}

	// 2. Bands, whose bound series leave the stub list
	bound := make(map[string]bool)
	var bands []Band
	for _, bp := range p.Bands {
		lower, okLower := byID[bp.Min]
		upper, okUpper := byID[bp.Max]
		if !okLower || !okUpper {
			continue
		}
		band := BandFromAligned(bp.Parameter, lower, upper)
		if stub, ok := byID[bp.Parameter]; ok {
			band.Color, band.AxisKey = stub.Color, stub.AxisKey
		}
		bands = append(bands, band)
		bound[bp.Min], bound[bp.Max] = true, true
	}

	var stubs []AlignedSery
	for _, s := range aligned.Series {
		if !bound[s.ID] {
			stubs = append(stubs, s)
		}
	}

	// 3. Thresholds
	thresholds := make([]AlignedSery, 0, len(p.Thresholds))
	axes := aligned.AxisKeys
	for _, th := range p.Thresholds {
		label := th.Label
		if label == "" {
			label = th.ID
		}
		axis := axisKey(th.Axis)
		thresholds = append(thresholds, ThresholdSeries(th.ID, label, th.Color, axis, th.Value, length))
		if !slices.Contains(axes, axis) {
			axes = append(axes, axis)
		}
	}

	series := Compose(ComposeInput{
		Stubs:        stubs,
		Segments:     SegmentAll(stubs, p.Classifier()),
		Bands:        bands,
		Thresholds:   thresholds,
		Length:       length,
		ResolveType:  p.TypePolicy(),
		ResolveColor: p.ColorPolicy(),
	})

	return Chart{XValues: aligned.XValues, AxisKeys: sortAxes(axes), Series: series}
}

func sortAxes(axes []AxisKey) []AxisKey {
	out := make([]AxisKey, 0, 2)
	for _, key := range []AxisKey{AxisLeft, AxisRight} {
		if slices.Contains(axes, key) {
			out = append(out, key)
		}
	}
	return out
}
