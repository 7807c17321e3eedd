package chart

// SeriesType is how a composed series is drawn.
type SeriesType string

const (
	TypeLine SeriesType = "line"
	TypeBar  SeriesType = "bar"
	TypeBand SeriesType = "band"
)

// TypeResolver picks the drawing type of a parameter.
type TypeResolver func(originalID string) SeriesType

// ColorResolver picks the displayed color of a parameter from its base color.
type ColorResolver func(originalID, baseColor string) string

// ComposedSery is one renderable series.
type ComposedSery struct {
	ID         string     `json:"id"`
	OriginalID string     `json:"originalId"`
	Label      string     `json:"label"`
	Color      string     `json:"color"`
	AxisKey    AxisKey    `json:"axisKey"`
	Type       SeriesType `json:"type"`
	ValueType  string     `json:"valueType,omitempty"`
	Legend     bool       `json:"legend"`
	Data       []*float64 `json:"data"`
	Min        []*float64 `json:"min,omitempty"`
	Max        []*float64 `json:"max,omitempty"`
}

// Band is a min/max envelope drawn behind a parameter.
type Band struct {
	ID         string     `json:"id"`
	OriginalID string     `json:"originalId"`
	Label      string     `json:"label,omitempty"`
	Color      string     `json:"color,omitempty"`
	AxisKey    AxisKey    `json:"axisKey,omitempty"`
	Min        []*float64 `json:"min"`
	Max        []*float64 `json:"max"`
}

// ComposeInput gathers everything Compose assembles. Length is the shared x
// axis length; merged bars are never shorter than their longest segment.
type ComposeInput struct {
	Stubs        []AlignedSery
	Segments     map[string][]Segment
	Bands        []Band
	Thresholds   []AlignedSery
	Length       int
	ResolveType  TypeResolver
	ResolveColor ColorResolver
}

// Compose builds the final series list in a fixed order: one legend stub per
// parameter, line segments, merged bars, bands, then thresholds drawn as lines.
func Compose(in ComposeInput) []ComposedSery {
	resolveType := in.ResolveType
	if resolveType == nil {
		resolveType = func(string) SeriesType { return TypeLine }
	}
	resolveColor := in.ResolveColor
	if resolveColor == nil {
		resolveColor = func(_, base string) string { return base }
	}

	typeOf := func(id string) SeriesType {
		if t := resolveType(id); t == TypeBar {
			return TypeBar
		}
		return TypeLine
	}

	out := make([]ComposedSery, 0, len(in.Stubs)*2+len(in.Bands)+len(in.Thresholds))

	// 1. Legend stubs
	for _, stub := range in.Stubs {
		out = append(out, ComposedSery{
			ID:         stub.ID,
			OriginalID: stub.ID,
			Label:      stub.Label,
			Color:      resolveColor(stub.ID, stub.Color),
			AxisKey:    stub.AxisKey,
			Type:       typeOf(stub.ID),
			ValueType:  stub.ValueType,
			Legend:     true,
			Data:       []*float64{},
		})
	}

	// 2. Line segments, each kept on its own so gaps stay gaps
	for _, stub := range in.Stubs {
		if typeOf(stub.ID) != TypeLine {
			continue
		}
		for _, seg := range in.Segments[stub.ID] {
			out = append(out, ComposedSery{
				ID:         seg.ID,
				OriginalID: stub.ID,
				Label:      stub.Label,
				Color:      resolveColor(stub.ID, stub.Color),
				AxisKey:    stub.AxisKey,
				Type:       TypeLine,
				ValueType:  stub.ValueType,
				Data:       seg.Data,
			})
		}
	}

	// 3. Bars, segments merged back into one array
	for _, stub := range in.Stubs {
		segs := in.Segments[stub.ID]
		if typeOf(stub.ID) != TypeBar || len(segs) == 0 {
			continue
		}
		out = append(out, ComposedSery{
			ID:         stub.ID,
			OriginalID: stub.ID,
			Label:      stub.Label,
			Color:      resolveColor(stub.ID, stub.Color),
			AxisKey:    stub.AxisKey,
			Type:       TypeBar,
			ValueType:  stub.ValueType,
			Data:       mergeSegments(segs, in.Length),
		})
	}

	// 4. Bands
	for _, b := range in.Bands {
		axis := b.AxisKey
		if axis == "" {
			axis = AxisLeft
		}
		out = append(out, ComposedSery{
			ID:         b.ID,
			OriginalID: b.OriginalID,
			Label:      b.Label,
			Color:      resolveColor(b.OriginalID, b.Color),
			AxisKey:    axis,
			Type:       TypeBand,
			Data:       []*float64{},
			Min:        b.Min,
			Max:        b.Max,
		})
	}

	// 5. Thresholds
	for _, th := range in.Thresholds {
		out = append(out, ComposedSery{
			ID:         th.ID,
			OriginalID: th.ID,
			Label:      th.Label,
			Color:      th.Color,
			AxisKey:    th.AxisKey,
			Type:       TypeLine,
			ValueType:  th.ValueType,
			Data:       th.Data,
		})
	}
	return out
}

// mergeSegments overwrites non-nil values in segment order; on overlap the
// last segment wins.
func mergeSegments(segs []Segment, length int) []*float64 {
	for _, s := range segs {
		length = max(length, len(s.Data))
	}
	merged := make([]*float64, length)
	for _, s := range segs {
		for i, v := range s.Data {
			if v != nil {
				merged[i] = floatPtr(*v)
			}
		}
	}
	return merged
}

// HiddenColorPolicy greys out hidden parameters and keeps the base color of the rest.
func HiddenColorPolicy(hidden []string, grey string) ColorResolver {
	set := make(map[string]struct{}, len(hidden))
	for _, id := range hidden {
		set[id] = struct{}{}
	}
	return func(id, base string) string {
		if _, ok := set[id]; ok {
			return grey
		}
		return base
	}
}

// TypePolicy resolves types from a fixed map, defaulting to line.
func TypePolicy(types map[string]SeriesType) TypeResolver {
	return func(id string) SeriesType {
		if t, ok := types[id]; ok {
			return t
		}
		return TypeLine
	}
}

// ThresholdSeries builds a constant series across an axis of the given length.
func ThresholdSeries(id, label, color string, axis AxisKey, value float64, length int) AlignedSery {
	data := make([]*float64, length)
	for i := range data {
		data[i] = floatPtr(value)
	}
	return AlignedSery{ID: id, Label: label, Color: color, AxisKey: axis, Data: data}
}

// BandFromAligned builds the envelope of originalID from two aligned series
// carrying its lower and upper bounds.
func BandFromAligned(originalID string, lower, upper AlignedSery) Band {
	return Band{
		ID:         originalID + "-band",
		OriginalID: originalID,
		Label:      lower.Label + " / " + upper.Label,
		Color:      lower.Color,
		AxisKey:    lower.AxisKey,
		Min:        lower.Data,
		Max:        upper.Data,
	}
}
