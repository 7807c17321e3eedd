package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func composeFixture() ComposeInput {
	volume := AlignedSery{ID: "volume", Label: "Volume", Color: "blue", AxisKey: AxisLeft, Data: dense(1.0, 8.0, nil, 2.0)}
	debit := AlignedSery{ID: "debit", Label: "Débit", Color: "green", AxisKey: AxisRight, Data: dense(3.0, 9.0, 9.0, nil)}

	return ComposeInput{
		Stubs: []AlignedSery{volume, debit},
		Segments: map[string][]Segment{
			"volume": ClassifySegments("volume", volume.Data, ThresholdClassifier(5)),
			"debit":  ClassifySegments("debit", debit.Data, ThresholdClassifier(5)),
		},
		Thresholds:  []AlignedSery{ThresholdSeries("limit", "Seuil", "red", AxisLeft, 5, 4)},
		Length:      4,
		ResolveType: TypePolicy(map[string]SeriesType{"debit": TypeBar}),
	}
}

func TestCompose_Order(t *testing.T) {
	out := Compose(composeFixture())

	var kinds []string
	for _, s := range out {
		kind := string(s.Type)
		if s.Legend {
			kind = "legend:" + kind
		}
		kinds = append(kinds, s.ID+"/"+kind)
	}
	assert.Equal(t, []string{
		"volume/legend:line",
		"debit/legend:bar",
		"volume-0/line",
		"volume-1/line",
		"volume-2/line",
		"debit/bar",
		"limit/line",
	}, kinds)
}

func TestCompose_LegendStubsHaveNoData(t *testing.T) {
	out := Compose(composeFixture())
	for _, s := range out[:2] {
		assert.True(t, s.Legend)
		assert.Empty(t, s.Data)
		assert.NotNil(t, s.Data)
	}
}

func TestCompose_BarsMerged(t *testing.T) {
	out := Compose(composeFixture())
	bar := out[5]
	require.Equal(t, TypeBar, bar.Type)
	assert.Equal(t, "Débit", bar.Label)
	assert.Equal(t, AxisRight, bar.AxisKey)
	assert.Equal(t, []any{3.0, 9.0, 9.0, nil}, values(bar.Data))
}

func TestCompose_BarOverlapLastWriteWins(t *testing.T) {
	in := ComposeInput{
		Stubs: []AlignedSery{{ID: "p"}},
		Segments: map[string][]Segment{"p": {
			{ID: "p-0", Data: dense(1.0, 1.0, nil)},
			{ID: "p-1", Data: dense(nil, 2.0, 2.0)},
		}},
		ResolveType: func(string) SeriesType { return TypeBar },
	}
	out := Compose(in)
	require.Len(t, out, 2)
	assert.Equal(t, []any{1.0, 2.0, 2.0}, values(out[1].Data))
}

func TestCompose_HiddenColorPolicy(t *testing.T) {
	in := composeFixture()
	in.ResolveColor = HiddenColorPolicy([]string{"volume"}, "grey")

	out := Compose(in)
	assert.Equal(t, "grey", out[0].Color)
	assert.Equal(t, "green", out[1].Color)
	assert.Equal(t, "grey", out[2].Color)
	assert.Equal(t, "red", out[len(out)-1].Color)
}

func TestCompose_Bands(t *testing.T) {
	lower := AlignedSery{ID: "vmin", Label: "Min", Color: "lightblue", AxisKey: AxisLeft, Data: dense(1.0, 2.0)}
	upper := AlignedSery{ID: "vmax", Label: "Max", Data: dense(3.0, 4.0)}

	out := Compose(ComposeInput{
		Stubs:      []AlignedSery{{ID: "volume", Label: "Volume"}},
		Bands:      []Band{BandFromAligned("volume", lower, upper)},
		Thresholds: []AlignedSery{{ID: "t", Data: dense(5.0, 5.0)}},
	})

	require.Len(t, out, 3)
	band := out[1]
	assert.Equal(t, TypeBand, band.Type)
	assert.Equal(t, "volume-band", band.ID)
	assert.Equal(t, "volume", band.OriginalID)
	assert.Equal(t, []any{1.0, 2.0}, values(band.Min))
	assert.Equal(t, []any{3.0, 4.0}, values(band.Max))
	assert.Equal(t, TypeLine, out[2].Type)
}

func TestCompose_DefaultsToLine(t *testing.T) {
	out := Compose(ComposeInput{
		Stubs:        []AlignedSery{{ID: "a", Color: "c"}},
		ResolveType:  func(string) SeriesType { return "area" },
		ResolveColor: nil,
	})
	require.Len(t, out, 1)
	assert.Equal(t, TypeLine, out[0].Type)
	assert.Equal(t, "c", out[0].Color)
}
