package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FullPipeline(t *testing.T) {
	at := 5.0
	profile := Profile{
		SeriesTypes: map[string]SeriesType{"volume": TypeBar},
		Hidden:      []string{"niveau"},
		Colors:      map[string]string{"volume": "blue", "debit": "green"},
		Axes:        map[string]string{"debit": "right"},
		Thresholds:  []ThresholdProfile{{ID: "limit", Value: 8, Color: "red"}},
		Bands:       []BandProfile{{Parameter: "debit", Min: "debit_min", Max: "debit_max"}},
		ClassifyAt:  &at,
	}
	input := []InputSeries{
		{ID: "volume", Data: pts("2024-01-01", 2.0, "2024-01-02", 9.0)},
		{ID: "debit", Data: pts("2024-01-01", 1.0, "2024-01-02", 7.0, "2024-01-03", 3.0)},
		{ID: "debit_min", Data: pts("2024-01-01", 0.5, "2024-01-02", 6.0)},
		{ID: "debit_max", Data: pts("2024-01-01", 1.5, "2024-01-02", 8.0)},
		{ID: "niveau", Color: "brown", Data: pts("2024-01-03", 4.0)},
	}

	out := Build(input, profile, time.UTC)

	require.Len(t, out.XValues, 3)
	assert.Equal(t, []AxisKey{AxisLeft, AxisRight}, out.AxisKeys)

	var ids []string
	for _, s := range out.Series {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{
		"volume", "debit", "niveau", // legend
		"debit-0", "debit-1", "debit-2", "niveau-0", // line segments
		"volume", // merged bar
		"debit-band",
		"limit",
	}, ids)

	assert.Equal(t, TypeBar, out.Series[0].Type)
	assert.Equal(t, DefaultHiddenColor, out.Series[2].Color)
	assert.Equal(t, AxisRight, out.Series[3].AxisKey)
	assert.Equal(t, []any{2.0, 9.0, nil}, values(out.Series[7].Data))

	band := out.Series[8]
	assert.Equal(t, TypeBand, band.Type)
	assert.Equal(t, "green", band.Color)
	assert.Equal(t, AxisRight, band.AxisKey)
	assert.Len(t, band.Min, 3)

	limit := out.Series[9]
	assert.Equal(t, "limit", limit.Label)
	assert.Equal(t, []any{8.0, 8.0, 8.0}, values(limit.Data))
}

func TestBuild_EmptyProfile(t *testing.T) {
	out := Build([]InputSeries{{ID: "a", Data: pts("2024-01-01", 1.0)}}, Profile{}, time.UTC)
	require.Len(t, out.Series, 2)
	assert.True(t, out.Series[0].Legend)
	assert.Equal(t, "a-0", out.Series[1].ID)
}

func TestBuild_ThresholdAddsAxis(t *testing.T) {
	out := Build(
		[]InputSeries{{ID: "a", Data: pts("2024-01-01", 1.0)}},
		Profile{Thresholds: []ThresholdProfile{{ID: "t", Value: 1, Axis: "right"}}},
		time.UTC,
	)
	assert.Equal(t, []AxisKey{AxisLeft, AxisRight}, out.AxisKeys)
}
