package config

import (
	"os"
	"path/filepath"
	"testing"

	"prelev-mcp/internal/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfile = `
series_types:
  volume: bar
  debit: line
hidden: [niveau]
colors:
  volume: "#1f77b4"
axes:
  debit: right
classify_at: 120
thresholds:
  - id: vmax
    label: Volume autorisé
    value: 150
    color: red
bands:
  - parameter: debit
    min: debit_min
    max: debit_max
`

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleProfile), 0644))

	p, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, chart.TypeBar, p.SeriesTypes["volume"])
	assert.Equal(t, []string{"niveau"}, p.Hidden)
	assert.Equal(t, chart.DefaultHiddenColor, p.HiddenColor)
	assert.Equal(t, "right", p.Axes["debit"])
	require.Len(t, p.Thresholds, 1)
	assert.Equal(t, 150.0, p.Thresholds[0].Value)
	require.Len(t, p.Bands, 1)
	assert.Equal(t, "debit_max", p.Bands[0].Max)

	assert.Equal(t, chart.TypeBar, p.TypePolicy()("volume"))
	assert.Equal(t, chart.TypeLine, p.TypePolicy()("other"))
	assert.Equal(t, chart.DefaultHiddenColor, p.ColorPolicy()("niveau", "blue"))
	assert.Equal(t, "blue", p.ColorPolicy()("volume", "blue"))
	require.NotNil(t, p.Classifier())
	assert.Equal(t, chart.ClassAbove, p.Classifier()(120))
}

func TestParseProfile_Errors(t *testing.T) {
	_, err := ParseProfile([]byte("series_types:\n  volume: pie\n"))
	assert.ErrorContains(t, err, "unsupported type")

	_, err = ParseProfile([]byte("thresholds:\n  - value: 3\n"))
	assert.ErrorContains(t, err, "missing id")

	_, err = ParseProfile([]byte("bands:\n  - parameter: debit\n"))
	assert.ErrorContains(t, err, "bands[0]")

	_, err = ParseProfile([]byte("hidden: [unterminated"))
	assert.Error(t, err)

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseProfile_Empty(t *testing.T) {
	p, err := ParseProfile(nil)
	require.NoError(t, err)
	assert.Nil(t, p.Classifier())
	assert.Equal(t, chart.TypeLine, p.TypePolicy()("volume"))
}
