package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"prelev-mcp/internal/calendar"
	"prelev-mcp/internal/chart"
	"prelev-mcp/internal/config"
	"prelev-mcp/internal/frequency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunAggregate_MergesFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"volume": [{"date": "2024-01-01", "value": 10}]}`)
	b := writeFile(t, dir, "b.json", `{
		"volume": [{"date": "2024-01-02", "value": "12"}],
		"debit": [{"date": "2024-01-01", "values": {"00:00": 1, "12:00": 3}}, {"date": "bad", "value": 1}]
	}`)

	var out bytes.Buffer
	err := runAggregate(context.Background(), &out, aggregateOptions{
		inputs:   []string{a, b},
		workers:  2,
		location: time.UTC,
	})
	require.NoError(t, err)

	var got struct {
		Params      []string `json:"params"`
		DailyValues []struct {
			Date   string     `json:"date"`
			Values []*float64 `json:"values"`
		} `json:"dailyValues"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []string{"debit", "volume"}, got.Params)
	require.Len(t, got.DailyValues, 2)
	assert.Equal(t, 2.0, *got.DailyValues[0].Values[0])
	assert.Equal(t, 10.0, *got.DailyValues[0].Values[1])
	assert.Nil(t, got.DailyValues[1].Values[0])
	assert.Equal(t, 12.0, *got.DailyValues[1].Values[1])
}

func TestLoadSampleFiles_Errors(t *testing.T) {
	_, err := loadSampleFiles(context.Background(), nil, 1)
	assert.Error(t, err)

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `[1, 2]`)
	_, err = loadSampleFiles(context.Background(), []string{bad, filepath.Join(dir, "missing.json")}, 0)
	assert.Error(t, err)
}

func TestRunCalendar(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "entries.json", `[
		{"date": "01-02-2024", "color": "green"},
		{"date": "15-02-2024", "color": "red"},
		{"date": "2024-02-20"}
	]`)

	var out bytes.Buffer
	require.NoError(t, runCalendar(&out, path, calendar.LocaleEN))

	var got struct {
		Mode      calendar.Mode          `json:"mode"`
		Calendars []calendar.Description `json:"calendars"`
		Invalid   int                    `json:"invalid"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, calendar.ModeMonth, got.Mode)
	assert.Equal(t, 1, got.Invalid)
	require.Len(t, got.Calendars, 1)
	assert.Equal(t, "February 2024", got.Calendars[0].Title)

	allBad := writeFile(t, dir, "bad.json", `[{"date": "2024-02-20"}]`)
	assert.ErrorIs(t, runCalendar(&out, allBad, calendar.LocaleFR), calendar.ErrInvalidDate)
}

func TestRunPeriods(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runPeriods(&out, "2022-06-01", "2024-03-01"))

	var got struct {
		Selectable calendar.SelectablePeriods `json:"selectable"`
		Defaults   []calendar.Period          `json:"defaults"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []int{2022, 2023, 2024}, got.Selectable.Years)
	assert.Len(t, got.Defaults, 3)

	assert.ErrorIs(t, runPeriods(&out, "june", ""), calendar.ErrInvalidDate)
}

func TestRunChart(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "series.json", `[
		{"id": "volume", "data": [{"x": "2024-01-01", "y": 4}, {"x": "2024-01-02", "y": 8}]},
		{"id": "debit", "axis": "right", "data": [{"x": "2024-01-02", "y": 1}]}
	]`)
	profile := writeFile(t, dir, "profile.yaml", `
series_types:
  volume: bar
hidden: [debit]
thresholds:
  - id: seuil
    value: 6
`)

	var out bytes.Buffer
	require.NoError(t, runChart(&out, chartOptions{input: input, profile: profile, location: time.UTC}))

	var got chart.Chart
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Len(t, got.XValues, 2)
	assert.Equal(t, []chart.AxisKey{chart.AxisLeft, chart.AxisRight}, got.AxisKeys)

	ids := make([]string, len(got.Series))
	for i, s := range got.Series {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"volume", "debit", "debit-0", "volume", "seuil"}, ids)
	assert.Equal(t, chart.DefaultHiddenColor, got.Series[1].Color)
}

func TestRunChart_FromAggregation(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "agg.json", `{
		"params": ["volume"],
		"dailyValues": [
			{"date": "2024-01-01", "values": [1], "metas": [null]},
			{"date": "2024-01-02", "values": [null], "metas": [null]}
		],
		"timelineSamples": []
	}`)

	var out bytes.Buffer
	require.NoError(t, runChart(&out, chartOptions{input: input, params: []string{"volume"}, location: time.UTC}))

	var got chart.Chart
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Len(t, got.XValues, 2)
	require.Len(t, got.Series, 2)
	assert.Equal(t, "volume-0", got.Series[1].ID)

	out.Reset()
	require.NoError(t, runChart(&out, chartOptions{input: input, params: []string{"volume"}, mermaid: true, location: time.UTC}))
	assert.Contains(t, out.String(), "xychart-beta")
	assert.Contains(t, out.String(), "line [1, 0]")
}

func TestRunPick(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runPick(&out, "30 minutes", []string{"1 day", "1 hour"}, "fr"))

	var got frequency.Described
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, frequency.Described{Frequency: "1 hour", Label: "1 heure", ISODuration: "PT1H"}, got)

	assert.Error(t, runPick(&out, "1 day", nil, "fr"))
}

func TestResolveLocale(t *testing.T) {
	l, err := resolveLocale("", calendar.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, calendar.LocaleEN, l)

	l, err = resolveLocale("fr-FR", calendar.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, calendar.LocaleFR, l)

	_, err = resolveLocale("de", calendar.LocaleFR)
	assert.ErrorIs(t, err, config.ErrInvalidLocale)
}
