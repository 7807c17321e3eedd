package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"prelev-mcp/internal/calendar"
	"prelev-mcp/internal/frequency"
	"prelev-mcp/internal/series"
)

type GeneratorConfig struct {
	Scenario     string
	Distribution string // "uniform" or "weibull"
	Params       []string
	Days         int
	Frequency    string // sampling frequency; below "1 day" yields sub-daily readings
	Now          time.Time
	Seed         uint64
}

// Dataset is one generated source: raw samples per parameter and the calendar
// entries derived from the first parameter.
type Dataset struct {
	Samples map[string][]series.RawSample
	Entries []calendar.Entry
}

const (
	lowColor  = "#2e7d32"
	midColor  = "#f9a825"
	highColor = "#c62828"
)

func Generate(cfg GeneratorConfig) (Dataset, error) {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if len(cfg.Params) == 0 {
		cfg.Params = []string{"volume"}
	}

	step := 24 * time.Hour
	if cfg.Frequency != "" {
		f, err := frequency.Parse(cfg.Frequency)
		if err != nil {
			return Dataset{}, err
		}
		step = f.Approx()
	}
	if step <= 0 {
		return Dataset{}, fmt.Errorf("frequency %q has no duration", cfg.Frequency)
	}
	subDaily := step < 24*time.Hour

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	out := Dataset{Samples: make(map[string][]series.RawSample, len(cfg.Params))}

	// The last day generated is today (cfg.Now)
	first := cfg.Now.AddDate(0, 0, -(cfg.Days - 1))

	for p, param := range cfg.Params {
		samples := make([]series.RawSample, 0, cfg.Days)
		for i := 0; i < cfg.Days; i++ {
			day := first.AddDate(0, 0, i)
			date := day.Format("2006-01-02")

			// 1. Missing days
			if cfg.Scenario == "chaos" && rng.Float64() < 0.05 {
				continue
			}

			sample := series.RawSample{Date: date}
			if subDaily {
				sample.Values = readings(rng, cfg, i, step, p%2 == 1)
			} else {
				sample.Value = value(rng, cfg, i)
			}

			// 2. Remarks on estimated values
			if cfg.Scenario != "mild" && rng.Float64() < 0.1 {
				sample.Remark = "Valeur estimée"
				sample.Remarks = []string{"Compteur en panne", "Valeur estimée"}
			}
			samples = append(samples, sample)

			if p == 0 {
				out.Entries = append(out.Entries, entry(day, sample))
			}
		}
		out.Samples[param] = samples
	}

	return out, nil
}

// value draws one daily measurement.
func value(rng *rand.Rand, cfg GeneratorConfig, i int) series.Number {
	if cfg.Scenario == "chaos" && rng.Float64() < 0.08 {
		// upstream encodes unreadable meters as text
		return series.ParseNumber("n/a")
	}

	var v float64
	if cfg.Distribution == "weibull" {
		k, lambda := 2.5, 120.0
		if cfg.Scenario == "chaos" {
			k = 0.8
		}
		v = weibullSample(rng, k, lambda)
	} else {
		v = 80 + rng.Float64()*40
		if cfg.Scenario == "chaos" && rng.Float64() < 0.1 {
			v += 200 + rng.Float64()*300 // Pumping peaks
		}
	}

	if cfg.Scenario == "drift" && cfg.Days > 0 {
		ratio := float64(i) / float64(cfg.Days)
		v *= 1 + ratio // Withdrawals double over the period
	}
	return series.Num(math.Round(v*100) / 100)
}

// readings draws the intra-day measurements of one day, in list form (with
// per-reading remarks) or map form.
func readings(rng *rand.Rand, cfg GeneratorConfig, i int, step time.Duration, list bool) series.SubDailyValues {
	var entries []series.SubDailyEntry
	for offset := time.Duration(0); offset < 24*time.Hour; offset += step {
		clock := time.Time{}.Add(offset).Format("15:04")
		e := series.SubDailyEntry{Time: clock, Value: value(rng, cfg, i)}
		if list && !e.Value.Valid {
			e.Remark = "Lecture impossible"
		}
		entries = append(entries, e)
	}

	if list {
		return series.NewSubDailyList(entries...)
	}
	values := make(map[string]float64, len(entries))
	for _, e := range entries {
		if v, ok := e.Value.Float(); ok {
			values[e.Time] = v
		}
	}
	return series.NewSubDailyMap(values)
}

// entry colors a calendar day by the level of its first reading.
func entry(day time.Time, sample series.RawSample) calendar.Entry {
	e := calendar.Entry{Date: day.Format(calendar.EntryLayout)}

	v, ok := sample.Value.Float()
	if !ok && len(sample.Values.Entries) > 0 {
		v, ok = sample.Values.Entries[0].Value.Float()
	}
	switch {
	case !ok:
	case v < 100:
		e.Color = lowColor
	case v < 200:
		e.Color = midColor
	default:
		e.Color = highColor
	}
	return e
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// Save writes <sourceID>_samples.json, readable by "prelev-mcp aggregate",
// and <sourceID>_entries.json, readable by "prelev-mcp calendar".
func Save(outDir string, sourceID string, ds Dataset) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(outDir, fmt.Sprintf("%s_samples.json", sourceID)), ds.Samples); err != nil {
		return err
	}
	return writeJSON(filepath.Join(outDir, fmt.Sprintf("%s_entries.json", sourceID)), ds.Entries)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
