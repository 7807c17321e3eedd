package config

import (
	"fmt"
	"os"

	"prelev-mcp/internal/chart"

	"gopkg.in/yaml.v3"
)

// LoadProfile reads a YAML chart profile.
func LoadProfile(path string) (*chart.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes and validates a YAML chart profile.
func ParseProfile(data []byte) (*chart.Profile, error) {
	var p chart.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := ValidateProfile(&p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &p, nil
}

// ValidateProfile rejects unknown series types and unnamed thresholds, and
// fills in the default hidden color.
func ValidateProfile(p *chart.Profile) error {
	for id, t := range p.SeriesTypes {
		if t != chart.TypeLine && t != chart.TypeBar {
			return fmt.Errorf("series_types[%s]: unsupported type %q", id, t)
		}
	}
	for i, th := range p.Thresholds {
		if th.ID == "" {
			return fmt.Errorf("thresholds[%d]: missing id", i)
		}
	}
	for i, b := range p.Bands {
		if b.Parameter == "" || b.Min == "" || b.Max == "" {
			return fmt.Errorf("bands[%d]: parameter, min and max are required", i)
		}
	}
	if p.HiddenColor == "" {
		p.HiddenColor = chart.DefaultHiddenColor
	}
	return nil
}
