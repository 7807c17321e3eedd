package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prelev-mcp/internal/calendar"
	"prelev-mcp/internal/chart"
	"prelev-mcp/internal/config"
	"prelev-mcp/internal/frequency"
	"prelev-mcp/internal/observability"
	"prelev-mcp/internal/series"
	"prelev-mcp/internal/visuals"

	"github.com/rs/zerolog/log"
)

var errUnknownSeries = errors.New("unknown series")

func (s *Server) localeOr(tag string) (calendar.Locale, error) {
	if tag == "" {
		return s.locale, nil
	}
	l, ok := calendar.ParseLocale(tag)
	if !ok {
		return "", fmt.Errorf("%w: %q", config.ErrInvalidLocale, tag)
	}
	return l, nil
}

func (s *Server) handleAggregate(_ context.Context, in aggregateInput) (any, error) {
	defer s.metrics.ObserveSince(observability.PipelineAggregate, time.Now())

	var loaded map[string][]series.RawSample
	if err := remarshal(in.Samples, &loaded); err != nil {
		return nil, fmt.Errorf("decode samples: %w", err)
	}

	skipped := 0
	res := series.Aggregate(loaded, in.Params,
		series.WithLocation(s.location),
		series.WithWarnFunc(func(param string, sample series.RawSample, err error) {
			skipped++
			s.metrics.Skipped(observability.PipelineAggregate)
			log.Warn().Str("param", param).Str("date", sample.Date).Err(err).Msg("Skipping sample")
		}),
	)

	id := ""
	if in.SeriesID != "" {
		id = series.SeriesKey(in.SeriesID)
		s.registry.Register(id, res)
		s.metrics.SetRegistryEntries(s.registry.Len())
		log.Debug().Str("series", id).Int("days", len(res.DailyValues)).Msg("Registered series")
	}

	return map[string]any{
		"series_id":       id,
		"params":          in.Params,
		"skipped":         skipped,
		"dailyValues":     res.DailyValues,
		"timelineSamples": res.TimelineSamples,
	}, nil
}

func (s *Server) handleGetSeries(_ context.Context, in getSeriesInput) (any, error) {
	if in.SeriesID == "" {
		return map[string]any{"series_ids": s.registry.IDs()}, nil
	}

	start, err := dayBound(in.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := dayBound(in.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	id := series.SeriesKey(in.SeriesID)
	res, ok := s.registry.Get(id, start, end)
	s.metrics.SetRegistryEntries(s.registry.Len())
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownSeries, id)
	}
	return map[string]any{
		"series_id":       id,
		"dailyValues":     res.DailyValues,
		"timelineSamples": res.TimelineSamples,
	}, nil
}

// dayBound normalizes an optional range bound to yyyy-MM-dd.
func dayBound(v string) (string, error) {
	t, err := calendar.ParseDateBound(v)
	if err != nil || t == nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

func (s *Server) handleClearSeries(_ context.Context, in clearSeriesInput) (any, error) {
	defer func() { s.metrics.SetRegistryEntries(s.registry.Len()) }()

	if in.SeriesID == "" {
		n := s.registry.Len()
		s.registry.ClearAll()
		return map[string]any{"cleared": n}, nil
	}

	id := series.SeriesKey(in.SeriesID)
	if !s.registry.Clear(id) {
		return nil, fmt.Errorf("%w: %s", errUnknownSeries, id)
	}
	return map[string]any{"cleared": 1, "series_id": id}, nil
}

func (s *Server) handlePeriods(_ context.Context, in periodsInput) (any, error) {
	start, err := calendar.ParseDateBound(in.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := calendar.ParseDateBound(in.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return map[string]any{
		"selectable": calendar.CalculateSelectablePeriods(start, end),
		"defaults":   calendar.ExtractDefaultPeriods(start, end),
	}, nil
}

func (s *Server) handleCalendar(_ context.Context, in calendarInput) (any, error) {
	defer s.metrics.ObserveSince(observability.PipelineCalendar, time.Now())

	locale, err := s.localeOr(in.Locale)
	if err != nil {
		return nil, err
	}

	entries := make([]calendar.Entry, len(in.Entries))
	for i, e := range in.Entries {
		entries[i] = calendar.Entry{Date: e.Date, Color: e.Color}
	}

	data := calendar.Process(entries, func(e calendar.Entry, err error) {
		s.metrics.Skipped(observability.PipelineCalendar)
		log.Warn().Str("date", e.Date).Err(err).Msg("Skipping calendar entry")
	})
	mode, descs := calendar.Build(data, locale)

	return map[string]any{
		"mode":         mode,
		"calendars":    descs,
		"total":        data.Total,
		"invalid":      data.Invalid,
		"format_error": data.AllInvalid(),
	}, nil
}

func (s *Server) decodeSeries(raw []any) ([]chart.InputSeries, error) {
	var input []chart.InputSeries
	if err := remarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}
	for i, in := range input {
		if in.ID == "" {
			return nil, fmt.Errorf("series[%d]: missing id", i)
		}
	}
	return input, nil
}

func (s *Server) handleAlign(_ context.Context, in alignInput) (any, error) {
	defer s.metrics.ObserveSince(observability.PipelineChart, time.Now())

	input, err := s.decodeSeries(in.Series)
	if err != nil {
		return nil, err
	}
	return chart.Align(input, chart.WithLocation(s.location)), nil
}

func (s *Server) handleCompose(_ context.Context, in composeInput) (any, error) {
	defer s.metrics.ObserveSince(observability.PipelineChart, time.Now())

	input, err := s.decodeSeries(in.Series)
	if err != nil {
		return nil, err
	}

	var profile chart.Profile
	if in.Profile != nil {
		if err := remarshal(in.Profile, &profile); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
	}
	if err := config.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	composed := chart.Build(input, profile, s.location)
	if in.Format == "mermaid" {
		return markdown(visuals.GenerateChart(composed, visuals.Options{Title: in.Title, Location: s.location})), nil
	}
	return composed, nil
}

func (s *Server) handleSortFrequencies(_ context.Context, in sortInput) (any, error) {
	defer s.metrics.ObserveSince(observability.PipelineFrequency, time.Now())

	locale, err := s.localeOr(in.Locale)
	if err != nil {
		return nil, err
	}
	sorted := frequency.Sort(in.Frequencies)
	return map[string]any{
		"sorted":      sorted,
		"frequencies": frequency.DescribeAll(sorted, string(locale)),
	}, nil
}

func (s *Server) handlePickFrequency(_ context.Context, in pickInput) (any, error) {
	defer s.metrics.ObserveSince(observability.PipelineFrequency, time.Now())

	locale, err := s.localeOr(in.Locale)
	if err != nil {
		return nil, err
	}
	picked := frequency.PickAvailable(in.Target, in.Available)
	if picked == "" {
		return nil, errors.New("no frequency available")
	}
	return map[string]any{
		"target": in.Target,
		"exact":  picked == in.Target,
		"picked": frequency.Describe(picked, string(locale)),
	}, nil
}
