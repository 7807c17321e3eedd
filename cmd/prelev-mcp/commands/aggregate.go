package commands

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"prelev-mcp/internal/series"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type aggregateOptions struct {
	inputs   []string
	params   []string
	workers  int
	location *time.Location
}

func newAggregateCmd() *cobra.Command {
	var opts aggregateOptions
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Fold raw sample files into daily values and a timeline",
		Long: `Reads one or more JSON files, each an object of raw samples keyed by parameter label,
and prints the aggregated daily values and timeline. Samples of a parameter found in
several files are concatenated in file order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.workers = cfg.Workers
			opts.location = cfg.Location
			return runAggregate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.inputs, "input", "i", nil, "sample files (JSON)")
	cmd.Flags().StringSliceVarP(&opts.params, "params", "p", nil, "selected parameters in slot order (default: all, sorted)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runAggregate(ctx context.Context, w io.Writer, opts aggregateOptions) error {
	loaded, err := loadSampleFiles(ctx, opts.inputs, opts.workers)
	if err != nil {
		return err
	}

	params := opts.params
	if len(params) == 0 {
		params = slices.Sorted(maps.Keys(loaded))
	}

	skipped := 0
	res := series.Aggregate(loaded, params,
		series.WithLocation(opts.location),
		series.WithWarnFunc(func(param string, sample series.RawSample, err error) {
			skipped++
			log.Warn().Str("param", param).Str("date", sample.Date).Err(err).Msg("Skipping sample")
		}),
	)
	log.Info().
		Int("days", len(res.DailyValues)).
		Int("timeline", len(res.TimelineSamples)).
		Int("skipped", skipped).
		Msg("Aggregation complete")

	return writeJSON(w, struct {
		Params []string `json:"params"`
		series.Result
	}{Params: params, Result: res})
}

// loadSampleFiles decodes the files concurrently and merges them in input order.
func loadSampleFiles(ctx context.Context, paths []string, workers int) (map[string][]series.RawSample, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files")
	}

	parts := make([]map[string][]series.RawSample, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var part map[string][]series.RawSample
			if err := readJSON(path, &part); err != nil {
				return err
			}
			parts[i] = part
			log.Debug().Str("path", path).Int("params", len(part)).Msg("Loaded sample file")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string][]series.RawSample)
	for _, part := range parts {
		for param, samples := range part {
			merged[param] = append(merged[param], samples...)
		}
	}
	return merged, nil
}
