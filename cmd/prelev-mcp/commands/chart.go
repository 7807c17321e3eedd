package commands

import (
	"fmt"
	"io"
	"time"

	"prelev-mcp/internal/chart"
	"prelev-mcp/internal/config"
	"prelev-mcp/internal/series"
	"prelev-mcp/internal/visuals"

	"github.com/spf13/cobra"
)

type chartOptions struct {
	input    string
	profile  string
	params   []string
	mermaid  bool
	title    string
	location *time.Location
}

func newChartCmd() *cobra.Command {
	var opts chartOptions
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Align and compose chart series",
		Long: `Reads a JSON list of series ({id, label?, axis?, color?, data: [{x, y}]}) and prints the
composed chart. With --params the input is instead the output of "aggregate", and one
series is built per parameter from its daily values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.location = cfg.Location
			return runChart(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "series file (JSON)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "chart profile (YAML)")
	cmd.Flags().StringSliceVarP(&opts.params, "params", "p", nil, "read an aggregation result with these parameters")
	cmd.Flags().BoolVar(&opts.mermaid, "mermaid", false, "print a Mermaid xychart-beta block instead of JSON")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title (with --mermaid)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runChart(w io.Writer, opts chartOptions) error {
	var input []chart.InputSeries
	if len(opts.params) > 0 {
		var res series.Result
		if err := readJSON(opts.input, &res); err != nil {
			return err
		}
		input = chart.FromResult(res, opts.params)
	} else if err := readJSON(opts.input, &input); err != nil {
		return err
	}

	profile := &chart.Profile{HiddenColor: chart.DefaultHiddenColor}
	if opts.profile != "" {
		var err error
		if profile, err = config.LoadProfile(opts.profile); err != nil {
			return err
		}
	}

	composed := chart.Build(input, *profile, opts.location)
	if opts.mermaid {
		_, err := fmt.Fprintln(w, visuals.GenerateChart(composed, visuals.Options{Title: opts.title, Location: opts.location}))
		return err
	}
	return writeJSON(w, composed)
}
