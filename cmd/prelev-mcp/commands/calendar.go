package commands

import (
	"fmt"
	"io"

	"prelev-mcp/internal/calendar"
	"prelev-mcp/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCalendarCmd() *cobra.Command {
	var input, locale string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Build calendar grids from dated entries",
		Long:  `Reads a JSON list of {date: "dd-MM-yyyy", color?} entries and prints the calendar mode and grids.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := resolveLocale(locale, cfg.Locale)
			if err != nil {
				return err
			}
			return runCalendar(cmd.OutOrStdout(), input, l)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "entries file (JSON)")
	cmd.Flags().StringVar(&locale, "locale", "", "label locale: fr or en (default from PRELEV_LOCALE)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runCalendar(w io.Writer, input string, locale calendar.Locale) error {
	var entries []calendar.Entry
	if err := readJSON(input, &entries); err != nil {
		return err
	}

	data := calendar.Process(entries, func(e calendar.Entry, err error) {
		log.Warn().Str("date", e.Date).Err(err).Msg("Skipping calendar entry")
	})
	if data.AllInvalid() {
		return fmt.Errorf("%s: %w: no entry is dd-MM-yyyy", input, calendar.ErrInvalidDate)
	}

	mode, descs := calendar.Build(data, locale)
	return writeJSON(w, map[string]any{
		"mode":      mode,
		"calendars": descs,
		"total":     data.Total,
		"invalid":   data.Invalid,
	})
}

func newPeriodsCmd() *cobra.Command {
	var start, end string
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "List selectable and default periods for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeriods(cmd.OutOrStdout(), start, end)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "range start, yyyy-MM-dd or RFC 3339")
	cmd.Flags().StringVar(&end, "end", "", "range end, yyyy-MM-dd or RFC 3339")
	return cmd
}

func runPeriods(w io.Writer, start, end string) error {
	from, err := calendar.ParseDateBound(start)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	to, err := calendar.ParseDateBound(end)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	return writeJSON(w, map[string]any{
		"selectable": calendar.CalculateSelectablePeriods(from, to),
		"defaults":   calendar.ExtractDefaultPeriods(from, to),
	})
}

func resolveLocale(tag string, fallback calendar.Locale) (calendar.Locale, error) {
	if tag == "" {
		return fallback, nil
	}
	l, ok := calendar.ParseLocale(tag)
	if !ok {
		return "", fmt.Errorf("%w: %q", config.ErrInvalidLocale, tag)
	}
	return l, nil
}
