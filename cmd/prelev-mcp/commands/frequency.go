package commands

import (
	"errors"
	"io"

	"prelev-mcp/internal/frequency"

	"github.com/spf13/cobra"
)

func newFrequencyCmd() *cobra.Command {
	var locale string
	cmd := &cobra.Command{
		Use:   "frequency",
		Short: "Order and pick sampling frequencies",
	}
	cmd.PersistentFlags().StringVar(&locale, "locale", "", "label locale: fr or en (default from PRELEV_LOCALE)")

	sortCmd := &cobra.Command{
		Use:   "sort FREQUENCY...",
		Short: "Order frequencies from finest to coarsest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := resolveLocale(locale, cfg.Locale)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), frequency.DescribeAll(frequency.Sort(args), string(l)))
		},
	}

	var target string
	pickCmd := &cobra.Command{
		Use:   "pick AVAILABLE...",
		Short: "Pick the available frequency closest to --target",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := resolveLocale(locale, cfg.Locale)
			if err != nil {
				return err
			}
			return runPick(cmd.OutOrStdout(), target, args, string(l))
		},
	}
	pickCmd.Flags().StringVar(&target, "target", "", "wanted frequency")

	cmd.AddCommand(sortCmd, pickCmd)
	return cmd
}

func runPick(w io.Writer, target string, available []string, locale string) error {
	picked := frequency.PickAvailable(target, available)
	if picked == "" {
		return errors.New("no frequency available")
	}
	return writeJSON(w, frequency.Describe(picked, locale))
}
