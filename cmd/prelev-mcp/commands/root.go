package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prelev-mcp/internal/config"
	"prelev-mcp/internal/logging"
	"prelev-mcp/internal/mcp"
	"prelev-mcp/internal/observability"
	"prelev-mcp/internal/series"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "prelev-mcp",
	Short: "prelev-mcp aggregates water-withdrawal series for charts and calendars",
	Long: `An MCP Server that folds raw water-withdrawal samples into daily values and a unified
timeline, buckets dated entries into calendar grids and composes chart series.
Every tool is also available as a subcommand reading JSON files.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("locale", string(cfg.Locale)).
			Str("timezone", cfg.Location.String()).
			Msg("prelev-mcp starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

// serve runs the MCP server on stdio and, when configured, the metrics
// endpoint. Both stop when the client disconnects or ctx ends.
func serve(ctx context.Context, c *config.AppConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metrics := observability.NewMetrics()
	registry := series.NewRegistry(series.WithMaxAge(c.RegistryMaxAge))
	server := mcp.NewServer(registry,
		mcp.WithMetrics(metrics),
		mcp.WithLocale(c.Locale),
		mcp.WithLocation(c.Location),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if err := server.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if c.MetricsAddr != "" {
		httpServer := observability.NewServer(c.MetricsAddr, metrics)
		g.Go(func() error {
			if err := httpServer.Start(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	err := g.Wait()
	log.Info().Msg("MCP server stopped")
	return err
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(
		newAggregateCmd(),
		newCalendarCmd(),
		newPeriodsCmd(),
		newChartCmd(),
		newFrequencyCmd(),
	)
}
