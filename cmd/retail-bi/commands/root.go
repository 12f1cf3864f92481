package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"retail-bi/internal/analytics"
	"retail-bi/internal/config"
	"retail-bi/internal/dataset"
	"retail-bi/internal/logging"
	"retail-bi/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose  bool
	snapshot string
	seed     int64
	cfg      *config.AppConfig
	data     *dataset.Dataset
)

var rootCmd = &cobra.Command{
	Use:   "retail-bi",
	Short: "retail-bi serves retail sales, inventory, customer and store analytics",
	Long: `An analytics server over a retail dataset (orders, inventory, customers, stores).
Without a subcommand it runs as an MCP server on stdio; 'serve' exposes the same
views over HTTP.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := logging.Init(verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		if cmd.Flags().Changed("dataset") {
			cfg.Snapshot = snapshot
		}
		if cmd.Flags().Changed("seed") {
			cfg.Generator.Seed = seed
		}

		data, err = cfg.OpenDataset()
		if err != nil {
			log.Fatal().Err(err).Str("snapshot", cfg.Snapshot).Msg("Failed to open dataset")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("retail-bi starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		session := analytics.NewSession(data, cfg.DashboardYear)
		return mcp.NewServer(session, cfg.EnableMermaidCharts).Serve(ctx, Version)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&snapshot, "dataset", "", "dataset snapshot name under DATA_PATH (default: generate)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "generator seed (0 seeds from the clock)")

	rootCmd.AddCommand(serveCmd, viewCmd, optionsCmd)
}
