// Package cli assembles the throwbench command tree. The root command owns
// the shared bootstrap: it initializes logging, loads the layered config,
// and applies the global presentation flags before any subcommand runs.
package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/okian/throwbench/internal/config"
	"github.com/okian/throwbench/pkg/logger"
	"github.com/okian/throwbench/pkg/metrics"
)

// version is stamped at release time; dev builds carry the bare tag.
const version = "0.3.0"

// state carries values resolved during bootstrap to the subcommands.
// Subcommands read it inside RunE, after PersistentPreRunE has filled it.
type state struct {
	cfg *config.Config
}

// Execute runs the command tree against the given root context. The caller
// owns signal handling; cancelling ctx cancels any in-flight analysis.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath     string
		logLevel    string
		noColor     bool
		showMetrics bool
	)

	st := &state{}

	root := &cobra.Command{
		Use:   "throwbench",
		Short: "Disc golf throw quality analyzer",
		Long: `Throwbench scores recorded disc golf throw sessions against a synthetic
reference population: per-metric percentiles, skill bands, and a prioritized
diagnosis of release problems.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(cmd, st, cfgPath, logLevel, noColor)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if showMetrics {
				_ = metrics.WriteText(cmd.ErrOrStderr())
			}
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: $THROWBENCH_CONFIG)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default: from config)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored terminal output")
	root.PersistentFlags().BoolVar(&showMetrics, "show-metrics", false, "dump internal counters to stderr when the command finishes")

	root.AddCommand(analyzeCmd(st))
	root.AddCommand(sampleCmd())
	root.AddCommand(populationCmd(st))

	return root
}

// bootstrap prepares logging and configuration for every subcommand.
// Flags beat config values, config files beat defaults.
func bootstrap(cmd *cobra.Command, st *state, cfgPath, logLevel string, noColor bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	if noColor {
		color.NoColor = true //nolint:reassign // package-level toggle is how fatih/color disables output
	}

	cfg, err := config.Load(cmd.Context(), cfgPath)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Fall back to info on a bad level instead of refusing to run.
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	st.cfg = cfg

	return nil
}
