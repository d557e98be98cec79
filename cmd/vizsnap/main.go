// Package main implements the vizsnap CLI.
package main

import (
	"fmt"
	"os"

	"vizsnap/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "vizsnap",
	Short: "vizsnap - batch visual-state capture for HTML demo fixtures",
	Long: `vizsnap renders self-contained HTML demo fixtures in a browser and
writes one canonical screenshot artifact per fixture.

For fixture X.html the artifact lands at <output>/X/initial_state.png,
overwriting any previous capture. One fixture is processed per
invocation; batching is an operator-driven loop of single-target runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "vizsnap.yaml", "path to config file")

	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig loads the YAML config with env overrides applied.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// resolveTarget picks the capture target once, at the outermost layer:
// explicit argument, else the configured value (which config.Load already
// resolved from VIZSNAP_TARGET or the hard-coded default). Session code
// never reads the environment itself.
func resolveTarget(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Target
}
