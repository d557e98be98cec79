// This file contains the batch supervisor command.
package main

import (
	"fmt"
	"os"
	"strings"

	"vizsnap/internal/capture"
	"vizsnap/internal/fixture"
	"vizsnap/internal/supervise"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runAll bool

// runCmd supervises a capture in a child process.
var runCmd = &cobra.Command{
	Use:   "run [fixture]",
	Short: "Supervise a capture in a child process with a visible browser",
	Long: `Launches 'vizsnap capture --headful' as a child process with inherited
stdio, waits for it to finish, and reports one of three outcomes: clean
exit, dirty exit, or failed to start. No retry is attempted; a failed
fixture is re-run manually.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSupervised,
}

func init() {
	runCmd.Flags().BoolVar(&runAll, "all", false, "capture every fixture in sequence, one child process each")
}

func runSupervised(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bin, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate own binary: %w", err)
	}

	targets := []string{resolveTarget(args, cfg)}
	if runAll {
		listing := fixture.List(cfg.Fixtures, cfg.Target)
		if listing.Unavailable {
			return fmt.Errorf("cannot enumerate fixtures in %s: %v", cfg.Fixtures, listing.Reason)
		}
		if len(listing.Fixtures) == 0 {
			return fmt.Errorf("no fixtures found in %s", cfg.Fixtures)
		}
		targets = listing.Fixtures
	}

	failed := 0
	for _, target := range targets {
		if res := superviseOne(cmd, bin, target); res.Outcome != supervise.OutcomeSuccess {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d capture(s) failed", failed, len(targets))
	}
	return nil
}

// superviseOne spawns one capture child per fixture and dispatches on its
// tagged outcome. Exactly one child runs at a time.
func superviseOne(cmd *cobra.Command, bin, target string) supervise.Result {
	logger.Info("supervising capture", zap.String("fixture", target))

	childArgs := []string{"capture", target, "--headful", "--config", configPath}
	res := supervise.Launch(cmd.Context(), bin, childArgs, os.Stdout, os.Stderr)

	switch res.Outcome {
	case supervise.OutcomeSuccess:
		base := strings.TrimSuffix(target, fixture.Ext)
		fmt.Printf("Capture succeeded: see output folder %s/ for %s\n", base, capture.ArtifactName)
	case supervise.OutcomeFailure:
		fmt.Printf("Capture failed for %s: child exited with status %d\n", target, res.Code)
	case supervise.OutcomeLaunchError:
		fmt.Printf("Could not start capture process for %s: %v\n", target, res.Err)
	}
	return res
}
