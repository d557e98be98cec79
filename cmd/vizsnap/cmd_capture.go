// This file contains the capture session command.
package main

import (
	"fmt"
	"time"

	"vizsnap/internal/capture"
	"vizsnap/internal/config"
	"vizsnap/internal/history"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var captureHeadful bool

// captureCmd renders one fixture and writes its screenshot artifact.
var captureCmd = &cobra.Command{
	Use:   "capture [fixture]",
	Short: "Render one fixture and write its screenshot artifact",
	Long: `Validates that the target fixture exists, renders it in a browser
page, waits a fixed settle delay, and writes a full-page PNG to
<output>/<fixture>/initial_state.png. Any failure exits non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().BoolVar(&captureHeadful, "headful", false, "show the browser window during capture")
}

func runCapture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	target := resolveTarget(args, cfg)
	runID := uuid.NewString()

	sess := capture.NewSession(capture.Config{
		FixturesDir:       cfg.Fixtures,
		OutputRoot:        cfg.Output,
		Headless:          cfg.Browser.Headless && !captureHeadful,
		ViewportWidth:     cfg.Browser.ViewportWidth,
		ViewportHeight:    cfg.Browser.ViewportHeight,
		DefaultTimeout:    cfg.Browser.GetDefaultTimeout(),
		NavigationTimeout: cfg.Browser.GetNavigationTimeout(),
		ScreenshotTimeout: cfg.Browser.GetScreenshotTimeout(),
		SettleDelay:       cfg.Browser.GetSettleDelay(),
		Logger:            logger,
	})

	start := time.Now()
	report, err := sess.Run(cmd.Context(), runID, target)
	recordRun(cfg, runID, target, report, err, time.Since(start))
	if err != nil {
		return fmt.Errorf("capture %s: %w", target, err)
	}

	fmt.Printf("Captured %s\n", target)
	fmt.Printf("  Artifact: %s (%d bytes)\n", report.ArtifactPath, report.ArtifactSize)
	return nil
}

// recordRun appends the invocation to the history ledger. The ledger is
// advisory; failures are logged and swallowed.
func recordRun(cfg *config.Config, runID, target string, report *capture.Report, runErr error, elapsed time.Duration) {
	if !cfg.History.Enabled {
		return
	}

	ledger, err := history.Open(cfg.History.DatabasePath)
	if err != nil {
		logger.Warn("history ledger unavailable", zap.Error(err))
		return
	}
	defer ledger.Close()

	rec := history.Record{
		RunID:    runID,
		Fixture:  target,
		Outcome:  "success",
		Duration: elapsed,
	}
	if runErr != nil {
		rec.Outcome = "failure"
		rec.Error = runErr.Error()
	}
	if report != nil {
		rec.ArtifactPath = report.ArtifactPath
		rec.ArtifactSize = report.ArtifactSize
	}

	if err := ledger.Append(rec); err != nil {
		logger.Warn("failed to record capture run", zap.Error(err))
	}
}
