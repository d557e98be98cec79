// This file contains the watch-and-recapture command.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vizsnap/internal/supervise"
	"vizsnap/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// watchCmd recaptures the target fixture on every settled file change.
var watchCmd = &cobra.Command{
	Use:   "watch [fixture]",
	Short: "Recapture the target fixture whenever its file changes",
	Long: `Watches the fixtures folder and re-runs a headless capture child
process each time the target fixture is saved. Changes are debounced so
an editor writing in bursts triggers a single recapture.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	target := resolveTarget(args, cfg)

	bin, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate own binary: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(cfg.Fixtures, target, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Printf("Watching %s for changes to %s (Ctrl+C to stop)\n", cfg.Fixtures, target)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx)
	})
	g.Go(func() error {
		// Capture worker: one child at a time, so a slow capture never
		// blocks the event loop above.
		for {
			select {
			case <-gctx.Done():
				return nil
			case _, ok := <-w.Triggers():
				if !ok {
					return nil
				}
				childArgs := []string{"capture", target, "--config", configPath}
				res := supervise.Launch(gctx, bin, childArgs, os.Stdout, os.Stderr)
				if res.Outcome != supervise.OutcomeSuccess {
					logger.Warn("recapture failed",
						zap.String("fixture", target),
						zap.String("outcome", res.Outcome.String()),
						zap.Int("code", res.Code),
						zap.Error(res.Err))
				}
			}
		}
	})
	return g.Wait()
}
