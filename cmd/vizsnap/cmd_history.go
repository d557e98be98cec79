// This file contains the capture history command.
package main

import (
	"fmt"
	"time"

	"vizsnap/internal/history"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists recent capture runs from the ledger.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent capture runs from the ledger",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		fmt.Println("History ledger is disabled in config")
		return nil
	}

	ledger, err := history.Open(cfg.History.DatabasePath)
	if err != nil {
		return fmt.Errorf("open history ledger: %w", err)
	}
	defer ledger.Close()

	records, err := ledger.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No capture runs recorded yet")
		return nil
	}

	for _, r := range records {
		line := fmt.Sprintf("%s  %-8s %s",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Outcome, r.Fixture)
		switch {
		case r.Outcome == "success":
			line += fmt.Sprintf("  %s (%d bytes, %s)",
				r.ArtifactPath, r.ArtifactSize, r.Duration.Round(time.Millisecond))
		case r.Error != "":
			line += "  " + r.Error
		}
		fmt.Println(line)
	}
	return nil
}
