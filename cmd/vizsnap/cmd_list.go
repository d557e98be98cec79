// This file contains the fixture directory lister command.
package main

import (
	"fmt"

	"vizsnap/internal/fixture"

	"github.com/spf13/cobra"
)

// listPreview caps how many fixtures are printed before summarising.
const listPreview = 15

// listCmd enumerates available fixtures. Diagnostic only: it performs no
// browser work and never fails the process on a read error.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available fixtures and the current capture target",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resolver := fixture.NewResolver(cfg.Fixtures)
	listing := fixture.List(cfg.Fixtures, cfg.Target)
	if listing.Unavailable {
		// Advisory path: report and exit clean.
		fmt.Printf("Fixture folder %s is unavailable: %v\n", cfg.Fixtures, listing.Reason)
		return nil
	}

	preview, remaining := listing.Preview(listPreview)
	fmt.Printf("Fixtures in %s (%d total):\n", cfg.Fixtures, len(listing.Fixtures))
	for _, name := range preview {
		marker := " "
		if listing.IsTarget(name) {
			marker = "*"
		}
		if title := fixture.Title(resolver.Path(name)); title != "" {
			fmt.Printf("  %s %s  (%s)\n", marker, name, title)
		} else {
			fmt.Printf("  %s %s\n", marker, name)
		}
	}
	if remaining > 0 {
		fmt.Printf("  ... and %d more\n", remaining)
	}
	fmt.Printf("Current target: %s\n", cfg.Target)
	return nil
}
