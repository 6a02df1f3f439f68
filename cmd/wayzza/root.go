// ABOUTME: Root Cobra command for wayzza CLI.
// ABOUTME: Opens config and storage via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/JWicher/wayzza/internal/config"
	"github.com/JWicher/wayzza/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "wayzza",
	Short: "GPS route recorder",
	Long: `Wayzza records GPS routes as ordered coordinate samples.

A route is a named sequence of timestamped coordinates. Start a
tracking session and wayzza creates a route for you, named after the
clock, or resumes one you pick. Routes that end without a single
recorded sample are cleaned up automatically.

QUICK START:

  $ wayzza track                     # Record a new route (simulated GPS)
  $ wayzza track --route 3           # Resume recording into route 3
  $ wayzza routes                    # List recorded routes
  $ wayzza show 3                    # Show a route's samples
  $ wayzza rename 3 "Morning run"    # Name a route
  $ wayzza export --out ./backup     # Export everything as JSON

SETTINGS:

  Sample admission is throttled by a minimum time interval and a
  minimum distance interval. Both are stored per device:

  $ wayzza settings                  # Show current intervals
  $ wayzza settings set time 10      # Sample at most every 10 seconds

MCP INTEGRATION:

  Run 'wayzza mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "wayzza": { "command": "wayzza", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Routes and samples live in a local SQLite database under
  $XDG_DATA_HOME/wayzza (default ~/.local/share/wayzza). Nothing
  leaves your machine.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version and help don't touch the store
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}
