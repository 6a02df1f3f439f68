// ABOUTME: CLI commands for viewing and changing tracking settings.
// ABOUTME: Sample admission intervals are stored in the local database.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/JWicher/wayzza/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show tracking settings",
	Long: `Show the sample admission intervals.

A new GPS fix is recorded only when at least the time interval has
passed AND the device has moved at least the distance interval since
the last recorded sample. The provider applies both filters.

EXAMPLES:

  wayzza settings                    # Show current intervals
  wayzza settings set time 10        # Sample at most every 10 seconds
  wayzza settings set distance 25    # Require 25 meters of movement`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storage.GetSettingsRetry(repo, storage.DefaultRetryPolicy())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		fmt.Printf("time interval      %d s\n", s.MinTimeIntervalSeconds)
		fmt.Printf("distance interval  %d m\n", s.MinDistanceIntervalMeters)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set <time|distance> <value>",
	Short:     "Change a tracking setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"time", "distance"},
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}

		s, err := repo.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		switch args[0] {
		case "time":
			s.MinTimeIntervalSeconds = value
		case "distance":
			s.MinDistanceIntervalMeters = value
		default:
			return fmt.Errorf("unknown setting: %s (use time or distance)", args[0])
		}

		if err := repo.SetSettings(s); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		color.Green("✓ Set %s interval to %d", args[0], value)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
