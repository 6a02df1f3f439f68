// ABOUTME: CLI command for renaming a route.
// ABOUTME: Validates the new name and surfaces duplicate-name errors.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/JWicher/wayzza/internal/storage"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a route",
	Long: `Give a route a new name.

Names must be non-blank and unique across all routes. Renaming does
not change the route's auto-cleanup status; a route you took the
trouble to name has samples anyway.

EXAMPLES:

  wayzza rename 3 "Morning run"
  wayzza rename 7 "A9 Berlin-Munich"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRouteID(args[0])
		if err != nil {
			return err
		}
		name := args[1]

		route, err := repo.RenameRoute(id, name)
		switch {
		case errors.Is(err, storage.ErrDuplicateName):
			return fmt.Errorf("a route named %q already exists", name)
		case errors.Is(err, storage.ErrEmptyName):
			return fmt.Errorf("route name must not be blank")
		case errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("route not found: %s", args[0])
		case err != nil:
			return fmt.Errorf("failed to rename route: %w", err)
		}

		color.Green("✓ Renamed route %d to %q", route.ID, route.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
