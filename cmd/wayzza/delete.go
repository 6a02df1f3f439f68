// ABOUTME: CLI commands for deleting routes and wiping the store.
// ABOUTME: Both prompt for confirmation unless --yes is given.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/JWicher/wayzza/internal/storage"
)

var (
	deleteYes bool
	clearYes  bool
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a route",
	Long: `Delete a route and all of its samples.

CAUTION:

  This permanently deletes the route. There is no undo.

EXAMPLES:

  wayzza delete 3                # Prompts for confirmation
  wayzza delete 3 --yes          # No prompt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRouteID(args[0])
		if err != nil {
			return err
		}

		route, err := repo.GetRoute(id)
		if err != nil {
			return fmt.Errorf("route not found: %s", args[0])
		}

		if !deleteYes && !confirm(cmd, fmt.Sprintf("Delete route %d (%s)?", route.ID, route.Name)) {
			fmt.Println("Aborted.")
			return nil
		}

		affected, err := repo.DeleteRoute(id)
		if err != nil {
			return fmt.Errorf("failed to delete route: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("route not found: %s", args[0])
		}

		color.Yellow("✗ Deleted route %d (%s)", route.ID, route.Name)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all routes",
	Long: `Delete every route, every sample, and reset settings to defaults.

CAUTION:

  This wipes the whole local store. There is no undo.

EXAMPLES:

  wayzza clear                   # Prompts for confirmation
  wayzza clear --yes             # No prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, err := repo.ListRoutes()
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to list routes: %w", err)
		}

		if !clearYes && !confirm(cmd, fmt.Sprintf("Delete all %d routes?", len(routes))) {
			fmt.Println("Aborted.")
			return nil
		}

		if err := repo.ClearAll(); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}

		color.Yellow("✗ Deleted %d routes", len(routes))
		return nil
	},
}

// confirm reads a y/N answer from the command's input stream.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation prompt")
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
}
