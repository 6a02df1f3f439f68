// ABOUTME: CLI commands for listing and inspecting routes.
// ABOUTME: Implements 'wayzza routes' and 'wayzza show'.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/JWicher/wayzza/internal/storage"
)

var routesCmd = &cobra.Command{
	Use:     "routes",
	Aliases: []string{"ls", "list"},
	Short:   "List recorded routes",
	Long: `List all recorded routes, newest first.

OUTPUT FORMAT:

  Each line shows: ID  CREATED  NAME  SAMPLES

EXAMPLES:

  wayzza routes                  # Show all routes
  wayzza ls                      # Same thing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, err := storage.ListRoutesRetry(repo, storage.DefaultRetryPolicy())
		if err != nil {
			return fmt.Errorf("failed to list routes: %w", err)
		}

		if len(routes) == 0 {
			fmt.Println("No routes recorded.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range routes {
			count, err := repo.CountSamples(r.ID)
			if err != nil {
				return fmt.Errorf("failed to count samples: %w", err)
			}
			fmt.Printf("%4d  %s  %s  %s\n",
				r.ID,
				faint.Sprint(r.CreatedAt.Format("2006-01-02 15:04")),
				r.Name,
				faint.Sprintf("(%d samples)", count))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a route's samples",
	Long: `Show a single route with its recorded samples in order.

EXAMPLES:

  wayzza show 3                  # Show route 3`,
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

		samples, err := repo.ListSamples(id)
		if err != nil {
			return fmt.Errorf("failed to list samples: %w", err)
		}

		color.New(color.Bold).Printf("%s (route %d)\n", route.Name, route.ID)
		fmt.Printf("Created: %s\n", route.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Samples: %d\n", len(samples))

		faint := color.New(color.Faint)
		for _, s := range samples {
			fmt.Printf("  %s  %10.6f  %11.6f\n",
				faint.Sprint(s.Time().Format("15:04:05")),
				s.Latitude, s.Longitude)
		}
		return nil
	},
}

func parseRouteID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid route id: %s", s)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(showCmd)
}
