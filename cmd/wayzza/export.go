// ABOUTME: CLI command for exporting routes to files.
// ABOUTME: One JSON file per route plus a summary in JSON or YAML.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/JWicher/wayzza/internal/config"
	"github.com/JWicher/wayzza/internal/storage"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export routes to files",
	Long: `Export every route as a JSON file plus a summary document.

Each route becomes route_<id>_<name>.json with its full coordinate
list. A summary with route counts is written alongside, in JSON by
default or YAML with --format yaml.

EXAMPLES:

  wayzza export                          # Export into the current directory
  wayzza export --out ./backup           # Export into ./backup
  wayzza export --out ~/gps --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFormat != "json" && exportFormat != "yaml" {
			return fmt.Errorf("unknown format: %s (use json or yaml)", exportFormat)
		}

		dir := config.ExpandPath(exportOut)
		summary, err := storage.ExportAll(repo, dir, exportFormat)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		color.Green("✓ Exported %d routes to %s", summary.TotalRoutes, dir)
		faint := color.New(color.Faint)
		for _, f := range summary.Files {
			faint.Printf("  %s\n", f)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "output directory")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "summary format (json or yaml)")
	rootCmd.AddCommand(exportCmd)
}
