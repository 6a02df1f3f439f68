// ABOUTME: CLI command printing the build version.
// ABOUTME: Version is overridable at link time via -ldflags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set by the release build via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wayzza version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("wayzza %s\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
