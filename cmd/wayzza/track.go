// ABOUTME: CLI command for running a tracking session.
// ABOUTME: Wires a positioning provider into the tracking controller.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/JWicher/wayzza/internal/config"
	"github.com/JWicher/wayzza/internal/handoff"
	"github.com/JWicher/wayzza/internal/location"
	"github.com/JWicher/wayzza/internal/tracking"
)

var (
	trackRoute    int64
	trackSimulate bool
	trackReplay   string
	trackDuration time.Duration
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Record a route",
	Long: `Start a tracking session and record GPS samples into a route.

Without --route a fresh route is created, named after the current
time. If the session ends without recording a single sample, the
route is deleted again after a short grace window.

With --route the session resumes an existing route and appends to it.
Resumed routes are never auto-deleted.

PROVIDERS:

  --simulate       Walk a simulated highway path (the default)
  --replay FILE    Replay positions from a JSON fixture file

  A replay file is a JSON array of objects with "latitude",
  "longitude" and "timestamp" (Unix milliseconds) fields.

EXAMPLES:

  wayzza track                          # New route, simulated GPS
  wayzza track --route 3                # Append to route 3
  wayzza track --duration 2m            # Stop after two minutes
  wayzza track --replay ride.json       # Replay a recorded fixture

Press Ctrl-C to stop the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := buildProvider()
		if err != nil {
			return err
		}

		mailbox, err := handoff.Open(cfg.HandoffDir())
		if err != nil {
			return fmt.Errorf("failed to open handoff mailbox: %w", err)
		}
		defer mailbox.Close()

		ctrl := tracking.NewController(repo, provider, mailbox, tracking.Options{})

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var routeID *int64
		if trackRoute > 0 {
			routeID = &trackRoute
		}
		if err := ctrl.Prepare(ctx, routeID); err != nil {
			return fmt.Errorf("failed to prepare session: %w", err)
		}

		if r := ctrl.Route(); r != nil {
			color.Green("● Recording into %q (route %d)", r.Name, r.ID)
		}

		if err := ctrl.Start(ctx); err != nil {
			// Nothing was recorded; tearing down lets the grace
			// window reclaim an unused auto-route before we exit.
			_ = ctrl.Stop(context.Background())
			ctrl.WaitCleanup()
			return fmt.Errorf("failed to start tracking: %w", err)
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		var deadline <-chan time.Time
		if trackDuration > 0 {
			timer := time.NewTimer(trackDuration)
			defer timer.Stop()
			deadline = timer.C
		}

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		faint := color.New(color.Faint)
	loop:
		for {
			select {
			case <-sigChan:
				fmt.Println()
				break loop
			case <-deadline:
				break loop
			case <-ticker.C:
				samples := ctrl.Positions()
				if n := len(samples); n > 0 {
					last := samples[n-1]
					faint.Printf("\r%d samples  last %.5f, %.5f", n, last.Latitude, last.Longitude)
				}
			}
		}
		fmt.Println()

		if err := ctrl.Stop(context.Background()); err != nil {
			return fmt.Errorf("failed to stop session: %w", err)
		}
		ctrl.WaitCleanup()

		samples := ctrl.Positions()
		if len(samples) == 0 {
			color.Yellow("✗ No samples recorded")
			return nil
		}
		color.Green("✓ Recorded %d samples", len(samples))
		return nil
	},
}

// buildProvider picks the positioning source from flags, falling back
// to the configured default.
func buildProvider() (location.Provider, error) {
	if trackReplay != "" {
		return location.NewReplayProvider(config.ExpandPath(trackReplay)), nil
	}
	if trackSimulate {
		return location.NewSimulatedProvider(), nil
	}

	switch cfg.GetProvider() {
	case "replay":
		if cfg.ReplayFile == "" {
			return nil, fmt.Errorf("provider is %q but no replay_file is configured", "replay")
		}
		return location.NewReplayProvider(config.ExpandPath(cfg.ReplayFile)), nil
	default:
		return location.NewSimulatedProvider(), nil
	}
}

func init() {
	trackCmd.Flags().Int64Var(&trackRoute, "route", 0, "resume an existing route by id")
	trackCmd.Flags().BoolVar(&trackSimulate, "simulate", false, "use the simulated GPS provider")
	trackCmd.Flags().StringVar(&trackReplay, "replay", "", "replay positions from a JSON file")
	trackCmd.Flags().DurationVar(&trackDuration, "duration", 0, "stop after this long (default: until Ctrl-C)")
	rootCmd.AddCommand(trackCmd)
}
