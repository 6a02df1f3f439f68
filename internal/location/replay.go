// ABOUTME: Replay positioning provider fed from a JSON fixture file.
// ABOUTME: Reads the coordinate format the route generators emit.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// replayRecord matches one entry of a generated coordinates file.
type replayRecord struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp,omitempty"`
}

// ReplayProvider replays fixes from a recorded coordinates file,
// applying the config's distance predicate so dense recordings thin
// out to qualifying samples.
type ReplayProvider struct {
	Path string

	// Accuracy reported on each fix, in meters.
	Accuracy float64
}

// NewReplayProvider creates a provider replaying the given file.
func NewReplayProvider(path string) *ReplayProvider {
	return &ReplayProvider{Path: path, Accuracy: 5}
}

// RequestPermission always grants foreground; replay has no
// background channel.
func (p *ReplayProvider) RequestPermission(_ context.Context, scope Scope) (bool, error) {
	return scope == ScopeForeground, nil
}

// Subscribe reads the fixture and streams its qualifying fixes.
func (p *ReplayProvider) Subscribe(ctx context.Context, cfg Config) (*Subscription, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}

	var records []replayRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse replay file: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := newSubscription(cancel, 16)

	go func() {
		defer close(sub.positions)

		var last *replayRecord
		for i := range records {
			r := records[i]
			if last != nil && cfg.MinDistanceM > 0 {
				if HaversineM(last.Latitude, last.Longitude, r.Latitude, r.Longitude) < cfg.MinDistanceM {
					continue
				}
			}

			if last != nil && cfg.MinInterval > 0 {
				timer := time.NewTimer(cfg.MinInterval)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			}

			ts := time.Now()
			if r.Timestamp > 0 {
				ts = time.UnixMilli(r.Timestamp)
			}
			fix := Position{
				Latitude:  r.Latitude,
				Longitude: r.Longitude,
				Accuracy:  p.Accuracy,
				Timestamp: ts,
			}
			select {
			case <-ctx.Done():
				return
			case sub.positions <- fix:
			}
			last = &records[i]
		}
	}()

	return sub, nil
}
