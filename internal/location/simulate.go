// ABOUTME: Simulated positioning provider for offline use and tests.
// ABOUTME: Walks an interpolated waypoint path honoring the config predicate.
package location

import (
	"context"
	"time"
)

// DefaultWaypoints traces the A9 highway from Berlin to Munich, the
// stock demo route.
var DefaultWaypoints = []Waypoint{
	{52.5200, 13.4050}, // Berlin center
	{52.4500, 13.3500},
	{52.3000, 13.1000},
	{52.1000, 12.8000},
	{51.8397, 12.2431}, // Dessau
	{51.4800, 11.9700}, // Halle
	{51.2000, 11.6000},
	{50.9849, 11.3239}, // Weimar
	{50.7000, 11.0000},
	{50.4000, 10.7000},
	{49.9000, 10.5000},
	{49.9479, 11.5683}, // Bayreuth
	{49.7000, 11.4000},
	{49.4521, 11.0767}, // Nuremberg
	{49.2000, 10.9000},
	{48.8000, 10.8000},
	{48.7665, 11.4257}, // Ingolstadt
	{48.5000, 11.5000},
	{48.3000, 11.6000},
	{48.1351, 11.5820}, // Munich center
}

// SimulatedProvider emits fixes along a waypoint path. Each tick it
// advances far enough to satisfy the distance predicate and waits out
// the interval predicate, so every emitted fix is a qualifying
// sample. The stream ends when the path is exhausted.
type SimulatedProvider struct {
	// Waypoints is the path to walk. DefaultWaypoints when empty.
	Waypoints []Waypoint

	// Accuracy reported on each fix, in meters.
	Accuracy float64

	// DenyForeground and DenyBackground refuse the respective
	// permission scope.
	DenyForeground bool
	DenyBackground bool

	// BackgroundCapable marks whether the provider supports a
	// background channel at all. Resolved at session start.
	BackgroundCapable bool
}

// NewSimulatedProvider returns a provider walking the default route
// with background capture available.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{Accuracy: 5, BackgroundCapable: true}
}

// RequestPermission grants or denies per the provider's knobs.
func (p *SimulatedProvider) RequestPermission(_ context.Context, scope Scope) (bool, error) {
	switch scope {
	case ScopeBackground:
		return p.BackgroundCapable && !p.DenyBackground, nil
	default:
		return !p.DenyForeground, nil
	}
}

// Subscribe starts walking the path under the given config.
func (p *SimulatedProvider) Subscribe(ctx context.Context, cfg Config) (*Subscription, error) {
	waypoints := p.Waypoints
	if len(waypoints) == 0 {
		waypoints = DefaultWaypoints
	}

	spacing := cfg.MinDistanceM
	if spacing <= 0 {
		spacing = 1
	}
	path := interpolatePath(waypoints, spacing)

	ctx, cancel := context.WithCancel(ctx)
	sub := newSubscription(cancel, 16)

	go func() {
		defer close(sub.positions)

		for i, wp := range path {
			if i > 0 && cfg.MinInterval > 0 {
				timer := time.NewTimer(cfg.MinInterval)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			} else if ctx.Err() != nil {
				return
			}

			fix := Position{
				Latitude:  wp.Latitude,
				Longitude: wp.Longitude,
				Accuracy:  p.Accuracy,
				Timestamp: time.Now(),
			}
			select {
			case <-ctx.Done():
				return
			case sub.positions <- fix:
			}
		}
	}()

	return sub, nil
}
