// ABOUTME: Tests for the simulated, replay, and manual providers.
// ABOUTME: Verifies permission scopes, cancellation, and stream contents.
package location

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSimulatedPermissions(t *testing.T) {
	p := NewSimulatedProvider()

	granted, err := p.RequestPermission(context.Background(), ScopeForeground)
	if err != nil || !granted {
		t.Errorf("foreground permission: granted=%v err=%v", granted, err)
	}
	granted, _ = p.RequestPermission(context.Background(), ScopeBackground)
	if !granted {
		t.Error("background should be granted when capable")
	}

	p.DenyForeground = true
	if granted, _ := p.RequestPermission(context.Background(), ScopeForeground); granted {
		t.Error("foreground should be denied")
	}

	incapable := &SimulatedProvider{BackgroundCapable: false}
	if granted, _ := incapable.RequestPermission(context.Background(), ScopeBackground); granted {
		t.Error("background should be denied when not capable")
	}
}

func TestSimulatedSubscribeEmitsQualifyingFixes(t *testing.T) {
	p := NewSimulatedProvider()
	p.Waypoints = []Waypoint{
		{52.5200, 13.4050},
		{52.5210, 13.4060},
	}

	sub, err := p.Subscribe(context.Background(), Config{MinDistanceM: 10})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	var fixes []Position
	for fix := range sub.Positions() {
		fixes = append(fixes, fix)
	}
	if len(fixes) < 2 {
		t.Fatalf("expected multiple fixes, got %d", len(fixes))
	}
	for i := 1; i < len(fixes); i++ {
		d := HaversineM(fixes[i-1].Latitude, fixes[i-1].Longitude, fixes[i].Latitude, fixes[i].Longitude)
		if d < 5 {
			t.Errorf("fix %d only %.1f m from previous, below the distance predicate", i, d)
		}
	}
}

func TestSimulatedCancelStopsStream(t *testing.T) {
	p := NewSimulatedProvider()
	sub, err := p.Subscribe(context.Background(), Config{MinInterval: time.Hour, MinDistanceM: 50})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// First fix arrives without waiting for the interval.
	select {
	case <-sub.Positions():
	case <-time.After(2 * time.Second):
		t.Fatal("no initial fix")
	}

	sub.Cancel()
	sub.Cancel() // idempotent

	select {
	case _, open := <-sub.Positions():
		if open {
			// Drain at most the buffered fix; the channel must close.
			for range sub.Positions() {
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close after cancel")
	}
}

func TestReplayProvider(t *testing.T) {
	records := []map[string]interface{}{
		{"latitude": 52.7065, "longitude": 16.3894, "timestamp": int64(100)},
		{"latitude": 52.7066, "longitude": 16.3895, "timestamp": int64(150)}, // ~13 m on
		{"latitude": 52.7089, "longitude": 16.4156, "timestamp": int64(200)},
	}
	data, _ := json.Marshal(records)
	path := filepath.Join(t.TempDir(), "route.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	p := NewReplayProvider(path)
	sub, err := p.Subscribe(context.Background(), Config{MinDistanceM: 100})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	var fixes []Position
	for fix := range sub.Positions() {
		fixes = append(fixes, fix)
	}
	// The middle record is within 100 m of the first and is filtered.
	if len(fixes) != 2 {
		t.Fatalf("got %d fixes, want 2", len(fixes))
	}
	if fixes[0].Timestamp.UnixMilli() != 100 || fixes[1].Timestamp.UnixMilli() != 200 {
		t.Errorf("unexpected timestamps: %v, %v", fixes[0].Timestamp, fixes[1].Timestamp)
	}
}

func TestReplayProviderMissingFile(t *testing.T) {
	p := NewReplayProvider(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := p.Subscribe(context.Background(), Config{}); err == nil {
		t.Error("missing fixture should fail subscribe")
	}
}

func TestReplayNoBackgroundScope(t *testing.T) {
	p := NewReplayProvider("unused")
	if granted, _ := p.RequestPermission(context.Background(), ScopeBackground); granted {
		t.Error("replay provider must not grant background capture")
	}
}

func TestManualProviderEmit(t *testing.T) {
	p := NewManualProvider()
	sub, err := p.Subscribe(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if n := p.Emit(Position{Latitude: 1, Longitude: 2, Timestamp: time.Now()}); n != 1 {
		t.Errorf("Emit delivered to %d subscriptions, want 1", n)
	}

	fix := <-sub.Positions()
	if fix.Latitude != 1 || fix.Longitude != 2 {
		t.Errorf("unexpected fix: %+v", fix)
	}

	sub.Cancel()
	// The stream closes and further emits deliver nowhere.
	for range sub.Positions() {
	}
	if n := p.Emit(Position{}); n != 0 {
		t.Errorf("Emit after cancel delivered to %d subscriptions", n)
	}
	if p.ActiveSubscriptions() != 0 {
		t.Error("subscription still counted as active after cancel")
	}
}
