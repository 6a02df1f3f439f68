// ABOUTME: Tests for Repository interface implementations.
// ABOUTME: Verifies CRUD, cascade deletion, and ordering using SQLite.
package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "wayzza.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCreateAndGetRoute(t *testing.T) {
	db := setupTestDB(t)

	r, err := db.CreateRoute("Trip A")
	if err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}
	if r.ID == 0 {
		t.Error("expected store-assigned id, got 0")
	}

	got, err := db.GetRoute(r.ID)
	if err != nil {
		t.Fatalf("GetRoute failed: %v", err)
	}
	if got.Name != "Trip A" {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, "Trip A")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestCreateRouteDuplicateName(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CreateRoute("Trip A"); err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}
	_, err := db.CreateRoute("Trip A")
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCreateRouteEmptyName(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"", "   "} {
		if _, err := db.CreateRoute(name); !errors.Is(err, ErrEmptyName) {
			t.Errorf("CreateRoute(%q): expected ErrEmptyName, got %v", name, err)
		}
	}
}

func TestGetRouteNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetRoute(999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRenameRoute(t *testing.T) {
	db := setupTestDB(t)

	r, err := db.CreateRoute("Trip A")
	if err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}

	renamed, err := db.RenameRoute(r.ID, "Morning run")
	if err != nil {
		t.Fatalf("RenameRoute failed: %v", err)
	}
	if renamed.Name != "Morning run" {
		t.Errorf("Name mismatch: got %q", renamed.Name)
	}
}

func TestRenameRouteDuplicateKeepsOriginal(t *testing.T) {
	db := setupTestDB(t)

	a, err := db.CreateRoute("Trip A")
	if err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}
	if _, err := db.CreateRoute("Trip B"); err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}

	_, err = db.RenameRoute(a.ID, "Trip B")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	// Original name is untouched after the failed rename.
	got, err := db.GetRoute(a.ID)
	if err != nil {
		t.Fatalf("GetRoute failed: %v", err)
	}
	if got.Name != "Trip A" {
		t.Errorf("original name changed after failed rename: %q", got.Name)
	}
}

func TestRenameRouteNotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.RenameRoute(42, "Anything"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRouteCascadesSamples(t *testing.T) {
	db := setupTestDB(t)

	r, err := db.CreateRoute("Trip A")
	if err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := db.AppendSample(r.ID, 52.5, 13.4, int64(100*i)); err != nil {
			t.Fatalf("AppendSample failed: %v", err)
		}
	}

	count, err := db.DeleteRoute(r.ID)
	if err != nil {
		t.Fatalf("DeleteRoute failed: %v", err)
	}
	if count != 1 {
		t.Errorf("DeleteRoute count = %d, want 1", count)
	}

	samples, err := db.ListSamples(r.ID)
	if err != nil {
		t.Fatalf("ListSamples failed: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("cascade failed: %d samples remain after route delete", len(samples))
	}
}

func TestAppendSampleRouteGone(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.AppendSample(999, 52.5, 13.4, 100)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendSampleRejectsOutOfRange(t *testing.T) {
	db := setupTestDB(t)

	r, err := db.CreateRoute("Trip A")
	if err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}
	if _, err := db.AppendSample(r.ID, 91, 0, 100); err == nil {
		t.Error("latitude 91 should be rejected")
	}
	if _, err := db.AppendSample(r.ID, 0, -181, 100); err == nil {
		t.Error("longitude -181 should be rejected")
	}
}

func TestListSamplesOrderedByTimestamp(t *testing.T) {
	db := setupTestDB(t)

	r, err := db.CreateRoute("Trip A")
	if err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}

	// Appended out of order, as interleaved foreground/background
	// channels would produce.
	for _, ts := range []int64{100, 200, 150} {
		if _, err := db.AppendSample(r.ID, 52.5, 13.4, ts); err != nil {
			t.Fatalf("AppendSample failed: %v", err)
		}
	}

	samples, err := db.ListSamples(r.ID)
	if err != nil {
		t.Fatalf("ListSamples failed: %v", err)
	}
	want := []int64{100, 150, 200}
	if len(samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want))
	}
	for i, s := range samples {
		if s.Timestamp != want[i] {
			t.Errorf("samples[%d].Timestamp = %d, want %d", i, s.Timestamp, want[i])
		}
	}
}

func TestCountSamples(t *testing.T) {
	db := setupTestDB(t)

	r, err := db.CreateRoute("Trip A")
	if err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}

	count, err := db.CountSamples(r.ID)
	if err != nil {
		t.Fatalf("CountSamples failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	if _, err := db.AppendSample(r.ID, 52.5, 13.4, 100); err != nil {
		t.Fatalf("AppendSample failed: %v", err)
	}
	count, err = db.CountSamples(r.ID)
	if err != nil {
		t.Fatalf("CountSamples failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSettingsDefaultsAndRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	s, err := db.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s.MinTimeIntervalSeconds != 5 || s.MinDistanceIntervalMeters != 10 {
		t.Errorf("unexpected defaults: %+v", s)
	}

	s.MinTimeIntervalSeconds = 1
	s.MinDistanceIntervalMeters = 1
	if err := db.SetSettings(s); err != nil {
		t.Fatalf("SetSettings failed: %v", err)
	}

	got, err := db.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.MinTimeIntervalSeconds != 1 || got.MinDistanceIntervalMeters != 1 {
		t.Errorf("settings did not round-trip: %+v", got)
	}
}

func TestSetSettingsRejectsInvalid(t *testing.T) {
	db := setupTestDB(t)

	s, _ := db.GetSettings()
	s.MinTimeIntervalSeconds = 0
	if err := db.SetSettings(s); err == nil {
		t.Error("invalid settings should be rejected")
	}
}

func TestClearAll(t *testing.T) {
	db := setupTestDB(t)

	r, err := db.CreateRoute("Trip A")
	if err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}
	if _, err := db.AppendSample(r.ID, 52.5, 13.4, 100); err != nil {
		t.Fatalf("AppendSample failed: %v", err)
	}

	if err := db.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	routes, err := db.ListRoutes()
	if err != nil {
		t.Fatalf("ListRoutes failed: %v", err)
	}
	if len(routes) != 0 {
		t.Errorf("%d routes remain after ClearAll", len(routes))
	}
}

func TestRetryPolicyEventuallySucceeds(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.CreateRoute("Trip A"); err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}

	p := RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond}

	attempts := 0
	routes, err := Retry(p, func() ([]string, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("transient")
		}
		return []string{"ok"}, nil
	})
	if err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if len(routes) != 1 {
		t.Errorf("unexpected result %v", routes)
	}

	got, err := ListRoutesRetry(db, p)
	if err != nil {
		t.Fatalf("ListRoutesRetry failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d routes, want 1", len(got))
	}
}

func TestRetryPolicyExhausts(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 2, Delay: time.Millisecond}

	attempts := 0
	_, err := Retry(p, func() (int, error) {
		attempts++
		return 0, errors.New("persistent")
	})
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}
