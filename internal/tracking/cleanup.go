// ABOUTME: Debounced auto-route cleanup keyed by route id.
// ABOUTME: Deletes speculatively created routes that ended with zero samples.
package tracking

import (
	"log/slog"
	"sync"
	"time"

	"github.com/JWicher/wayzza/internal/storage"
)

// janitor disposes of auto-routes that were created eagerly but never
// received a sample. Because sample persistence is asynchronous, a
// route can legitimately show zero samples at teardown while a write
// is still in flight; the janitor therefore waits a grace window and
// re-checks the store before deleting. A sample landing during the
// window cancels the pending task outright.
type janitor struct {
	repo   storage.Repository
	logger *slog.Logger
	grace  time.Duration

	mu      sync.Mutex
	pending map[int64]*time.Timer
	wg      sync.WaitGroup
}

func newJanitor(repo storage.Repository, logger *slog.Logger, grace time.Duration) *janitor {
	return &janitor{
		repo:    repo,
		logger:  logger,
		grace:   grace,
		pending: make(map[int64]*time.Timer),
	}
}

// schedule queues a cleanup check for the route after the grace
// window. Rescheduling an already-pending route restarts its timer.
func (j *janitor) schedule(routeID int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if t, ok := j.pending[routeID]; ok {
		if t.Stop() {
			j.wg.Done()
		}
	}

	j.wg.Add(1)
	j.pending[routeID] = time.AfterFunc(j.grace, func() {
		defer j.wg.Done()
		j.mu.Lock()
		delete(j.pending, routeID)
		j.mu.Unlock()
		j.sweep(routeID)
	})
}

// cancel drops any pending cleanup for the route. Called on every
// persisted sample and on session start, so a route that has data or
// is being recorded again is never swept.
func (j *janitor) cancel(routeID int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if t, ok := j.pending[routeID]; ok {
		if t.Stop() {
			j.wg.Done()
		}
		delete(j.pending, routeID)
	}
}

// sweep re-checks the store and deletes the route only if it still
// has zero samples. The recheck guards against background-channel
// writes the foreground never observed.
func (j *janitor) sweep(routeID int64) {
	count, err := j.repo.CountSamples(routeID)
	if err != nil {
		j.logger.Warn("auto-route cleanup recheck failed", "routeId", routeID, "error", err)
		return
	}
	if count > 0 {
		return
	}

	if _, err := j.repo.DeleteRoute(routeID); err != nil {
		j.logger.Warn("auto-route cleanup delete failed", "routeId", routeID, "error", err)
		return
	}
	j.logger.Info("deleted unused auto-route", "routeId", routeID)
}

// wait blocks until all pending cleanup tasks have run or been
// canceled. Used by tests and final shutdown.
func (j *janitor) wait() {
	j.wg.Wait()
}
