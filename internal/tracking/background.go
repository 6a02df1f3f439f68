// ABOUTME: Background capture runner for the second tracking channel.
// ABOUTME: Learns its target route from the handoff slot, not controller state.
package tracking

import (
	"context"
	"log/slog"

	"github.com/JWicher/wayzza/internal/handoff"
	"github.com/JWicher/wayzza/internal/location"
	"github.com/JWicher/wayzza/internal/storage"
)

// BackgroundRunner appends samples for the active session while the
// foreground channel is not the only source. It stands in for the
// host-managed out-of-process task: it deliberately reads the handoff
// slot to find its route instead of sharing controller memory, so the
// same code path works when it really does run in another process.
type BackgroundRunner struct {
	repo     storage.Repository
	provider location.Provider
	mailbox  *handoff.Mailbox
	logger   *slog.Logger
}

// NewBackgroundRunner wires a runner against the shared store,
// provider, and handoff mailbox.
func NewBackgroundRunner(repo storage.Repository, provider location.Provider, mailbox *handoff.Mailbox, logger *slog.Logger) *BackgroundRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackgroundRunner{repo: repo, provider: provider, mailbox: mailbox, logger: logger}
}

// Run captures samples until ctx is canceled or the stream ends.
// Returns without error when no session is active in the slot.
func (r *BackgroundRunner) Run(ctx context.Context) error {
	slot, ok, err := r.mailbox.Get()
	if err != nil {
		return err
	}
	if !ok {
		r.logger.Debug("background runner: no active session in handoff slot")
		return nil
	}

	settings, err := r.repo.GetSettings()
	if err != nil {
		return err
	}

	sub, err := r.provider.Subscribe(ctx, location.Config{
		MinInterval:  settings.MinInterval(),
		MinDistanceM: float64(settings.MinDistanceIntervalMeters),
		Accuracy:     location.AccuracyHigh,
	})
	if err != nil {
		return err
	}
	defer sub.Cancel()

	r.logger.Info("background capture started", "routeId", slot.RouteID, "sessionId", slot.SessionID)

	for {
		select {
		case <-ctx.Done():
			return nil
		case fix, open := <-sub.Positions():
			if !open {
				return sub.Err()
			}
			// Re-check the slot on each fix: the foreground side
			// clears it on stop, and samples must never attach to a
			// session that already ended.
			current, ok, err := r.mailbox.Get()
			if err != nil || !ok || current.RouteID != slot.RouteID {
				return nil
			}

			_, err = r.repo.AppendSample(slot.RouteID, fix.Latitude, fix.Longitude, fix.Timestamp.UnixMilli())
			if err != nil {
				// A dropped sample is preferable to a dead channel.
				r.logger.Warn("background sample persist failed", "routeId", slot.RouteID, "error", err)
			}
		}
	}
}
