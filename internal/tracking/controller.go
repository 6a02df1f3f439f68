// ABOUTME: Tracking session controller, the core state machine.
// ABOUTME: Owns route auto-creation, capture channels, and teardown cleanup.
package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JWicher/wayzza/internal/handoff"
	"github.com/JWicher/wayzza/internal/location"
	"github.com/JWicher/wayzza/internal/models"
	"github.com/JWicher/wayzza/internal/storage"
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRouteReady
	StateTracking
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateRouteReady:
		return "route-ready"
	case StateTracking:
		return "tracking"
	case StateStopping:
		return "stopping"
	default:
		return "idle"
	}
}

const (
	// DefaultGraceWindow is how long teardown waits before the
	// zero-sample recheck that may delete an unused auto-route.
	DefaultGraceWindow = 2 * time.Second

	// DefaultReconcileInterval is how often the controller re-reads
	// the full sample set from the store while tracking, so the
	// display list reflects background-channel writes it never
	// observed directly.
	DefaultReconcileInterval = 3 * time.Second
)

// Options tunes a controller. Zero values select the defaults.
type Options struct {
	GraceWindow       time.Duration
	ReconcileInterval time.Duration

	// DisableBackground turns the background channel off even when
	// the provider would grant it. Capability is otherwise resolved
	// at session start.
	DisableBackground bool

	Logger *slog.Logger
}

// Controller orchestrates one tracking session end to end: route
// selection and creation, subscription management, sample
// persistence, and cleanup of speculative routes. Public methods are
// serialized; the store, not controller memory, is the source of
// truth for what has been recorded.
type Controller struct {
	repo     storage.Repository
	provider location.Provider
	mailbox  *handoff.Mailbox
	logger   *slog.Logger
	jan      *janitor

	graceWindow       time.Duration
	reconcileInterval time.Duration
	disableBackground bool

	mu           sync.Mutex
	state        State
	route        *models.Route
	external     bool
	autoRoute    bool
	hasPersisted bool
	sessionID    string
	display      []*models.Sample

	fgSub         *location.Subscription
	sessionCancel context.CancelFunc
	loops         sync.WaitGroup
}

// NewController wires a controller against the store, positioning
// provider, and handoff mailbox.
func NewController(repo storage.Repository, provider location.Provider, mailbox *handoff.Mailbox, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.GraceWindow <= 0 {
		opts.GraceWindow = DefaultGraceWindow
	}
	if opts.ReconcileInterval <= 0 {
		opts.ReconcileInterval = DefaultReconcileInterval
	}

	return &Controller{
		repo:              repo,
		provider:          provider,
		mailbox:           mailbox,
		logger:            opts.Logger,
		jan:               newJanitor(repo, opts.Logger, opts.GraceWindow),
		graceWindow:       opts.GraceWindow,
		reconcileInterval: opts.ReconcileInterval,
		disableBackground: opts.DisableBackground,
	}
}

// Prepare moves Idle to RouteReady. With a route id it resumes that
// route and loads its samples; a failed load falls back to auto-route
// creation rather than failing the page. Without an id it eagerly
// persists a fresh auto-route named from the clock, flagged for
// cleanup should the session end unused.
func (c *Controller) Prepare(ctx context.Context, routeID *int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateTracking || c.state == StateStopping {
		return ErrAlreadyTracking
	}

	c.route = nil
	c.external = false
	c.autoRoute = false
	c.hasPersisted = false
	c.display = nil

	if routeID != nil {
		route, err := c.repo.GetRoute(*routeID)
		if err == nil {
			c.route = route
			c.external = true
			samples, err := c.repo.ListSamples(route.ID)
			if err != nil {
				c.logger.Warn("loading existing samples failed", "routeId", route.ID, "error", err)
			} else {
				c.display = samples
			}
			c.state = StateRouteReady
			return nil
		}
		c.logger.Warn("resuming route failed, creating auto-route", "routeId", *routeID, "error", err)
	}

	c.autoRoute = true
	route, err := c.repo.CreateRoute(models.AutoRouteName(time.Now()))
	if err != nil {
		// Start gets one more attempt before the session is declared
		// unavailable.
		c.logger.Warn("auto-route creation failed", "error", err)
	} else {
		c.route = route
	}

	c.state = StateRouteReady
	return nil
}

// Start moves RouteReady to Tracking: checks permission, ensures a
// target route, writes the handoff slot, and opens the capture
// channels configured from the persisted settings.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateTracking:
		return ErrAlreadyTracking
	case StateRouteReady:
	default:
		return ErrNotPrepared
	}

	granted, err := c.provider.RequestPermission(ctx, location.ScopeForeground)
	if err != nil {
		return fmt.Errorf("request foreground permission: %w", err)
	}
	if !granted {
		return ErrPermissionDenied
	}

	if c.route == nil {
		route, err := c.repo.CreateRoute(models.AutoRouteName(time.Now()))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRouteUnavailable, err)
		}
		c.route = route
		c.autoRoute = true
	}

	settings, err := c.repo.GetSettings()
	if err != nil {
		return fmt.Errorf("read tracking settings: %w", err)
	}

	c.sessionID = uuid.NewString()

	// The slot goes down before subscribing so the background channel
	// can find the route the moment it wakes up. Losing the write
	// only degrades to foreground-only capture.
	if err := c.mailbox.Put(handoff.Slot{RouteID: c.route.ID, Name: c.route.Name, SessionID: c.sessionID}); err != nil {
		c.logger.Warn("handoff slot write failed, background capture unavailable", "error", err)
	}

	cfg := location.Config{
		MinInterval:  settings.MinInterval(),
		MinDistanceM: float64(settings.MinDistanceIntervalMeters),
		Accuracy:     location.AccuracyHigh,
	}

	sessionCtx, cancel := context.WithCancel(context.Background())

	sub, err := c.provider.Subscribe(sessionCtx, cfg)
	if err != nil {
		cancel()
		_ = c.mailbox.Clear()
		return fmt.Errorf("subscribe foreground channel: %w", err)
	}

	c.fgSub = sub
	c.sessionCancel = cancel
	c.hasPersisted = false
	c.state = StateTracking

	// A pending cleanup from an earlier teardown must never fire
	// mid-session.
	c.jan.cancel(c.route.ID)

	routeID := c.route.ID
	c.loops.Add(2)
	go c.sampleLoop(routeID, sub)
	go c.reconcileLoop(sessionCtx, routeID)

	if !c.disableBackground {
		c.startBackground(ctx, sessionCtx)
	}

	c.logger.Info("tracking started",
		"routeId", routeID,
		"sessionId", c.sessionID,
		"minIntervalS", settings.MinTimeIntervalSeconds,
		"minDistanceM", settings.MinDistanceIntervalMeters)
	return nil
}

// startBackground resolves the background capability at session start
// and launches the runner when granted. Denial degrades silently.
func (c *Controller) startBackground(ctx, sessionCtx context.Context) {
	granted, err := c.provider.RequestPermission(ctx, location.ScopeBackground)
	if err != nil || !granted {
		c.logger.Debug("background channel unavailable, foreground only", "error", err)
		return
	}

	runner := NewBackgroundRunner(c.repo, c.provider, c.mailbox, c.logger)
	c.loops.Add(1)
	go func() {
		defer c.loops.Done()
		if err := runner.Run(sessionCtx); err != nil {
			c.logger.Warn("background runner exited", "error", err)
		}
	}()
}

// sampleLoop persists every foreground fix against the session route.
// A single failed write is logged and dropped; aborting an in-flight
// recording over one lost sample is the worse trade.
func (c *Controller) sampleLoop(routeID int64, sub *location.Subscription) {
	defer c.loops.Done()

	for fix := range sub.Positions() {
		id, err := c.repo.AppendSample(routeID, fix.Latitude, fix.Longitude, fix.Timestamp.UnixMilli())
		if err != nil {
			c.logger.Warn("sample persist failed, dropping fix", "routeId", routeID, "error", err)
			continue
		}

		c.jan.cancel(routeID)

		c.mu.Lock()
		c.hasPersisted = true
		c.display = append(c.display, &models.Sample{
			ID:        id,
			RouteID:   routeID,
			Latitude:  fix.Latitude,
			Longitude: fix.Longitude,
			Timestamp: fix.Timestamp.UnixMilli(),
		})
		c.mu.Unlock()
	}
}

// reconcileLoop periodically replaces the display list with the
// store's view, which is the only synchronization point between the
// foreground and background channels.
func (c *Controller) reconcileLoop(ctx context.Context, routeID int64) {
	defer c.loops.Done()

	ticker := time.NewTicker(c.reconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			samples, err := c.repo.ListSamples(routeID)
			if err != nil {
				c.logger.Warn("reconciliation read failed", "routeId", routeID, "error", err)
				continue
			}
			c.mu.Lock()
			if c.state == StateTracking {
				c.display = samples
			}
			c.mu.Unlock()
		}
	}
}

// Stop tears the session down: cancels both channels, clears the
// handoff slot, and schedules the auto-route cleanup. Every step is
// idempotent, so repeated or out-of-order teardown is safe.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()

	switch c.state {
	case StateIdle:
		c.mu.Unlock()
		return nil
	case StateRouteReady:
		c.finishStopLocked()
		c.mu.Unlock()
		return nil
	case StateStopping:
		c.mu.Unlock()
		return nil
	}

	c.state = StateStopping
	sub := c.fgSub
	cancel := c.sessionCancel
	c.fgSub = nil
	c.sessionCancel = nil
	c.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
	if cancel != nil {
		cancel()
	}
	c.loops.Wait()

	c.mu.Lock()
	c.finishStopLocked()
	c.mu.Unlock()
	return nil
}

// finishStopLocked clears the handoff slot, schedules cleanup when
// the policy applies, and returns the controller to Idle.
func (c *Controller) finishStopLocked() {
	if err := c.mailbox.Clear(); err != nil {
		c.logger.Warn("handoff slot clear failed", "error", err)
	}

	if c.route != nil && c.autoRoute && !c.external && !c.hasPersisted {
		c.jan.schedule(c.route.ID)
	}

	c.route = nil
	c.sessionID = ""
	c.autoRoute = false
	c.external = false
	c.state = StateIdle
}

// Rename changes a route's name. Empty names are rejected locally;
// a store-level collision surfaces as storage.ErrDuplicateName.
func (c *Controller) Rename(ctx context.Context, id int64, name string) (*models.Route, error) {
	route, err := c.repo.RenameRoute(id, name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.route != nil && c.route.ID == id {
		c.route = route
	}
	c.mu.Unlock()
	return route, nil
}

// Delete removes a route. When it is the active session's target the
// subscriptions stop first, so no sample lands against a just-deleted
// route id.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	deletingActive := c.state == StateTracking && c.route != nil && c.route.ID == id
	c.mu.Unlock()

	if deletingActive {
		if err := c.Stop(ctx); err != nil {
			return err
		}
	}

	c.jan.cancel(id)

	count, err := c.repo.DeleteRoute(id)
	if err != nil {
		return err
	}
	if count == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Positions returns a copy of the in-memory display list.
func (c *Controller) Positions() []*models.Sample {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*models.Sample, len(c.display))
	copy(out, c.display)
	return out
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Route returns the session's target route, or nil.
func (c *Controller) Route() *models.Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}

// WaitCleanup blocks until pending auto-route cleanup tasks finish.
// Short-lived processes call this before exit so the grace window
// actually elapses.
func (c *Controller) WaitCleanup() {
	c.jan.wait()
}
