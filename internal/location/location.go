// ABOUTME: Positioning service contract for route tracking.
// ABOUTME: Defines Provider, Subscription, and permission scopes.
package location

import (
	"context"
	"sync"
	"time"
)

// Scope distinguishes foreground capture, tied to the visible
// session, from background capture that keeps sampling while the app
// is not visible.
type Scope int

const (
	ScopeForeground Scope = iota
	ScopeBackground
)

func (s Scope) String() string {
	if s == ScopeBackground {
		return "background"
	}
	return "foreground"
}

// Accuracy selects the positioning accuracy class.
type Accuracy int

const (
	AccuracyBalanced Accuracy = iota
	AccuracyHigh
)

// Position is one GPS fix as delivered by a provider.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Timestamp time.Time
}

// Config controls the sampling predicate of a subscription: a fix is
// delivered only when both the minimum interval and the minimum
// distance since the last delivered fix are satisfied.
type Config struct {
	MinInterval  time.Duration
	MinDistanceM float64
	Accuracy     Accuracy
}

// Provider yields position updates. Implementations must deliver a
// lazy, cancelable stream; the channel closes when the provider is
// done or the subscription is canceled.
type Provider interface {
	// RequestPermission asks for capture permission in the given
	// scope. A false result without error means denied; background
	// denial degrades the session to foreground-only.
	RequestPermission(ctx context.Context, scope Scope) (bool, error)

	// Subscribe opens a position stream under the given config.
	Subscribe(ctx context.Context, cfg Config) (*Subscription, error)
}

// Subscription is a live position stream. Cancel is idempotent and
// safe to call from any goroutine; after cancellation the Positions
// channel drains and closes.
type Subscription struct {
	positions chan Position
	cancel    context.CancelFunc
	once      sync.Once

	mu  sync.Mutex
	err error
}

// newSubscription wires a subscription to a producer context. The
// producer owns the positions channel and must close it on exit.
func newSubscription(cancel context.CancelFunc, buffer int) *Subscription {
	return &Subscription{
		positions: make(chan Position, buffer),
		cancel:    cancel,
	}
}

// Positions returns the stream of fixes. The channel closes when the
// subscription ends.
func (s *Subscription) Positions() <-chan Position {
	return s.positions
}

// Cancel stops the stream. Safe to call repeatedly.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Err reports a terminal producer error, if any, once Positions has
// closed.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
