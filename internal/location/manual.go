// ABOUTME: Manually driven positioning provider.
// ABOUTME: Lets callers push individual fixes, used by controller tests.
package location

import (
	"context"
	"sync"
)

// ManualProvider delivers exactly the fixes pushed through Emit, in
// order. It gives deterministic control over tick timing, which the
// session controller tests depend on.
type ManualProvider struct {
	DenyForeground    bool
	DenyBackground    bool
	BackgroundCapable bool

	mu         sync.Mutex
	subs       []*manualStream
	lastConfig Config
}

type manualStream struct {
	sub *Subscription

	mu     sync.Mutex
	closed bool
}

// NewManualProvider creates a provider with no background channel.
func NewManualProvider() *ManualProvider {
	return &ManualProvider{}
}

// RequestPermission grants or denies per the provider's knobs.
func (p *ManualProvider) RequestPermission(_ context.Context, scope Scope) (bool, error) {
	switch scope {
	case ScopeBackground:
		return p.BackgroundCapable && !p.DenyBackground, nil
	default:
		return !p.DenyForeground, nil
	}
}

// Subscribe opens a stream that emits whatever Emit pushes. The
// config is recorded for assertions on settings plumbing.
func (p *ManualProvider) Subscribe(ctx context.Context, cfg Config) (*Subscription, error) {
	p.mu.Lock()
	p.lastConfig = cfg
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	sub := newSubscription(cancel, 64)

	ms := &manualStream{sub: sub}
	go func() {
		<-ctx.Done()
		ms.mu.Lock()
		ms.closed = true
		close(sub.positions)
		ms.mu.Unlock()
	}()

	p.mu.Lock()
	p.subs = append(p.subs, ms)
	p.mu.Unlock()

	return sub, nil
}

// Emit pushes one fix to every live subscription. Returns the number
// of subscriptions that accepted it. Streams with a full buffer drop
// the fix rather than block.
func (p *ManualProvider) Emit(fix Position) int {
	p.mu.Lock()
	subs := make([]*manualStream, len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	delivered := 0
	for _, ms := range subs {
		ms.mu.Lock()
		if !ms.closed {
			select {
			case ms.sub.positions <- fix:
				delivered++
			default:
			}
		}
		ms.mu.Unlock()
	}
	return delivered
}

// LastConfig returns the config of the most recent subscription.
func (p *ManualProvider) LastConfig() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastConfig
}

// ActiveSubscriptions reports how many streams are still open.
func (p *ManualProvider) ActiveSubscriptions() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	active := 0
	for _, ms := range p.subs {
		ms.mu.Lock()
		if !ms.closed {
			active++
		}
		ms.mu.Unlock()
	}
	return active
}
