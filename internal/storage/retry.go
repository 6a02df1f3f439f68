// ABOUTME: Uniform retry policy for store reads at startup.
// ABOUTME: Wraps cenkalti/backoff with a max-attempt, fixed-delay policy.
package storage

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/JWicher/wayzza/internal/models"
)

// RetryPolicy bounds retries for startup reads. One policy applies to
// every startup read rather than per-call tuning.
type RetryPolicy struct {
	MaxAttempts uint64
	Delay       time.Duration
}

// DefaultRetryPolicy matches the original behavior: three attempts,
// half a second apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: 500 * time.Millisecond}
}

func (p RetryPolicy) backOff() backoff.BackOff {
	attempts := p.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Delay), attempts-1)
}

// Retry runs op under the policy, returning its result once it
// succeeds or the last error after the attempts are exhausted.
func Retry[T any](p RetryPolicy, op func() (T, error)) (T, error) {
	return backoff.RetryWithData(op, p.backOff())
}

// ListRoutesRetry lists routes, retrying transient failures.
func ListRoutesRetry(repo Repository, p RetryPolicy) ([]*models.Route, error) {
	return Retry(p, repo.ListRoutes)
}

// GetSettingsRetry reads settings, retrying transient failures.
func GetSettingsRetry(repo Repository, p RetryPolicy) (*models.Settings, error) {
	return Retry(p, repo.GetSettings)
}
