// Package probe polls the storage service until it accepts connections or
// the retry budget is exhausted, gating the seed pipeline behind readiness.
package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/tvalderas/battfit-go/internal/errors"
	"github.com/tvalderas/battfit-go/internal/logging"
)

// ConnectFunc attempts one lightweight connectivity check against the
// storage service. It must be safe to call repeatedly.
type ConnectFunc func(ctx context.Context) error

// Policy bounds the polling loop.
type Policy struct {
	// Interval is the fixed delay between attempts.
	Interval time.Duration
	// MaxAttempts caps the number of attempts. Zero or negative retries
	// without bound; prefer a bound so startup failure stays observable.
	MaxAttempts int
}

// DefaultPolicy polls once per second for at most 30 attempts.
func DefaultPolicy() Policy {
	return Policy{Interval: 1 * time.Second, MaxAttempts: 30}
}

// Prober runs readiness checks with diagnostics on each failed attempt.
type Prober struct {
	log *slog.Logger
}

// New creates a Prober. A nil logger falls back to the service logger.
func New(log *slog.Logger) *Prober {
	if log == nil {
		log = logging.ForService("probe")
	}
	return &Prober{log: log}
}

// WaitUntilReady polls connect at the policy's fixed interval until it
// succeeds, the attempt budget runs out, or ctx is cancelled. Each failed
// attempt emits exactly one diagnostic. Returns nil once the service is
// ready.
func (p *Prober) WaitUntilReady(ctx context.Context, connect ConnectFunc, policy Policy) error {
	if policy.Interval <= 0 {
		return errors.Newf("probe interval must be positive, got %s", policy.Interval).
			Component("probe").
			Category(errors.CategoryConfiguration).
			Build()
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = connect(ctx)
		if lastErr == nil {
			p.log.Info("storage service is ready", "attempt", attempt)
			return nil
		}

		p.log.Warn("storage service unavailable, retrying",
			"attempt", attempt,
			"interval", policy.Interval.String(),
			"error", lastErr)

		if policy.MaxAttempts > 0 && attempt >= policy.MaxAttempts {
			return errors.Newf("storage service not ready after %d attempts: %w", attempt, lastErr).
				Component("probe").
				Category(errors.CategoryTimeout).
				Context("attempts", attempt).
				Build()
		}

		timer := time.NewTimer(policy.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Newf("readiness probing cancelled: %w", ctx.Err()).
				Component("probe").
				Category(errors.CategoryTimeout).
				Context("attempts", attempt).
				Build()
		case <-timer.C:
		}
	}
}
