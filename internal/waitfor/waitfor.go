// Package waitfor implements polling-based condition waiters for conditions
// the driver has no built-in wait for. Each waiter re-evaluates its probes
// at a fixed interval until the aggregate condition holds or the deadline
// passes; nothing is cached between polls.
package waitfor

import (
	"context"
	"fmt"
	"time"
)

// Condition is a single boolean probe. A probe error is treated as
// "not yet satisfied", not as a failure; the error text becomes part of the
// last observed state reported on timeout.
type Condition func(ctx context.Context) (bool, error)

// Clock abstracts time for the polling loops so unit tests can drive them
// deterministically.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Options configures one wait. Interval and Clock have defaults; Timeout is
// required.
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
	Clock    Clock
}

const defaultInterval = 250 * time.Millisecond

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = defaultInterval
	}
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	return o
}

// poll runs check at the configured interval until it reports done or the
// deadline passes. check returns (done, state); state describes the last
// observation and is included in the timeout error.
func poll(ctx context.Context, opts Options, what string, check func(ctx context.Context) (bool, string)) error {
	opts = opts.withDefaults()
	if opts.Timeout <= 0 {
		return fmt.Errorf("wait for %s: timeout must be positive", what)
	}

	deadline := opts.Clock.Now().Add(opts.Timeout)
	lastState := "not yet evaluated"

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("wait for %s cancelled (last state: %s): %w", what, lastState, err)
		}

		done, state := check(ctx)
		if state != "" {
			lastState = state
		}
		if done {
			return nil
		}

		if !opts.Clock.Now().Add(opts.Interval).Before(deadline) {
			return fmt.Errorf("wait for %s timed out after %v (last state: %s)", what, opts.Timeout, lastState)
		}
		if err := opts.Clock.Sleep(ctx, opts.Interval); err != nil {
			return fmt.Errorf("wait for %s cancelled (last state: %s): %w", what, lastState, err)
		}
	}
}

// All waits until every condition reports true within the same poll.
func All(ctx context.Context, opts Options, conds ...Condition) error {
	return poll(ctx, opts, "all conditions", func(ctx context.Context) (bool, string) {
		satisfied := 0
		for _, cond := range conds {
			ok, err := cond(ctx)
			if err != nil {
				return false, fmt.Sprintf("%d/%d satisfied, probe error: %v", satisfied, len(conds), err)
			}
			if ok {
				satisfied++
			}
		}
		return satisfied == len(conds), fmt.Sprintf("%d/%d satisfied", satisfied, len(conds))
	})
}

// Any waits until at least one condition reports true.
func Any(ctx context.Context, opts Options, conds ...Condition) error {
	return poll(ctx, opts, "any condition", func(ctx context.Context) (bool, string) {
		var probeErr error
		for i, cond := range conds {
			ok, err := cond(ctx)
			if err != nil {
				probeErr = err
				continue
			}
			if ok {
				return true, fmt.Sprintf("condition %d satisfied", i)
			}
		}
		if probeErr != nil {
			return false, fmt.Sprintf("0/%d satisfied, probe error: %v", len(conds), probeErr)
		}
		return false, fmt.Sprintf("0/%d satisfied", len(conds))
	})
}

// Counter reports the current number of matching elements.
type Counter func(ctx context.Context) (int, error)

// ElementCount waits until the counted value first equals want. The timeout
// error reports the last observed count.
func ElementCount(ctx context.Context, opts Options, count Counter, want int) error {
	return poll(ctx, opts, fmt.Sprintf("element count == %d", want), func(ctx context.Context) (bool, string) {
		n, err := count(ctx)
		if err != nil {
			return false, fmt.Sprintf("count unavailable: %v", err)
		}
		return n == want, fmt.Sprintf("count = %d", n)
	})
}

// Box is an element bounding box used for stability checks.
type Box struct {
	X, Y, Width, Height float64
}

// BoxProbe reports the current bounding box of an element.
type BoxProbe func(ctx context.Context) (Box, error)

// ElementStable waits until the element's bounding box is unchanged across
// two consecutive polls, i.e. animations and layout shifts have settled.
func ElementStable(ctx context.Context, opts Options, probe BoxProbe) error {
	var last Box
	seen := false
	return poll(ctx, opts, "element stable", func(ctx context.Context) (bool, string) {
		box, err := probe(ctx)
		if err != nil {
			seen = false
			return false, fmt.Sprintf("box unavailable: %v", err)
		}
		stable := seen && box == last
		last = box
		seen = true
		return stable, fmt.Sprintf("box = (%.0f,%.0f %.0fx%.0f)", box.X, box.Y, box.Width, box.Height)
	})
}

// NetworkIdle waits until inflight reports zero for the quiet window. Each
// poll that observes in-flight requests restarts the window.
func NetworkIdle(ctx context.Context, opts Options, inflight func() int, quiet time.Duration) error {
	opts = opts.withDefaults()
	var quietSince time.Time
	return poll(ctx, opts, "network idle", func(ctx context.Context) (bool, string) {
		n := inflight()
		now := opts.Clock.Now()
		if n > 0 {
			quietSince = time.Time{}
			return false, fmt.Sprintf("%d requests in flight", n)
		}
		if quietSince.IsZero() {
			quietSince = now
		}
		if now.Sub(quietSince) >= quiet {
			return true, "idle"
		}
		return false, fmt.Sprintf("idle for %v of %v", now.Sub(quietSince).Round(time.Millisecond), quiet)
	})
}
