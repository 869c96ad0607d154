package app

import (
	"context"
	"log"
	"time"
)

const maxBackoff = 30 * time.Second

// Reloader refreshes the list without user-facing side effects.
type Reloader interface {
	Reload(ctx context.Context) error
}

// StartPoller launches a background goroutine that reloads at interval,
// backing off after consecutive failures. It returns immediately; a
// non-positive interval starts nothing.
func StartPoller(ctx context.Context, r Reloader, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go poll(ctx, r, interval)
}

// poll blocks until ctx is done. The first reload happens one interval after
// the call.
func poll(ctx context.Context, r Reloader, interval time.Duration) {
	failures := 0
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		err := r.Reload(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			failures++
			log.Printf("poller: reload failed (%d in a row), next try in %s: %v", failures, calculateBackoff(failures, interval), err)
		} else {
			if failures > 0 {
				log.Printf("poller: reload recovered after %d failures", failures)
			}
			failures = 0
		}
		timer.Reset(calculateBackoff(failures, interval))
	}
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff. An interval already above the cap is never shortened.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := max(maxBackoff, base)
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= limit {
			return limit
		}
	}
	return backoff
}
