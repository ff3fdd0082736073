package distribution

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

const (
	defaultBaseDelay = 3 * time.Second
	defaultMaxJitter = 5 * time.Second
)

// Poller repeatedly fetches a distribution's configuration until a
// target alias shows up in its alternate domain names. Between fetches
// it sleeps for BaseDelay plus a random jitter in [0, MaxJitter); the
// jitter keeps concurrent instances watching the same distribution from
// hammering the API in lockstep.
//
// The zero value polls with the default delays and no attempt ceiling.
type Poller struct {
	Client API

	BaseDelay time.Duration // 0 means 3s
	MaxJitter time.Duration // 0 means 5s

	// MaxAttempts bounds consecutive retryable fetch failures before the
	// poller gives up. 0 means keep retrying. It never bounds the wait
	// for an absent alias; a migration can take as long as the operator
	// needs.
	MaxAttempts int

	// Progress, if set, is called after each fetch that found the alias
	// still absent.
	Progress func(attempt int, elapsed time.Duration)

	// Jitter and Sleep exist so tests can pin down timing. Nil means
	// real randomness and a real timer.
	Jitter func(max time.Duration) time.Duration
	Sleep  func(ctx context.Context, d time.Duration) error
}

// AwaitAlias blocks until the alias appears on the distribution,
// returning the snapshot that first contained it. Retryable fetch
// errors are absorbed; fatal ones and context cancellation end the
// wait.
func (p *Poller) AwaitAlias(ctx context.Context, id, alias string) (Snapshot, error) {
	base := p.BaseDelay
	if base <= 0 {
		base = defaultBaseDelay
	}
	maxJitter := p.MaxJitter
	if maxJitter <= 0 {
		maxJitter = defaultMaxJitter
	}
	jitter := p.Jitter
	if jitter == nil {
		jitter = randomJitter
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	start := time.Now()
	failures := 0
	for attempt := 1; ; attempt++ {
		snap, err := Fetch(ctx, p.Client, id)
		switch {
		case err == nil && snap.HasAlias(alias):
			return snap, nil
		case err == nil:
			failures = 0
			if p.Progress != nil {
				p.Progress(attempt, time.Since(start))
			}
		case retryable(err):
			failures++
			if p.MaxAttempts > 0 && failures >= p.MaxAttempts {
				return Snapshot{}, fmt.Errorf("giving up on distribution %s after %d consecutive failed fetches: %w", id, failures, err)
			}
		default:
			return Snapshot{}, fmt.Errorf("fetching distribution %s: %w", id, err)
		}

		if err := sleep(ctx, base+jitter(maxJitter)); err != nil {
			return Snapshot{}, err
		}
	}
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
