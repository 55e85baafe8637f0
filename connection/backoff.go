package connection

import (
	"math/rand"
	"time"
)

// backoff tracks the reconnect delay across successive failed connection attempts. It is owned exclusively by the
// actor goroutine; nothing about it is safe for concurrent use.
type backoff struct {
	current time.Duration
	rand    *rand.Rand
}

func newBackoff() *backoff {
	return &backoff{
		current: backoffInitial,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// reset restores the delay to its initial value; called after a successful connect.
func (b *backoff) reset() {
	b.current = backoffInitial
}

// next returns the delay to wait before the next connection attempt, then advances the internal state: multiply by
// 1.6, cap at 12s, add uniform jitter of ±10%, round to the nearest millisecond.
func (b *backoff) next() time.Duration {
	delay := b.current
	jitterRange := float64(delay) * backoffJitter * 2
	jitter := (b.rand.Float64() - 0.5) * jitterRange
	jittered := time.Duration(float64(delay) + jitter)

	grown := time.Duration(float64(b.current) * backoffMultiplier)
	if grown > backoffMax {
		grown = backoffMax
	}
	b.current = grown

	if jittered < 0 {
		jittered = 0
	}
	return jittered.Round(time.Millisecond)
}
