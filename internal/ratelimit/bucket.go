// Package ratelimit provides a small token-bucket primitive shared by the
// gateway's outbound command limiter and the REST client's per-route
// bucket limiter. A single reusable type rather than a registry keyed by string,
// since both call sites already hold their own key (shard ID, route
// bucket).
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Bucket is a token bucket: Capacity tokens are available per Window, and
// acquiring a token when the bucket is empty suspends the caller until the
// window refills.
type Bucket struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration

	remaining int
	resetAt   time.Time
}

// New creates a bucket with capacity tokens refilled every window.
func New(capacity int, window time.Duration) *Bucket {
	return &Bucket{
		capacity:  capacity,
		window:    window,
		remaining: capacity,
		resetAt:   time.Now().Add(window),
	}
}

// Take blocks until a token is available or ctx is canceled.
func (b *Bucket) Take(ctx context.Context) error {
	for {
		b.mu.Lock()

		now := time.Now()
		if now.After(b.resetAt) {
			b.remaining = b.capacity
			b.resetAt = now.Add(b.window)
		}

		if b.remaining > 0 {
			b.remaining--
			b.mu.Unlock()

			return nil
		}

		wait := b.resetAt.Sub(now)
		b.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Reset immediately refills the bucket and restarts its window; the REST
// client calls it after a 429 before retrying.
func (b *Bucket) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.remaining = b.capacity
	b.resetAt = time.Now().Add(b.window)
}

// SetWindow atomically changes the refill window and capacity, used by the
// gateway when the Hello interval (and therefore the derived command
// window) becomes known only after connecting.
func (b *Bucket) SetWindow(capacity int, window time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.capacity = capacity
	b.window = window
	b.remaining = capacity
	b.resetAt = time.Now().Add(window)
}

// Remaining reports the tokens currently available, for observability.
func (b *Bucket) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.remaining
}
