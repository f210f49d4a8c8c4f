package service

import (
	"context"
	"log"
	"time"
)

// LapsedExpirer bulk-clears subscriptions whose expiry has passed.
type LapsedExpirer interface {
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
}

// ExpirySweeper periodically clears lapsed subscriptions so stored state
// matches what reads already report. Reads never depend on it.
type ExpirySweeper struct {
	store    LapsedExpirer
	interval time.Duration
	now      func() time.Time
}

// NewExpirySweeper creates a sweeper running every interval.
func NewExpirySweeper(store LapsedExpirer, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{store: store, interval: interval, now: time.Now}
}

// Start runs one sweep immediately, then one per interval until ctx is done.
func (s *ExpirySweeper) Start(ctx context.Context) {
	go func() {
		s.sweep(ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *ExpirySweeper) sweep(ctx context.Context) int64 {
	n, err := s.store.ExpireLapsed(ctx, s.now())
	if err != nil {
		log.Printf("[Sweeper] Failed to expire subscriptions: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("[Sweeper] Cleared %d lapsed subscriptions", n)
	}
	return n
}
