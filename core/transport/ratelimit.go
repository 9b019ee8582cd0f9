package transport

import (
	"context"
	"sync"
	"time"
)

// slidingWindow allows at most limit sends per window. Timestamps of recent
// sends are kept and pruned as the window slides; when the window is full the
// caller blocks until the oldest send ages out.
type slidingWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	sent   []time.Time
}

func newSlidingWindow(limit int, window time.Duration) *slidingWindow {
	return &slidingWindow{limit: limit, window: window}
}

// Wait blocks until a send slot is available or the context is done, then
// records the send.
func (w *slidingWindow) Wait(ctx context.Context) error {
	if w.limit <= 0 {
		return nil
	}
	for {
		w.mu.Lock()
		now := time.Now()
		w.prune(now)
		if len(w.sent) < w.limit {
			w.sent = append(w.sent, now)
			w.mu.Unlock()
			return nil
		}
		wait := w.sent[0].Add(w.window).Sub(now)
		w.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (w *slidingWindow) prune(now time.Time) {
	cutoff := now.Add(-w.window)
	keep := 0
	for _, ts := range w.sent {
		if ts.After(cutoff) {
			w.sent[keep] = ts
			keep++
		}
	}
	w.sent = w.sent[:keep]
}
