package transport

import (
	"time"

	"github.com/cenkalti/backoff/v5"
)

// linearBackOff grows the delay by a fixed step per attempt: step, 2*step,
// 3*step and so on.
type linearBackOff struct {
	step    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.step
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

func newBackOff(cfg Config) backoff.BackOff {
	step := time.Duration(cfg.RetryDelayMS) * time.Millisecond
	if step <= 0 {
		step = 500 * time.Millisecond
	}
	if cfg.Backoff == "exponential" {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = step
		return b
	}
	return &linearBackOff{step: step}
}
