package cache

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Cached wraps an expensive operation with the hybrid cache. The cache key
// is derived from the operation name plus a stable serialization of its
// arguments. Concurrent misses on the same key are collapsed so the wrapped
// operation runs once.
func Cached[T any](c *HybridCache, op string, ttl time.Duration, args []any, fn func() (T, error)) (T, error) {
	key := deriveKey(op, args)

	var hit T
	if c.Get(key, &hit) {
		return hit, nil
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		// Double check after winning the flight.
		var again T
		if c.Get(key, &again) {
			return again, nil
		}
		result, err := fn()
		if err != nil {
			return result, err
		}
		if err := c.Set(key, result, ttl); err != nil {
			c.logger.Warn("failed to store cached result", zap.Error(err))
		}
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func deriveKey(op string, args []any) string {
	if len(args) == 0 {
		return op
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return op
	}
	return op + "|" + string(raw)
}
