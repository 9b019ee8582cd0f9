package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// entry is the stored form of a cached value. The same record round-trips
// through both tiers: the memory tier holds it decoded, the persisted tier
// holds it as one JSON file per key.
type entry struct {
	Value     json.RawMessage `json:"value"`
	WrittenAt time.Time       `json:"written_at"`
	TTL       time.Duration   `json:"ttl_ns"`
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.WrittenAt) > e.TTL
}

// HybridCache is a TTL key/value cache with a memory tier and a persisted
// tier. The persisted tier survives process restarts; reads promote valid
// persisted entries back into memory.
type HybridCache struct {
	mu     sync.Mutex
	mem    map[string]entry
	dir    string
	max    int
	logger *zap.Logger
	flight singleflight.Group
	stop   chan struct{}
	once   sync.Once
}

// New creates a hybrid cache, ensures the cache directory exists and starts
// the background janitor.
func New(cfg Config, logger *zap.Logger) (*HybridCache, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	interval := time.Duration(cfg.CleanupIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	c := &HybridCache{
		mem:    make(map[string]entry),
		dir:    cfg.Dir,
		max:    cfg.MaxSize,
		logger: logger,
		stop:   make(chan struct{}),
	}

	go c.janitor(interval)

	return c, nil
}

// Close stops the background janitor.
func (c *HybridCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// Get looks up key and decodes the cached value into dest. It returns false
// when the key is absent or expired in both tiers. Expired or corrupt
// persisted entries are removed and treated as a miss.
func (c *HybridCache) Get(key string, dest any) bool {
	hash := hashKey(key)
	now := time.Now()

	c.mu.Lock()
	if e, ok := c.mem[hash]; ok {
		if !e.expired(now) {
			c.mu.Unlock()
			return decode(e.Value, dest)
		}
		delete(c.mem, hash)
	}
	c.mu.Unlock()

	path := c.filePath(hash)
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		// Corrupt entry: self-heal by deleting it.
		c.logger.Warn("removing corrupt cache entry", zap.String("key", key), zap.Error(err))
		_ = os.Remove(path)
		return false
	}
	if e.expired(now) {
		_ = os.Remove(path)
		return false
	}

	// Promote into memory.
	c.mu.Lock()
	c.mem[hash] = e
	c.mu.Unlock()

	return decode(e.Value, dest)
}

// Set stores value under key in both tiers. The memory tier is written
// first; a crash between the two writes loses only the persisted copy.
func (c *HybridCache) Set(key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	hash := hashKey(key)
	e := entry{Value: raw, WrittenAt: time.Now(), TTL: ttl}

	c.mu.Lock()
	c.mem[hash] = e
	c.mu.Unlock()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := os.WriteFile(c.filePath(hash), data, 0o644); err != nil {
		return fmt.Errorf("failed to persist cache entry: %w", err)
	}
	return nil
}

// Delete removes key from both tiers.
func (c *HybridCache) Delete(key string) error {
	hash := hashKey(key)

	c.mu.Lock()
	delete(c.mem, hash)
	c.mu.Unlock()

	err := os.Remove(c.filePath(hash))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry from both tiers.
func (c *HybridCache) Clear() error {
	c.mu.Lock()
	c.mem = make(map[string]entry)
	c.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(c.dir, "*.cache"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	return nil
}

func (c *HybridCache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup purges expired entries from both tiers and then evicts the
// oldest-written memory entries until the tier is back under MaxSize.
func (c *HybridCache) cleanup() {
	now := time.Now()

	c.mu.Lock()
	for hash, e := range c.mem {
		if e.expired(now) {
			delete(c.mem, hash)
		}
	}
	if c.max > 0 && len(c.mem) > c.max {
		type aged struct {
			hash string
			at   time.Time
		}
		all := make([]aged, 0, len(c.mem))
		for hash, e := range c.mem {
			all = append(all, aged{hash, e.WrittenAt})
		}
		sort.Slice(all, func(i, j int) bool { return all[i].at.Before(all[j].at) })
		for _, a := range all[:len(c.mem)-c.max] {
			delete(c.mem, a.hash)
		}
	}
	c.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(c.dir, "*.cache"))
	if err != nil {
		c.logger.Error("cache cleanup failed to list files", zap.Error(err))
		return
	}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var e entry
		if err := json.Unmarshal(data, &e); err != nil || e.expired(now) {
			_ = os.Remove(path)
		}
	}
}

func (c *HybridCache) filePath(hash string) string {
	return filepath.Join(c.dir, hash+".cache")
}

func hashKey(key string) string {
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

func decode(raw json.RawMessage, dest any) bool {
	if dest == nil {
		return true
	}
	return json.Unmarshal(raw, dest) == nil
}
