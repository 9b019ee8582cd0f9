package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalog-sync/core/cache"
	"catalog-sync/feature/remote"
	"catalog-sync/feature/source"

	"go.uber.org/zap"
)

// catKey identifies a remote category by parent ID and case folded name.
type catKey struct {
	parent int64
	name   string
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// mappingKey derives the persisted mapping key for a category path from the
// source level codes.
func mappingKey(path []source.PathLevel) string {
	codes := make([]string, len(path))
	for i, level := range path {
		codes[i] = level.Code
	}
	return strings.Join(codes, "_")
}

// resolveCategory maps a source category path to a remote category ID,
// creating missing levels root first. Resolved mappings persist in the
// cache so later passes skip the walk entirely.
func (e *Engine) resolveCategory(ctx context.Context, path []source.PathLevel) (int64, error) {
	if len(path) == 0 {
		return 0, nil
	}

	e.catMu.Lock()
	defer e.catMu.Unlock()

	var id int64
	if e.cache.Get("category_map:"+mappingKey(path), &id) {
		return id, nil
	}

	index, err := e.categoryIndex(ctx)
	if err != nil {
		return 0, err
	}

	var parent int64
	for i := range path {
		levelKey := "category_map:" + mappingKey(path[:i+1])

		var levelID int64
		if e.cache.Get(levelKey, &levelID) {
			parent = levelID
			continue
		}

		key := catKey{parent: parent, name: normalizeName(path[i].Name)}
		levelID, found := index[key]
		if !found {
			created, err := e.remote.CreateCategory(ctx, path[i].Name, parent)
			if err != nil {
				return 0, fmt.Errorf("failed to create category %q: %w", path[i].Name, err)
			}
			levelID = created.ID
			index[key] = levelID
		}

		if err := e.cache.Set(levelKey, levelID, e.mappingTTL()); err != nil {
			e.logger.Warn("failed to persist category mapping",
				zap.String("key", levelKey), zap.Error(err))
		}
		parent = levelID
	}
	return parent, nil
}

// categoryIndex returns the remote categories indexed by (parent, name).
// The listing is cached; duplicate names under one parent keep the first
// occurrence of the stable listing order.
func (e *Engine) categoryIndex(ctx context.Context) (map[catKey]int64, error) {
	ttl := time.Duration(e.cfg.CategoryListTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if e.catIndex != nil && time.Since(e.catLoadedAt) < ttl {
		return e.catIndex, nil
	}

	categories, err := cache.Cached(e.cache, "remote_categories", ttl, nil, func() ([]remote.Category, error) {
		return e.remote.ListCategories(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list remote categories: %w", err)
	}

	index := make(map[catKey]int64, len(categories))
	for _, c := range categories {
		key := catKey{parent: c.Parent, name: normalizeName(c.Name)}
		if _, dup := index[key]; dup {
			e.logger.Warn("duplicate remote category name under parent, keeping first",
				zap.String("name", c.Name), zap.Int64("parent", c.Parent))
			continue
		}
		index[key] = c.ID
	}

	e.catIndex = index
	e.catLoadedAt = time.Now()
	return index, nil
}

func (e *Engine) mappingTTL() time.Duration {
	ttl := time.Duration(e.cfg.MappingTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 720 * time.Hour
	}
	return ttl
}
