// Package cache holds the client-side view of one remote collection. Every
// refresh replaces the whole snapshot; nothing is merged, so an item deleted
// server-side can never linger locally.
package cache

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// FetchFunc fetches the full collection from the remote service.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

type Cache[T any] struct {
	name   string
	fetch  FetchFunc[T]
	logger *zap.Logger

	mu      sync.Mutex
	items   []T
	loaded  bool
	seq     uint64
	applied uint64
}

func New[T any](name string, fetch FetchFunc[T], logger *zap.Logger) *Cache[T] {
	return &Cache[T]{
		name:   name,
		fetch:  fetch,
		logger: logger,
	}
}

// Refresh fetches the collection and replaces the snapshot. Concurrent
// refreshes are resolved by sequence number: a slow fetch that started
// before an already-applied one resolves without touching the snapshot,
// so the newest fetch always wins regardless of completion order.
func (c *Cache[T]) Refresh(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	items, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.applied {
		c.logger.Debug("discarding stale refresh",
			zap.String("cache", c.name),
			zap.Uint64("seq", seq),
			zap.Uint64("applied", c.applied),
		)

		return items, nil
	}

	c.applied = seq
	c.items = slices.Clone(items)
	c.loaded = true

	c.logger.Debug("cache refreshed", zap.String("cache", c.name), zap.Int("count", len(items)))

	return items, nil
}

// InvalidateAndRefresh drops any trust in the current snapshot and refetches.
// Callers awaiting it see either the new set or the fetch error, never a
// half-updated snapshot.
func (c *Cache[T]) InvalidateAndRefresh(ctx context.Context) ([]T, error) {
	return c.Refresh(ctx)
}

// Items returns the current snapshot in the order the server sent it. Empty
// before the first successful refresh.
func (c *Cache[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.items)
}

func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// Loaded reports whether at least one refresh has succeeded.
func (c *Cache[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loaded
}
