// Package assets decodes and caches texture images.
package assets

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/objscene/internal/engine/texture"
	"github.com/Faultbox/objscene/internal/logger"
)

// Manager decodes textures on demand and remembers the result.
// It is safe for concurrent use.
type Manager struct {
	cache *Cache[*texture.Image]
	load  func(path string) (*texture.Image, error)
	log   *zap.Logger
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache[*texture.Image](),
		load:  texture.Load,
		log:   logger.Named("assets"),
	}
}

// Texture returns the decoded image at path, decoding it on first use.
// Failures are not cached so a fixed file can be retried.
func (m *Manager) Texture(path string) (*texture.Image, error) {
	if img, ok := m.cache.Get(path); ok {
		return img, nil
	}
	img, err := m.load(path)
	if err != nil {
		return nil, err
	}
	m.cache.Set(path, img)
	m.log.Debug("texture decoded",
		zap.String("path", path),
		zap.String("format", img.Format),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
	)
	return img, nil
}

// Preload decodes paths concurrently. A texture that fails is reported in
// the returned map and skipped; the others still load. Only cancellation
// stops the batch early.
func (m *Manager) Preload(ctx context.Context, paths []string, workers int) (map[string]error, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	failed := make(map[string]error)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := m.Texture(path); err != nil {
				mu.Lock()
				failed[path] = err
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return failed, err
	}
	return failed, nil
}

// Stats returns cache hit and miss counts.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all cached images.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache keyed by path.
type Cache[V any] struct {
	data map[string]V
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{
		data: make(map[string]V),
	}
}

// Get retrieves an item from cache.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Set stores an item in cache.
func (c *Cache[V]) Set(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = v
}

// Len returns the number of cached items.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]V)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache[V]) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
