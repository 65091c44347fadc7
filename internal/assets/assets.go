// Package assets handles mesh file lookup and caching.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/meshcut/pkg/formats"
)

// ErrNotFound is returned when a mesh path resolves under no root.
var ErrNotFound = errors.New("mesh file not found")

// Manager loads mesh files from a set of root directories and caches the
// parsed models. Cached models are shared and must not be modified.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddRoot adds a directory that relative mesh paths are resolved against.
// Roots are searched in reverse order (last added = highest priority), then
// the working directory.
func (m *Manager) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding root %s: not a directory", dir)
	}

	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()

	return nil
}

// Resolve returns the file a mesh path refers to.
func (m *Manager) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		candidate := filepath.Join(m.roots[i], path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Load resolves and parses a mesh file, returning the cached model on repeat calls.
func (m *Manager) Load(path string) (*formats.Model, error) {
	resolved, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}

	// Check cache first
	if model, ok := m.cache.Get(resolved); ok {
		return model, nil
	}

	model, err := formats.Load(resolved)
	if err != nil {
		return nil, err
	}
	m.cache.Set(resolved, model)
	return model, nil
}

// Cache returns the manager's model cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close drops all roots and cached models.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for parsed models.
type Cache struct {
	data map[string]*formats.Model
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*formats.Model),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*formats.Model, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	model, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return model, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, model *formats.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = model
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*formats.Model)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
