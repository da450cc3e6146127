// Package cache implements the context cache Prep consults before
// re-running a project load (spec §4.14): a mutex-guarded map keyed by
// the project's resource identity, with a TTL and a caller-supplied
// "has it changed" check, grounded on the teacher's
// `StateDirectory`/`Persist` last-writer-wins idiom (`internal/project/
// project.go`) generalised from a single on-disk file to an in-memory
// map of arbitrarily many cached projects.
package cache

import (
	"sync"
	"time"
)

// Key identifies one cached project load (spec §4.14 "(owner, repo,
// path, reference)").
type Key struct {
	Owner     string
	Repo      string
	Path      string
	Reference string
}

type entry struct {
	value     any
	expiresAt time.Time
}

// PrepCache holds the most recent successful Prep result per Key, valid
// until TTL elapses or a caller-supplied changed-check says otherwise.
type PrepCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[Key]entry
}

// NewPrepCache returns an empty cache with the given TTL.
func NewPrepCache(ttl time.Duration) *PrepCache {
	return &PrepCache{ttl: ttl, entries: make(map[Key]entry)}
}

// Get returns the cached value for key if present and not expired.
func (c *PrepCache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Put stores value for key, last-writer-wins (spec §4.14, grounded on
// `StateDirectory.Persist`'s single-writer-wins semantics).
func (c *PrepCache) Put(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// GetOrLoad returns the cached value for key if valid, else calls load,
// caches its result when err is nil, and returns it.
func (c *PrepCache) GetOrLoad(key Key, load func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return nil, err
	}
	c.Put(key, v)
	return v, nil
}

// Invalidate removes key's entry unconditionally, e.g. when a caller's
// own changed-check (comparing a resource's revision/etag) determines
// the cached load is stale (spec §4.14 "check-changed validity").
func (c *PrepCache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
