package driver

import (
	"sync"

	"risp/internal/project"
)

// ModuleCache is the in-process layer in front of an optional DiskCache,
// keyed by module path and content key.
type ModuleCache struct {
	mu    sync.RWMutex
	byMod map[string]*DiskPayload
	disk  *DiskCache
}

// NewModuleCache creates a ModuleCache with the given capacity hint. disk
// may be nil.
func NewModuleCache(capHint int, disk *DiskCache) *ModuleCache {
	return &ModuleCache{byMod: make(map[string]*DiskPayload, capHint), disk: disk}
}

// Get retrieves a payload by path and key, falling back to disk.
func (c *ModuleCache) Get(path string, key project.Digest) (*DiskPayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	rec, ok := c.byMod[path]
	c.mu.RUnlock()
	if ok && rec.ContentHash == key {
		return rec, true, nil
	}

	var payload DiskPayload
	hit, err := c.disk.Get(key, &payload)
	if err != nil || !hit {
		return nil, false, err
	}
	c.mu.Lock()
	c.byMod[path] = &payload
	c.mu.Unlock()
	return &payload, true, nil
}

// Put records the payload in memory and on disk.
func (c *ModuleCache) Put(path string, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	c.byMod[path] = payload
	c.mu.Unlock()
	return c.disk.Put(payload.ContentHash, payload)
}
