package repository

import (
	"context"
	"sync"
	"time"
)

type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type cacheEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// MemoryCache is a process-local CacheRepository honouring ttl.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]cacheEntry
	now  func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]cacheEntry),
		now:  time.Now,
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}

	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		// re-check, a Set may have landed in between
		if cur, ok := m.data[key]; ok && cur.expiresAt.Equal(entry.expiresAt) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	entry := cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = entry
	return nil
}
