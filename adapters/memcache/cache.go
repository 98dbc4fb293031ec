// Package memcache keeps narrative cache and log rows in process memory.
package memcache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"diarylens/domain/analytics"
	"diarylens/domain/core"
	"diarylens/ports"

	"github.com/patrickmn/go-cache"
)

// AICache implements AICacheRepository on go-cache. Entries expire after
// ttl; a zero ttl keeps them until the process exits.
type AICache struct {
	cache *cache.Cache
}

// NewAICache creates an in-memory narrative cache
func NewAICache(ttl, cleanupInterval time.Duration) *AICache {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &AICache{cache: cache.New(ttl, cleanupInterval)}
}

var _ ports.AICacheRepository = (*AICache)(nil)

func cacheKey(t analytics.AnalysisType) string {
	return fmt.Sprintf("ai_cache:%s", t)
}

// Get returns a copy of the cached entry
func (c *AICache) Get(_ context.Context, analysisType analytics.AnalysisType) (*analytics.AICacheEntry, error) {
	cached, found := c.cache.Get(cacheKey(analysisType))
	if !found {
		return nil, core.ErrCacheMiss
	}
	entry, ok := cached.(analytics.AICacheEntry)
	if !ok {
		return nil, core.ErrCacheMiss
	}
	return &entry, nil
}

// Put stores a copy of entry
func (c *AICache) Put(_ context.Context, entry *analytics.AICacheEntry) error {
	c.cache.Set(cacheKey(entry.AnalysisType), *entry, cache.DefaultExpiration)
	return nil
}

// MarkStale flags the cached entry, keeping its expiration
func (c *AICache) MarkStale(_ context.Context, analysisType analytics.AnalysisType) error {
	key := cacheKey(analysisType)
	cached, expires, found := c.cache.GetWithExpiration(key)
	if !found {
		return core.ErrCacheMiss
	}
	entry, ok := cached.(analytics.AICacheEntry)
	if !ok {
		return core.ErrCacheMiss
	}
	entry.Stale = true

	ttl := cache.NoExpiration
	if !expires.IsZero() {
		ttl = time.Until(expires)
		if ttl <= 0 {
			return core.ErrCacheMiss
		}
	}
	c.cache.Set(key, entry, ttl)
	return nil
}

// AILog implements AILogRepository with a bounded in-memory history.
type AILog struct {
	mu       sync.RWMutex
	entries  []analytics.AILogEntry
	capacity int
}

// NewAILog keeps at most capacity entries, dropping the oldest
func NewAILog(capacity int) *AILog {
	if capacity <= 0 {
		capacity = 500
	}
	return &AILog{capacity: capacity}
}

var _ ports.AILogRepository = (*AILog)(nil)

// Record appends entry, assigning an ID and timestamp when missing
func (l *AILog) Record(_ context.Context, entry *analytics.AILogEntry) error {
	if entry.ID == "" {
		entry.ID = core.NewLogID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, *entry)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append([]analytics.AILogEntry(nil), l.entries[over:]...)
	}
	return nil
}

// ListRecent returns the newest entries first
func (l *AILog) ListRecent(_ context.Context, analysisType analytics.AnalysisType, limit int) ([]analytics.AILogEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []analytics.AILogEntry
	for _, e := range l.entries {
		if analysisType == "" || e.AnalysisType == analysisType {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
