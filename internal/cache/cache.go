package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// DefaultMaxEntries bounds the cache when no capacity is configured.
const DefaultMaxEntries = 1000

// Key is the composite cache key: content fingerprint plus config
// fingerprint, hashed together. The same content under a different
// configuration never shares an entry.
type Key [32]byte

// NewKey derives the cache key for a content blob and configuration.
func NewKey(content string, config types.ChunkingConfig) Key {
	return sha256.Sum256(fmt.Appendf(nil, "%s|%s",
		types.ContentFingerprint(content), config.Fingerprint()))
}

// entry is one cached chunk sequence with its creation time.
type entry struct {
	chunks    []types.Chunk
	createdAt time.Time
	ttl       time.Duration
}

func (e *entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.createdAt) > e.ttl
}

// Cache memoizes chunking results. Entries are whole records inserted
// atomically; concurrent first access for the same key may compute the
// result twice, which is acceptable; no single-flight de-duplication is
// attempted. Expired entries are evicted lazily on lookup rather than by
// a background sweep, trading worst-case storage growth for zero
// scheduling machinery; the LRU capacity bound keeps that growth finite.
type Cache struct {
	entries *lru.Cache[Key, *entry]
	mu      sync.RWMutex
}

// New creates a cache holding at most maxEntries results.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	entries, err := lru.New[Key, *entry](maxEntries)
	if err != nil {
		// Only reachable with a non-positive size, which is guarded above.
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}
	return &Cache{entries: entries}
}

// GetOrCompute returns the cached chunk sequence for (content, config),
// or invokes compute, stores the result, and returns it. Results are
// copied both ways so callers never share mutable state with
// the cache.
func (c *Cache) GetOrCompute(content string, config types.ChunkingConfig, compute func() ([]types.Chunk, error)) ([]types.Chunk, bool, error) {
	key := NewKey(content, config)

	if chunks, ok := c.lookup(key); ok {
		return chunks, true, nil
	}

	chunks, err := compute()
	if err != nil {
		return nil, false, err
	}
	c.store(key, chunks, config.CacheTTL)
	return chunks, false, nil
}

// lookup returns a copy of an unexpired entry, evicting it when expired.
func (c *Cache) lookup(key Key) ([]types.Chunk, bool) {
	c.mu.RLock()
	e, ok := c.entries.Get(key)
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(time.Now()) {
		c.mu.Lock()
		// Re-check under the write lock: another goroutine may have
		// replaced the entry with a fresh one.
		if cur, still := c.entries.Peek(key); still && cur.expired(time.Now()) {
			c.entries.Remove(key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return copyChunks(e.chunks), true
}

func (c *Cache) store(key Key, chunks []types.Chunk, ttl time.Duration) {
	e := &entry{
		chunks:    copyChunks(chunks),
		createdAt: time.Now(),
		ttl:       ttl,
	}
	c.mu.Lock()
	c.entries.Add(key, e)
	c.mu.Unlock()
}

// Invalidate removes one entry, expired or not.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	c.entries.Remove(key)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries.Purge()
	c.mu.Unlock()
}

// Len returns the number of stored entries, including any not yet
// lazily evicted.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries.Len()
}

// copyChunks deep-copies the slice-valued metadata fields so cached
// sequences and returned sequences never alias.
func copyChunks(chunks []types.Chunk) []types.Chunk {
	out := make([]types.Chunk, len(chunks))
	for i, ch := range chunks {
		out[i] = ch
		out[i].Metadata.QualityFlags = append([]string(nil), ch.Metadata.QualityFlags...)
		out[i].Metadata.MergedFrom = append([]int(nil), ch.Metadata.MergedFrom...)
	}
	return out
}
