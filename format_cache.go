package tinyfmt

import (
	"sync"
	"sync/atomic"
)

// FormatCache provides thread-safe caching of compiled formats for
// long-running programs that print the same messages repeatedly.
// The cache uses a simple LRU eviction policy when the maximum size is reached.
//
// Cache Implementation Details:
// - Hash map keyed by the format text for O(1) lookups, doubly-linked list for LRU order
// - RWMutex allows concurrent lookups while protecting inserts
// - Atomic counters for statistics avoid lock contention
type FormatCache struct {
	mu        sync.RWMutex
	formats   map[string]*cacheEntry
	lru       *lruList
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	format  *Format
	lruNode *lruNode
}

type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

type lruList struct {
	head *lruNode
	tail *lruNode
	size int
}

// NewFormatCache creates a cache holding at most maxSize formats.
// A maxSize of 0 or negative means unlimited cache size.
func NewFormatCache(maxSize int) *FormatCache {
	return &FormatCache{
		formats: make(map[string]*cacheEntry),
		lru:     &lruList{},
		maxSize: maxSize,
	}
}

// Compile returns the compiled form of format, parsing it only on a miss.
// This method is safe for concurrent use.
func (c *FormatCache) Compile(format string) *Format {
	if f := c.get(format); f != nil {
		return f
	}
	f := Compile(format)
	return c.put(format, f)
}

// get retrieves a format, moving it to the front of the LRU list on a hit.
func (c *FormatCache) get(key string) *Format {
	c.mu.RLock()
	entry, exists := c.formats[key]
	c.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil
	}

	c.mu.Lock()
	// The entry may have been evicted or replaced between the two locks
	if cur, still := c.formats[key]; still && cur == entry {
		c.lru.moveToFront(entry.lruNode)
	}
	c.mu.Unlock()

	c.hits.Add(1)
	return entry.format
}

// put adds a format, evicting the least recently used one when full.
// If another goroutine inserted the same key first, that entry wins and is
// returned so every caller shares one compiled value.
func (c *FormatCache) put(key string, f *Format) *Format {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.formats[key]; exists {
		return entry.format
	}

	if c.maxSize > 0 && len(c.formats) >= c.maxSize {
		c.evictLRU()
	}

	node := c.lru.pushFront(key)
	c.formats[key] = &cacheEntry{
		format:  f,
		lruNode: node,
	}
	return f
}

// evictLRU removes the least recently used format from the cache
func (c *FormatCache) evictLRU() {
	if c.lru.tail == nil {
		return
	}

	key := c.lru.tail.key
	delete(c.formats, key)
	c.lru.remove(c.lru.tail)
	c.evictions.Add(1)
}

// Clear removes all formats from the cache.
// This method is safe for concurrent use.
func (c *FormatCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.formats = make(map[string]*cacheEntry)
	c.lru = &lruList{}
}

// Stats returns cache statistics.
// This method is safe for concurrent use.
func (c *FormatCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.formats)
	c.mu.RUnlock()

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // Current number of cached formats
	MaxSize   int    // Maximum cache size
	Hits      uint64 // Number of cache hits
	Misses    uint64 // Number of cache misses
	Evictions uint64 // Number of evictions
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// LRU list operations
func (l *lruList) pushFront(key string) *lruNode {
	node := &lruNode{key: key}

	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}

	l.size++
	return node
}

func (l *lruList) moveToFront(node *lruNode) {
	if node == l.head {
		return
	}

	// Remove from current position
	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node == l.tail {
		l.tail = node.prev
	}

	// Move to front
	node.prev = nil
	node.next = l.head
	l.head.prev = node
	l.head = node
}

func (l *lruList) remove(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	l.size--
}
