// Package cache provides an LRU cache of apply answers with msgpack persistence.
package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// formatVersion is bumped whenever the on-disk layout changes.
const formatVersion = 1

// DefaultMaxEntries bounds the cache when Options.MaxEntries is zero.
const DefaultMaxEntries = 1024

// Key builds the cache key for input x under a recipe fingerprint.
func Key(fingerprint string, x int32) string {
	return fmt.Sprintf("%s:%d", fingerprint, x)
}

// Entry is a cached answer.
type Entry struct {
	Key        string    `msgpack:"key"`
	Answer     int32     `msgpack:"answer"`
	CreatedAt  time.Time `msgpack:"created_at"`
	AccessedAt time.Time `msgpack:"accessed_at"`
}

// Stats reports cache effectiveness since creation or the last Clear.
type Stats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// HitRate returns hits / (hits + misses), or 0 when nothing was looked up.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Options configures a ResultCache.
type Options struct {
	// MaxEntries is the maximum number of answers kept. 0 means DefaultMaxEntries.
	MaxEntries int
}

// ResultCache is a bounded LRU of answers. It is safe for concurrent use.
type ResultCache struct {
	mu         sync.Mutex
	items      map[string]*node
	lru        list
	maxEntries int
	stats      Stats
}

// node is an element of the recency list.
type node struct {
	Entry
	prev *node
	next *node
}

// list is a doubly-linked list, most recently used at head.
type list struct {
	head *node
	tail *node
	len  int
}

func (l *list) pushFront(n *node) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.len++
}

func (l *list) remove(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}

func (l *list) moveToFront(n *node) {
	if n == l.head {
		return
	}
	l.remove(n)
	l.pushFront(n)
}

// New creates an empty ResultCache.
func New(opts Options) *ResultCache {
	limit := opts.MaxEntries
	if limit <= 0 {
		limit = DefaultMaxEntries
	}
	return &ResultCache{
		items:      make(map[string]*node),
		maxEntries: limit,
	}
}

// Get returns the cached answer for key.
func (c *ResultCache) Get(key string) (int32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return 0, false
	}
	c.stats.Hits++
	n.AccessedAt = time.Now()
	c.lru.moveToFront(n)
	return n.Answer, true
}

// Set stores answer under key, evicting the least recently used entry if full.
func (c *ResultCache) Set(key string, answer int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if n, ok := c.items[key]; ok {
		n.Answer = answer
		n.AccessedAt = now
		c.lru.moveToFront(n)
		return
	}

	n := &node{Entry: Entry{Key: key, Answer: answer, CreatedAt: now, AccessedAt: now}}
	c.items[key] = n
	c.lru.pushFront(n)
	c.evictIfNeeded()
}

// GetOrCompute returns the cached answer for key, or calls compute and
// caches its result. Errors are not cached. The bool reports a cache hit.
func (c *ResultCache) GetOrCompute(key string, compute func() (int32, error)) (int32, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}
	v, err := compute()
	if err != nil {
		return 0, false, err
	}
	c.Set(key, v)
	return v, false, nil
}

// Delete removes key.
func (c *ResultCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.items[key]; ok {
		c.lru.remove(n)
		delete(c.items, key)
	}
}

// Clear removes every entry and resets the stats.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*node)
	c.lru = list{}
	c.stats = Stats{}
}

// Len returns the number of entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns a snapshot of the cache statistics.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Entries = len(c.items)
	return s
}

func (c *ResultCache) evictIfNeeded() {
	for c.lru.len > c.maxEntries {
		n := c.lru.tail
		c.lru.remove(n)
		delete(c.items, n.Key)
		c.stats.Evictions++
	}
}

// snapshot is the persisted form. Entries run from least to most recently used.
type snapshot struct {
	Version int     `msgpack:"version"`
	Entries []Entry `msgpack:"entries"`
}

// Save writes the cache to w using msgpack.
func (c *ResultCache) Save(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := snapshot{Version: formatVersion, Entries: make([]Entry, 0, len(c.items))}
	for n := c.lru.tail; n != nil; n = n.prev {
		snap.Entries = append(snap.Entries, n.Entry)
	}
	return msgpack.NewEncoder(w).Encode(&snap)
}

// Load replaces the cache contents with a snapshot read from r. Recency
// order is preserved; entries beyond MaxEntries are dropped oldest first.
func (c *ResultCache) Load(r io.Reader) error {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("failed to decode cache: %w", err)
	}
	if snap.Version != formatVersion {
		return fmt.Errorf("unsupported cache version %d (want %d)", snap.Version, formatVersion)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*node, len(snap.Entries))
	c.lru = list{}
	for _, e := range snap.Entries {
		if old, ok := c.items[e.Key]; ok {
			c.lru.remove(old)
		}
		n := &node{Entry: e}
		c.items[e.Key] = n
		c.lru.pushFront(n)
	}
	for c.lru.len > c.maxEntries {
		n := c.lru.tail
		c.lru.remove(n)
		delete(c.items, n.Key)
	}
	return nil
}

// SaveFile persists the cache to path, creating parent directories.
func (c *ResultCache) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	if err := c.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile loads the cache from path. A missing file leaves the cache empty.
func (c *ResultCache) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer f.Close()

	return c.Load(f)
}
