package canon

import (
	"sync"
	"time"
)

type retryEntry struct {
	failures int
	seen     time.Time
}

// RetryBook counts consecutive resolution failures per observed id.
// It holds at most limit ids; entries idle longer than ttl are dropped,
// and when full the least recently failed id is evicted.
type RetryBook struct {
	mu      sync.Mutex
	limit   int
	ttl     time.Duration
	now     func() time.Time
	entries map[string]retryEntry
}

// NewRetryBook builds a book; limit <= 0 means 10000 and ttl <= 0 means 24h
func NewRetryBook(limit int, ttl time.Duration) *RetryBook {
	if limit <= 0 {
		limit = 10000
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RetryBook{limit: limit, ttl: ttl, now: time.Now, entries: make(map[string]retryEntry)}
}

// Fail records one more failure for id and returns the running count
func (b *RetryBook) Fail(id string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	e, ok := b.entries[id]
	if ok && now.Sub(e.seen) > b.ttl {
		e = retryEntry{}
	}
	if !ok && len(b.entries) >= b.limit {
		b.evict(now)
	}
	e.failures++
	e.seen = now
	b.entries[id] = e
	return e.failures
}

// Clear forgets id
func (b *RetryBook) Clear(id string) {
	b.mu.Lock()
	delete(b.entries, id)
	b.mu.Unlock()
}

// Len is the number of tracked ids
func (b *RetryBook) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// evict drops expired entries, then the oldest one if still full
func (b *RetryBook) evict(now time.Time) {
	var oldestID string
	var oldest time.Time
	for id, e := range b.entries {
		if now.Sub(e.seen) > b.ttl {
			delete(b.entries, id)
			continue
		}
		if oldestID == "" || e.seen.Before(oldest) {
			oldestID, oldest = id, e.seen
		}
	}
	if len(b.entries) >= b.limit && oldestID != "" {
		delete(b.entries, oldestID)
	}
}
