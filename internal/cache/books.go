package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/mmcdole/shelf/internal/domain"
)

// DefaultTTL is how long a book snapshot stays fresh when no TTL is configured
const DefaultTTL = 60 * time.Second

// Stats is a snapshot of cache activity
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Loads     uint64 `json:"loads"`
	Evictions uint64 `json:"evictions"`
	// Entries counts fresh entries only
	Entries int `json:"entries"`
}

// BookCache is a read-through cache of book snapshots keyed by id.
//
// Entries expire ttl after they were fetched. Stale entries are never swept;
// they stay in memory, uncounted, until the next Get for that id refreshes them.
// A non-zero capacity bounds the entry count with least-recently-used eviction.
//
// BookCache is owned by a single reading list and is not shared between instances.
type BookCache struct {
	books  domain.BookReader
	items  *ttlcache.Cache[int, domain.Book]
	ttl    time.Duration
	loads  uint64
	logger *slog.Logger
}

// New creates a cache in front of books. A ttl <= 0 disables caching.
func New(books domain.BookReader, ttl time.Duration, capacity int, logger *slog.Logger) *BookCache {
	if logger == nil {
		logger = slog.Default()
	}

	opts := []ttlcache.Option[int, domain.Book]{
		ttlcache.WithTTL[int, domain.Book](ttl),
		ttlcache.WithDisableTouchOnHit[int, domain.Book](),
	}
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[int, domain.Book](uint64(capacity)))
	}

	// items.Start is never called, so expiry stays lazy.
	return &BookCache{
		books:  books,
		items:  ttlcache.New(opts...),
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the book for id, from cache when fresh, otherwise from the store.
// A store failure is returned unchanged and nothing is cached.
func (c *BookCache) Get(ctx context.Context, id int) (domain.Book, error) {
	if c.ttl > 0 {
		if item := c.items.Get(id); item != nil {
			c.logger.Debug("book retrieved from cache", "bookID", id)
			return item.Value(), nil
		}
	}

	book, err := c.books.GetBook(ctx, id)
	if err != nil {
		c.logger.Error("book not found in store", "error", err, "bookID", id)
		return domain.Book{}, err
	}
	c.loads++
	c.logger.Info("book loaded from store", "bookID", id)

	if c.ttl > 0 {
		c.items.Set(id, book, ttlcache.DefaultTTL)
	}
	return book, nil
}

// Invalidate drops the cached snapshot for id, if any
func (c *BookCache) Invalidate(id int) {
	c.items.Delete(id)
}

// Len returns the number of fresh entries
func (c *BookCache) Len() int {
	return c.items.Len()
}

// Stats returns hit/miss/load counters
func (c *BookCache) Stats() Stats {
	m := c.items.Metrics()
	return Stats{
		Hits:      m.Hits,
		Misses:    m.Misses,
		Loads:     c.loads,
		Evictions: m.Evictions,
		Entries:   c.items.Len(),
	}
}
