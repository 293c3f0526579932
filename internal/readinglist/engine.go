// Package readinglist implements an ordered, uniquely keyed reading list with a
// circular reading cursor, backed by a read-through book cache.
//
// An Engine is not safe for concurrent use. Wrap it in a Guarded when more than
// one goroutine needs access.
package readinglist

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/shelf/internal/cache"
	"github.com/mmcdole/shelf/internal/domain"
)

// Config holds the engine settings fixed at construction
type Config struct {
	TTL           time.Duration // Book snapshot freshness; <= 0 disables caching
	CacheCapacity int           // 0 = unbounded
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() Config {
	return Config{TTL: cache.DefaultTTL}
}

// Engine is the reading list: book ids in reading order plus a 1-indexed cursor.
type Engine struct {
	books  domain.BookRepository
	random domain.RandomSource
	cache  *cache.BookCache
	logger *slog.Logger

	list   []int
	cursor int
}

// New creates an empty reading list with the cursor at 1
func New(books domain.BookRepository, random domain.RandomSource, cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		books:  books,
		random: random,
		cache:  cache.New(books, cfg.TTL, cfg.CacheCapacity, logger),
		logger: logger,
		cursor: 1,
	}
}

// Len returns the number of books in the reading list
func (e *Engine) Len() int {
	e.logger.Debug("retrieving reading list length", "count", len(e.list))
	return len(e.list)
}

// TotalPages sums the page length of every book, resolved through the cache
func (e *Engine) TotalPages(ctx context.Context) (int, error) {
	total := 0
	for _, id := range e.list {
		book, err := e.cache.Get(ctx, id)
		if err != nil {
			return 0, err
		}
		total += book.Length
	}
	e.logger.Info("retrieving total reading list length", "pages", total)
	return total, nil
}

// IDs returns a copy of the book ids in reading order
func (e *Engine) IDs() []int {
	ids := make([]int, len(e.list))
	copy(ids, e.list)
	return ids
}

// Position returns the current selection number
func (e *Engine) Position() int {
	return e.cursor
}

// CacheStats reports activity of the engine's book cache
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// Forget drops the cached snapshot of a book so the next lookup hits the store
func (e *Engine) Forget(id int) {
	e.cache.Invalidate(id)
}

// indexOf returns the 0-based index of id, or -1
func (e *Engine) indexOf(id int) int {
	for i, v := range e.list {
		if v == id {
			return i
		}
	}
	return -1
}

func (e *Engine) contains(id int) bool {
	return e.indexOf(id) >= 0
}

// checkNotEmpty fails with domain.ErrEmptyList on an empty reading list
func (e *Engine) checkNotEmpty() error {
	if len(e.list) == 0 {
		e.logger.Error("reading list is empty")
		return domain.ErrEmptyList
	}
	return nil
}
