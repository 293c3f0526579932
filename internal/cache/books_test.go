package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingReader is a BookReader that records every store lookup
type countingReader struct {
	books map[int]domain.Book
	calls map[int]int
}

func newCountingReader(books ...domain.Book) *countingReader {
	r := &countingReader{books: make(map[int]domain.Book), calls: make(map[int]int)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *countingReader) GetBook(_ context.Context, id int) (domain.Book, error) {
	r.calls[id]++
	b, ok := r.books[id]
	if !ok {
		return domain.Book{}, fmt.Errorf("book %d: %w", id, domain.ErrBookNotFound)
	}
	return b, nil
}

var dune = domain.Book{ID: 1, Author: "Frank Herbert", Title: "Dune", Year: 1965, Genre: "Science Fiction", Length: 412}

func TestBookCache_HitWithinTTL(t *testing.T) {
	r := newCountingReader(dune)
	c := New(r, time.Minute, 0, nil)

	first, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	second, err := c.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, dune, first)
	assert.Equal(t, dune, second)
	assert.Equal(t, 1, r.calls[1], "second get should be served from cache")

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Loads)
	assert.Equal(t, 1, stats.Entries)
}

func TestBookCache_RefetchAfterTTL(t *testing.T) {
	r := newCountingReader(dune)
	c := New(r, 30*time.Millisecond, 0, nil)

	_, err := c.Get(context.Background(), 1)
	require.NoError(t, err)

	// Hits must not extend the expiry
	time.Sleep(20 * time.Millisecond)
	_, err = c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, r.calls[1])

	time.Sleep(40 * time.Millisecond)

	updated := dune
	updated.ReadCount = 3
	r.books[1] = updated

	got, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, r.calls[1], "stale entry must not be served")
	assert.Equal(t, 3, got.ReadCount)
	assert.Equal(t, uint64(2), c.Stats().Loads)
}

func TestBookCache_NotFoundIsNotCached(t *testing.T) {
	r := newCountingReader()
	c := New(r, time.Minute, 0, nil)

	_, err := c.Get(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
	_, err = c.Get(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	assert.Equal(t, 2, r.calls[7])
	assert.Equal(t, 0, c.Len())
}

func TestBookCache_ZeroTTLAlwaysFetches(t *testing.T) {
	r := newCountingReader(dune)
	c := New(r, 0, 0, nil)

	for i := 0; i < 3; i++ {
		_, err := c.Get(context.Background(), 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, r.calls[1])
	assert.Equal(t, 0, c.Len())
}

func TestBookCache_CapacityEvictsLeastRecentlyUsed(t *testing.T) {
	books := []domain.Book{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
		{ID: 3, Title: "c"},
	}
	r := newCountingReader(books...)
	c := New(r, time.Minute, 2, nil)
	ctx := context.Background()

	_, _ = c.Get(ctx, 1)
	_, _ = c.Get(ctx, 2)
	_, _ = c.Get(ctx, 1) // 2 becomes least recently used
	_, _ = c.Get(ctx, 3)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, uint64(1), c.Stats().Evictions)

	_, _ = c.Get(ctx, 1)
	_, _ = c.Get(ctx, 2)
	assert.Equal(t, 1, r.calls[1])
	assert.Equal(t, 2, r.calls[2])
}

func TestBookCache_Invalidate(t *testing.T) {
	r := newCountingReader(dune)
	c := New(r, time.Minute, 0, nil)

	_, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	c.Invalidate(1)
	_, err = c.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, r.calls[1])
}
