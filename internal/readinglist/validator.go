package readinglist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/shelf/internal/domain"
)

// ParseID parses a raw book id. Malformed and negative ids fail with domain.ErrInvalidID.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
	}
	return id, nil
}

// ParsePosition parses a raw selection number without range checking.
func ParsePosition(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidPosition, raw)
	}
	return n, nil
}

// ValidateID parses raw and checks it names a resolvable book. With
// requireInList the book must also be in the reading list.
func (e *Engine) ValidateID(ctx context.Context, raw string, requireInList bool) (int, error) {
	id, err := ParseID(raw)
	if err != nil {
		e.logger.Error("invalid book id", "id", raw)
		return 0, err
	}
	if err := e.checkID(ctx, id, requireInList); err != nil {
		return 0, err
	}
	return id, nil
}

// ValidatePosition parses raw and checks 1 <= n <= Len().
func (e *Engine) ValidatePosition(raw string) (int, error) {
	n, err := ParsePosition(raw)
	if err != nil {
		e.logger.Error("invalid selection number", "selection", raw)
		return 0, err
	}
	if err := e.checkPosition(n); err != nil {
		return 0, err
	}
	return n, nil
}

func (e *Engine) checkID(ctx context.Context, id int, requireInList bool) error {
	if id < 0 {
		e.logger.Error("invalid book id", "bookID", id)
		return fmt.Errorf("%w: %d", domain.ErrInvalidID, id)
	}

	if requireInList && !e.contains(id) {
		e.logger.Error("book not found in reading list", "bookID", id)
		return fmt.Errorf("book %d: %w", id, domain.ErrNotInList)
	}

	// Existence is always confirmed against the cache/store
	if _, err := e.cache.Get(ctx, id); err != nil {
		e.logger.Error("book not found in database", "error", err, "bookID", id)
		return fmt.Errorf("book %d: %w: %w", id, domain.ErrNotInStore, err)
	}
	return nil
}

func (e *Engine) checkPosition(n int) error {
	if n < 1 || n > len(e.list) {
		e.logger.Error("invalid selection number", "selection", n, "length", len(e.list))
		return fmt.Errorf("%w: %d", domain.ErrInvalidPosition, n)
	}
	return nil
}
