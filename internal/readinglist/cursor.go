package readinglist

import (
	"context"
	"fmt"

	"github.com/mmcdole/shelf/internal/domain"
)

// Goto sets the cursor to selection number n.
func (e *Engine) Goto(n int) error {
	if err := e.checkNotEmpty(); err != nil {
		return err
	}
	if err := e.checkPosition(n); err != nil {
		return err
	}

	e.logger.Info("setting current selection number", "selection", n)
	e.cursor = n
	return nil
}

// GotoRandom moves the cursor to a selection number drawn from the random source.
// Provider failures are returned unchanged.
func (e *Engine) GotoRandom(ctx context.Context) error {
	if err := e.checkNotEmpty(); err != nil {
		return err
	}

	n, err := e.random.Next(ctx, len(e.list))
	if err != nil {
		e.logger.Error("failed to get random selection number", "error", err)
		return err
	}
	if n < 1 || n > len(e.list) {
		e.logger.Error("random selection out of range", "selection", n, "length", len(e.list))
		return fmt.Errorf("%w: %d not in [1, %d]", domain.ErrRandomInvalidResponse, n, len(e.list))
	}

	e.logger.Info("setting current selection number to random selection", "selection", n)
	e.cursor = n
	return nil
}

// Current returns the book at the cursor without reading it.
func (e *Engine) Current(ctx context.Context) (domain.Book, error) {
	if err := e.checkNotEmpty(); err != nil {
		return domain.Book{}, err
	}
	e.logger.Info("retrieving the current book being read")
	return e.ByPosition(ctx, e.cursor)
}

// ReadCurrent reads the book at the cursor, records the read in the store and
// advances the cursor circularly (the last book wraps to selection 1).
func (e *Engine) ReadCurrent(ctx context.Context) (domain.Book, error) {
	if err := e.checkNotEmpty(); err != nil {
		return domain.Book{}, err
	}

	book, err := e.ByPosition(ctx, e.cursor)
	if err != nil {
		return domain.Book{}, err
	}

	e.logger.Info("reading book", "title", book.Title, "bookID", book.ID, "selection", e.cursor)
	if err := e.books.IncrementReadCount(ctx, book.ID); err != nil {
		e.logger.Error("failed to update read count", "error", err, "bookID", book.ID)
		return domain.Book{}, fmt.Errorf("failed to update read count for book %d: %w", book.ID, err)
	}

	e.cursor = (e.cursor % len(e.list)) + 1
	e.logger.Info("advanced to selection number", "selection", e.cursor)
	return book, nil
}

// ReadAll rewinds and reads every book once. The cursor ends back at 1.
// Books read before a failure are returned with the error. If the first read
// fails the cursor is left where it was.
func (e *Engine) ReadAll(ctx context.Context) ([]domain.Book, error) {
	if err := e.checkNotEmpty(); err != nil {
		return nil, err
	}
	e.logger.Info("starting to read the entire reading list")

	prev := e.cursor
	e.cursor = 1
	read, err := e.readN(ctx, len(e.list))
	if err != nil {
		if len(read) == 0 {
			e.cursor = prev
		}
		return read, err
	}

	e.logger.Info("finished reading the entire reading list")
	return read, nil
}

// ReadRest reads from the cursor through the last book, wrapping the cursor to 1.
func (e *Engine) ReadRest(ctx context.Context) ([]domain.Book, error) {
	if err := e.checkNotEmpty(); err != nil {
		return nil, err
	}
	e.logger.Info("reading the rest of the reading list", "selection", e.cursor)

	read, err := e.readN(ctx, len(e.list)-e.cursor+1)
	if err != nil {
		return read, err
	}

	e.logger.Info("finished reading the rest of the reading list")
	return read, nil
}

// Rewind sets the cursor back to selection number 1.
func (e *Engine) Rewind() error {
	if err := e.checkNotEmpty(); err != nil {
		return err
	}
	e.cursor = 1
	e.logger.Info("rewound reading list to the first selection")
	return nil
}

// readN calls ReadCurrent count times; count is fixed by the caller up front
func (e *Engine) readN(ctx context.Context, count int) ([]domain.Book, error) {
	read := make([]domain.Book, 0, max(count, 0))
	for i := 0; i < count; i++ {
		book, err := e.ReadCurrent(ctx)
		if err != nil {
			return read, err
		}
		read = append(read, book)
	}
	return read, nil
}
