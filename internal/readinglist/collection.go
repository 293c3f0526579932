package readinglist

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmcdole/shelf/internal/domain"
)

// === Add / Remove ===

// Add appends a book to the end of the reading list.
func (e *Engine) Add(ctx context.Context, id int) error {
	e.logger.Info("received request to add book to the reading list", "bookID", id)

	if id >= 0 && e.contains(id) {
		e.logger.Error("book already exists in the reading list", "bookID", id)
		return fmt.Errorf("book %d: %w", id, domain.ErrDuplicateID)
	}
	if err := e.checkID(ctx, id, false); err != nil {
		return err
	}

	book, err := e.cache.Get(ctx, id)
	if err != nil {
		e.logger.Error("failed to add book", "error", err, "bookID", id)
		return err
	}

	e.list = append(e.list, id)
	e.logger.Info("added book to reading list", "book", book.String(), "bookID", id)
	return nil
}

// RemoveByID removes a book, shifting later books back by one position.
func (e *Engine) RemoveByID(ctx context.Context, id int) error {
	e.logger.Info("received request to remove book", "bookID", id)

	if err := e.checkNotEmpty(); err != nil {
		return err
	}
	if err := e.checkID(ctx, id, true); err != nil {
		return err
	}

	i := e.indexOf(id)
	e.list = slices.Delete(e.list, i, i+1)
	e.logger.Info("removed book from reading list", "bookID", id)
	return nil
}

// RemoveByPosition removes the book at selection number n.
func (e *Engine) RemoveByPosition(n int) error {
	e.logger.Info("received request to remove book by selection number", "selection", n)

	if err := e.checkNotEmpty(); err != nil {
		return err
	}
	if err := e.checkPosition(n); err != nil {
		return err
	}

	e.list = slices.Delete(e.list, n-1, n)
	e.logger.Info("removed book at selection number", "selection", n)
	return nil
}

// Clear empties the reading list. Clearing an empty list only logs a warning.
func (e *Engine) Clear() {
	e.logger.Info("received request to clear the reading list")
	if len(e.list) == 0 {
		e.logger.Warn("clearing an empty reading list")
	}
	e.list = e.list[:0]
	e.logger.Info("cleared the reading list")
}

// === Retrieval ===

// All returns every book in reading order.
func (e *Engine) All(ctx context.Context) ([]domain.Book, error) {
	if err := e.checkNotEmpty(); err != nil {
		return nil, err
	}

	books := make([]domain.Book, 0, len(e.list))
	for _, id := range e.list {
		book, err := e.cache.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", id, err)
		}
		books = append(books, book)
	}
	e.logger.Info("retrieved all books in the reading list", "count", len(books))
	return books, nil
}

// ByID returns a book that is in the reading list.
func (e *Engine) ByID(ctx context.Context, id int) (domain.Book, error) {
	if err := e.checkNotEmpty(); err != nil {
		return domain.Book{}, err
	}
	if err := e.checkID(ctx, id, true); err != nil {
		return domain.Book{}, err
	}

	book, err := e.cache.Get(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}
	e.logger.Info("retrieved book", "book", book.String(), "bookID", id)
	return book, nil
}

// ByPosition returns the book at selection number n.
func (e *Engine) ByPosition(ctx context.Context, n int) (domain.Book, error) {
	if err := e.checkNotEmpty(); err != nil {
		return domain.Book{}, err
	}
	if err := e.checkPosition(n); err != nil {
		return domain.Book{}, err
	}

	book, err := e.cache.Get(ctx, e.list[n-1])
	if err != nil {
		return domain.Book{}, err
	}
	e.logger.Info("retrieved book at selection number", "book", book.String(), "selection", n)
	return book, nil
}

// === Reordering ===

// MoveToBeginning moves a book to selection number 1.
func (e *Engine) MoveToBeginning(ctx context.Context, id int) error {
	e.logger.Info("moving book to the beginning of the reading list", "bookID", id)

	if err := e.checkNotEmpty(); err != nil {
		return err
	}
	if err := e.checkID(ctx, id, true); err != nil {
		return err
	}

	e.reinsert(id, 0)
	e.logger.Info("moved book to the beginning", "bookID", id)
	return nil
}

// MoveToEnd moves a book to the last selection number.
func (e *Engine) MoveToEnd(ctx context.Context, id int) error {
	e.logger.Info("moving book to the end of the reading list", "bookID", id)

	if err := e.checkNotEmpty(); err != nil {
		return err
	}
	if err := e.checkID(ctx, id, true); err != nil {
		return err
	}

	e.reinsert(id, len(e.list)-1)
	e.logger.Info("moved book to the end", "bookID", id)
	return nil
}

// MoveToPosition moves a book so it ends up at selection number n.
func (e *Engine) MoveToPosition(ctx context.Context, id, n int) error {
	e.logger.Info("moving book to selection number", "bookID", id, "selection", n)

	if err := e.checkNotEmpty(); err != nil {
		return err
	}
	if err := e.checkID(ctx, id, true); err != nil {
		return err
	}
	if err := e.checkPosition(n); err != nil {
		return err
	}

	e.reinsert(id, n-1)
	e.logger.Info("moved book to selection number", "bookID", id, "selection", n)
	return nil
}

// Swap exchanges the positions of two books.
func (e *Engine) Swap(ctx context.Context, id1, id2 int) error {
	e.logger.Info("swapping books", "bookID1", id1, "bookID2", id2)

	if id1 == id2 {
		e.logger.Error("cannot swap a book with itself", "bookID", id1)
		return fmt.Errorf("book %d: %w", id1, domain.ErrSelfSwap)
	}
	if err := e.checkNotEmpty(); err != nil {
		return err
	}
	if err := e.checkID(ctx, id1, true); err != nil {
		return err
	}
	if err := e.checkID(ctx, id2, true); err != nil {
		return err
	}

	i, j := e.indexOf(id1), e.indexOf(id2)
	e.list[i], e.list[j] = e.list[j], e.list[i]
	e.logger.Info("swapped books", "bookID1", id1, "bookID2", id2)
	return nil
}

// reinsert removes id and inserts it at the 0-based index idx of the shortened list
func (e *Engine) reinsert(id, idx int) {
	i := e.indexOf(id)
	e.list = slices.Delete(e.list, i, i+1)
	e.list = slices.Insert(e.list, idx, id)
}
