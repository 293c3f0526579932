package domain

import "context"

// BookReader resolves book snapshots by id.
// Implementations return ErrBookNotFound when the id is unknown.
type BookReader interface {
	GetBook(ctx context.Context, id int) (Book, error)
}

// BookRepository is the authoritative book store used by the reading list
type BookRepository interface {
	BookReader

	// IncrementReadCount records one more read of the book
	IncrementReadCount(ctx context.Context, id int) error
}

// BookLister enumerates the whole catalog in id order
type BookLister interface {
	ListBooks(ctx context.Context) ([]Book, error)
}

// BookCatalog manages the catalog itself (create, list, delete)
type BookCatalog interface {
	BookRepository
	BookLister

	CreateBook(ctx context.Context, book Book) (Book, error)
	DeleteBook(ctx context.Context, id int) error
}

// RandomSource returns a random integer in [1, upper].
// Network-backed sources surface ErrRandomTimeout and ErrRandomUnavailable distinctly.
type RandomSource interface {
	Next(ctx context.Context, upper int) (int, error)
}
