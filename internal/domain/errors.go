package domain

import "errors"

// Sentinel errors for reading list operations
var (
	// ErrEmptyList indicates the operation needs at least one book in the reading list
	ErrEmptyList = errors.New("reading list is empty")

	// ErrInvalidID indicates a malformed or negative book id
	ErrInvalidID = errors.New("invalid book id")

	// ErrNotInList indicates a well-formed id that is absent from the reading list
	ErrNotInList = errors.New("book not found in reading list")

	// ErrNotInStore indicates the id could not be resolved through the cache or store
	ErrNotInStore = errors.New("book not found in database")

	// ErrDuplicateID indicates the book is already in the reading list
	ErrDuplicateID = errors.New("book already exists in the reading list")

	// ErrSelfSwap indicates an attempt to swap a book with itself
	ErrSelfSwap = errors.New("cannot swap a book with itself")

	// ErrInvalidPosition indicates a malformed or out-of-range selection number
	ErrInvalidPosition = errors.New("invalid selection number")
)

// Sentinel errors for the book store
var (
	// ErrBookNotFound indicates the store has no book with the requested id
	ErrBookNotFound = errors.New("book not found")

	// ErrDuplicateBook indicates a book with the same author, title and year exists
	ErrDuplicateBook = errors.New("book already exists")

	// ErrInvalidBook indicates a book failed field validation
	ErrInvalidBook = errors.New("invalid book")
)

// Sentinel errors for the randomness provider
var (
	// ErrRandomTimeout indicates the provider did not answer in time
	ErrRandomTimeout = errors.New("random number request timed out")

	// ErrRandomUnavailable indicates a transport or status failure talking to the provider
	ErrRandomUnavailable = errors.New("random number request failed")

	// ErrRandomInvalidResponse indicates the provider answered with something unusable
	ErrRandomInvalidResponse = errors.New("invalid response from random number provider")

	// ErrRandomInvalidBound indicates an upper bound below 1
	ErrRandomInvalidBound = errors.New("random upper bound must be at least 1")
)
