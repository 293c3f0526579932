package domain

import "fmt"

// Book is a catalog entry as held by the book store.
type Book struct {
	ID        int    `json:"id"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Genre     string `json:"genre"`
	Length    int    `json:"length"` // Page count
	ReadCount int    `json:"read_count"`
}

// String returns "Author - Title (Year)"
func (b Book) String() string {
	return fmt.Sprintf("%s - %s (%d)", b.Author, b.Title, b.Year)
}

// Validate checks the fields required to catalog a book
func (b Book) Validate() error {
	switch {
	case b.Author == "":
		return fmt.Errorf("%w: author is required", ErrInvalidBook)
	case b.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidBook)
	case b.Year <= 0:
		return fmt.Errorf("%w: year must be positive, got %d", ErrInvalidBook, b.Year)
	case b.Length <= 0:
		return fmt.Errorf("%w: length must be positive, got %d", ErrInvalidBook, b.Length)
	}
	return nil
}

// SameEdition reports whether two books share author, title and year
func (b Book) SameEdition(other Book) bool {
	return b.Author == other.Author && b.Title == other.Title && b.Year == other.Year
}
