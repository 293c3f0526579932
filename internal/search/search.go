package search

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Result is a catalog match with metadata for ranking and highlighting
type Result struct {
	Book           domain.Book `json:"book"`
	MatchedIndexes []int       `json:"matched_indexes,omitempty"` // Positions in Key that matched
	Score          int         `json:"score"`                     // Subsequence score (higher = better)
	Distance       int         `json:"distance"`                  // Edit distance (lower = better)
	Approximate    bool        `json:"approximate"`               // Matched only with typo tolerance
}

// Index implements sahilm/fuzzy.Source over "title author" keys
type Index struct {
	books []domain.Book
	keys  []string // Pre-computed lowercase keys
}

// NewIndex builds a search index over books
func NewIndex(books []domain.Book) *Index {
	idx := &Index{
		books: books,
		keys:  make([]string, len(books)),
	}
	for i, b := range books {
		idx.keys[i] = Key(b)
	}
	return idx
}

// Key returns the lowercase text a book is matched against
func Key(b domain.Book) string {
	return strings.ToLower(b.Title + " " + b.Author)
}

// String returns the key at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.keys[i] }

// Len returns the number of books (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.books) }

// Search returns books whose key contains the query as a subsequence,
// followed by books that match word-by-word within a small typo allowance.
func (idx *Index) Search(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || idx.Len() == 0 {
		return nil
	}

	matched := make([]bool, idx.Len())
	var results []Result

	for _, m := range fuzzy.FindFrom(query, idx) {
		matched[m.Index] = true
		results = append(results, Result{
			Book:           idx.books[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
			Distance:       fuzzysearch.LevenshteinDistance(query, idx.keys[m.Index]),
		})
	}

	queryTokens := tokenize(query)
	for i, key := range idx.keys {
		if matched[i] {
			continue
		}
		if dist, ok := matchTokens(queryTokens, tokenize(key)); ok {
			results = append(results, Result{
				Book:        idx.books[i],
				Distance:    dist,
				Approximate: true,
			})
		}
	}

	slices.SortStableFunc(results, compareResults)
	return results
}

// compareResults orders exact subsequence matches first, then by score,
// edit distance and book id
func compareResults(a, b Result) int {
	if a.Approximate != b.Approximate {
		if a.Approximate {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
		return c
	}
	return cmp.Compare(a.Book.ID, b.Book.ID)
}

// Service searches the catalog
type Service struct {
	books  domain.BookLister
	logger *slog.Logger
}

// NewService creates a new search service
func NewService(books domain.BookLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		books:  books,
		logger: logger,
	}
}

// Search performs a fuzzy search across the whole catalog
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	books, err := s.books.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	results := NewIndex(books).Search(query)
	s.logger.Debug("search complete", "query", query, "catalog", len(books), "results", len(results))
	return results, nil
}
