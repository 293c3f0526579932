package api

import (
	"net/http"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/readinglist"
	"github.com/mmcdole/shelf/internal/search"
)

// handleHealth checks server health
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var length int
		_ = s.list.Do(func(e *readinglist.Engine) error {
			length = e.Len()
			return nil
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"status":              "ok",
			"timestamp":           time.Now().Unix(),
			"reading_list_length": length,
		})
	}
}

func (s *Server) handleCacheStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stats any
		_ = s.list.Do(func(e *readinglist.Engine) error {
			stats = e.CacheStats()
			return nil
		})
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) handleCreateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var book domain.Book
		if err := decodeBody(r, &book); err != nil {
			s.writeError(w, err)
			return
		}
		created, err := s.catalog.CreateBook(r.Context(), book)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.logger.Info("book added to catalog", "bookID", created.ID, "title", created.Title)
		writeJSON(w, http.StatusCreated, created)
	}
}

// handleListBooks lists the catalog, or searches it when ?q= is given
func (s *Server) handleListBooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "" {
			results, err := s.search.Search(r.Context(), q)
			if err != nil {
				s.writeError(w, err)
				return
			}
			if results == nil {
				results = []search.Result{}
			}
			writeJSON(w, http.StatusOK, map[string]any{"query": q, "results": results})
			return
		}

		books, err := s.catalog.ListBooks(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		if books == nil {
			books = []domain.Book{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"books": books})
	}
}

func (s *Server) handleGetBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		book, err := s.catalog.GetBook(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, book)
	}
}

// handleDeleteBook removes a book from the catalog and drops its cached snapshot
func (s *Server) handleDeleteBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if err := s.catalog.DeleteBook(r.Context(), id); err != nil {
			s.writeError(w, err)
			return
		}
		_ = s.list.Do(func(e *readinglist.Engine) error {
			e.Forget(id)
			return nil
		})
		s.logger.Info("book removed from catalog", "bookID", id)
		w.WriteHeader(http.StatusNoContent)
	}
}
