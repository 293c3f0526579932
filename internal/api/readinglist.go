package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/readinglist"
)

type addRequest struct {
	BookID int `json:"book_id"`
}

type moveRequest struct {
	To       string `json:"to,omitempty"` // "beginning" or "end"
	Position *int   `json:"position,omitempty"`
}

type swapRequest struct {
	BookID1 int `json:"book_id_1"`
	BookID2 int `json:"book_id_2"`
}

type listResponse struct {
	Books    []domain.Book `json:"books"`
	Position int           `json:"position"`
}

type lengthResponse struct {
	Length     int `json:"length"`
	TotalPages int `json:"total_pages"`
}

type cursorResponse struct {
	Position int          `json:"position"`
	Book     *domain.Book `json:"book,omitempty"`
}

// listBooks runs fn and writes the books it produces with the cursor position
func (s *Server) listBooks(w http.ResponseWriter, fn func(e *readinglist.Engine) ([]domain.Book, error)) {
	var resp listResponse
	err := s.list.Do(func(e *readinglist.Engine) error {
		books, err := fn(e)
		if err != nil {
			return err
		}
		resp = listResponse{Books: books, Position: e.Position()}
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if resp.Books == nil {
		resp.Books = []domain.Book{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// oneBook runs fn and writes the single book it produces
func (s *Server) oneBook(w http.ResponseWriter, fn func(e *readinglist.Engine) (domain.Book, error)) {
	var book domain.Book
	err := s.list.Do(func(e *readinglist.Engine) error {
		var err error
		book, err = fn(e)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// mutate runs fn and answers 204 on success
func (s *Server) mutate(w http.ResponseWriter, fn func(e *readinglist.Engine) error) {
	if err := s.list.Do(fn); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// moveCursor runs fn and writes the resulting cursor position
func (s *Server) moveCursor(w http.ResponseWriter, fn func(e *readinglist.Engine) error) {
	var pos int
	err := s.list.Do(func(e *readinglist.Engine) error {
		if err := fn(e); err != nil {
			return err
		}
		pos = e.Position()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cursorResponse{Position: pos})
}

// handleListAll answers an empty list with no books instead of ErrEmptyList
func (s *Server) handleListAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.listBooks(w, func(e *readinglist.Engine) ([]domain.Book, error) {
			if e.Len() == 0 {
				return nil, nil
			}
			return e.All(r.Context())
		})
	}
}

func (s *Server) handleListAdd() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		var book domain.Book
		err := s.list.Do(func(e *readinglist.Engine) error {
			if err := e.Add(r.Context(), req.BookID); err != nil {
				return err
			}
			var err error
			book, err = e.ByID(r.Context(), req.BookID)
			return err
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, book)
	}
}

func (s *Server) handleListClear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mutate(w, func(e *readinglist.Engine) error {
			e.Clear()
			return nil
		})
	}
}

func (s *Server) handleListLength() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp lengthResponse
		err := s.list.Do(func(e *readinglist.Engine) error {
			pages, err := e.TotalPages(r.Context())
			if err != nil {
				return err
			}
			resp = lengthResponse{Length: e.Len(), TotalPages: pages}
			return nil
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleListByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.oneBook(w, func(e *readinglist.Engine) (domain.Book, error) {
			return e.ByID(r.Context(), id)
		})
	}
}

func (s *Server) handleListRemoveByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.mutate(w, func(e *readinglist.Engine) error {
			return e.RemoveByID(r.Context(), id)
		})
	}
}

func (s *Server) handleListByPosition() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := pathPosition(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.oneBook(w, func(e *readinglist.Engine) (domain.Book, error) {
			return e.ByPosition(r.Context(), n)
		})
	}
}

func (s *Server) handleListRemoveByPosition() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := pathPosition(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.mutate(w, func(e *readinglist.Engine) error {
			return e.RemoveByPosition(n)
		})
	}
}

// move dispatches a move request to the matching engine operation
func move(ctx context.Context, e *readinglist.Engine, id int, req moveRequest) error {
	switch {
	case req.Position != nil && req.To != "":
		return fmt.Errorf("%w: give either to or position", errBadRequest)
	case req.Position != nil:
		return e.MoveToPosition(ctx, id, *req.Position)
	case req.To == "beginning":
		return e.MoveToBeginning(ctx, id)
	case req.To == "end":
		return e.MoveToEnd(ctx, id)
	default:
		return fmt.Errorf("%w: unknown move target %q", errBadRequest, req.To)
	}
}

func (s *Server) handleListMove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		var req moveRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		s.listBooks(w, func(e *readinglist.Engine) ([]domain.Book, error) {
			if err := move(r.Context(), e, id, req); err != nil {
				return nil, err
			}
			return e.All(r.Context())
		})
	}
}

func (s *Server) handleListSwap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req swapRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		s.listBooks(w, func(e *readinglist.Engine) ([]domain.Book, error) {
			if err := e.Swap(r.Context(), req.BookID1, req.BookID2); err != nil {
				return nil, err
			}
			return e.All(r.Context())
		})
	}
}

func (s *Server) handleCurrent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp cursorResponse
		err := s.list.Do(func(e *readinglist.Engine) error {
			book, err := e.Current(r.Context())
			if err != nil {
				return err
			}
			resp = cursorResponse{Position: e.Position(), Book: &book}
			return nil
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleReadCurrent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.oneBook(w, func(e *readinglist.Engine) (domain.Book, error) {
			return e.ReadCurrent(r.Context())
		})
	}
}

func (s *Server) handleReadAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.listBooks(w, func(e *readinglist.Engine) ([]domain.Book, error) {
			return e.ReadAll(r.Context())
		})
	}
}

func (s *Server) handleReadRest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.listBooks(w, func(e *readinglist.Engine) ([]domain.Book, error) {
			return e.ReadRest(r.Context())
		})
	}
}

func (s *Server) handleRewind() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.moveCursor(w, func(e *readinglist.Engine) error {
			return e.Rewind()
		})
	}
}

func (s *Server) handleGoto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := pathPosition(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.moveCursor(w, func(e *readinglist.Engine) error {
			return e.Goto(n)
		})
	}
}

func (s *Server) handleGotoRandom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.moveCursor(w, func(e *readinglist.Engine) error {
			return e.GotoRandom(r.Context())
		})
	}
}
