// Package api exposes the catalog and a single reading list over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/readinglist"
	"github.com/mmcdole/shelf/internal/search"
)

// Server wraps handlers for the catalog and reading list.
type Server struct {
	list    *readinglist.Guarded
	catalog domain.BookCatalog
	search  *search.Service
	logger  *slog.Logger
	router  *mux.Router
}

// NewServer creates a new API server over list and catalog.
func NewServer(list *readinglist.Guarded, catalog domain.BookCatalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		list:    list,
		catalog: catalog,
		search:  search.NewService(catalog, logger),
		logger:  logger,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

// Router returns http.Handler to be used by http.Server
func (s *Server) Router() http.Handler {
	return s.logRequests(s.router)
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth()).Methods("GET")
	api.HandleFunc("/cache/stats", s.handleCacheStats()).Methods("GET")

	// Catalog
	api.HandleFunc("/books", s.handleCreateBook()).Methods("POST")
	api.HandleFunc("/books", s.handleListBooks()).Methods("GET")
	api.HandleFunc("/books/{id}", s.handleGetBook()).Methods("GET")
	api.HandleFunc("/books/{id}", s.handleDeleteBook()).Methods("DELETE")

	// Reading list
	rl := api.PathPrefix("/reading-list").Subrouter()
	rl.HandleFunc("", s.handleListAll()).Methods("GET")
	rl.HandleFunc("", s.handleListAdd()).Methods("POST")
	rl.HandleFunc("", s.handleListClear()).Methods("DELETE")
	rl.HandleFunc("/length", s.handleListLength()).Methods("GET")
	rl.HandleFunc("/books/{id}", s.handleListByID()).Methods("GET")
	rl.HandleFunc("/books/{id}", s.handleListRemoveByID()).Methods("DELETE")
	rl.HandleFunc("/books/{id}/move", s.handleListMove()).Methods("POST")
	rl.HandleFunc("/positions/{n}", s.handleListByPosition()).Methods("GET")
	rl.HandleFunc("/positions/{n}", s.handleListRemoveByPosition()).Methods("DELETE")
	rl.HandleFunc("/swap", s.handleListSwap()).Methods("POST")

	// Cursor
	rl.HandleFunc("/current", s.handleCurrent()).Methods("GET")
	rl.HandleFunc("/read", s.handleReadCurrent()).Methods("POST")
	rl.HandleFunc("/read-all", s.handleReadAll()).Methods("POST")
	rl.HandleFunc("/read-rest", s.handleReadRest()).Methods("POST")
	rl.HandleFunc("/rewind", s.handleRewind()).Methods("POST")
	rl.HandleFunc("/goto/{n}", s.handleGoto()).Methods("POST")
	rl.HandleFunc("/goto-random", s.handleGotoRandom()).Methods("POST")
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs one line per request at debug level
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
