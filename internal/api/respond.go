package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/readinglist"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes it as JSON
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "status", status)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor returns the HTTP status for an error kind
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidPosition),
		errors.Is(err, domain.ErrSelfSwap),
		errors.Is(err, domain.ErrInvalidBook),
		errors.Is(err, domain.ErrRandomInvalidBound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotInList),
		errors.Is(err, domain.ErrNotInStore),
		errors.Is(err, domain.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateID),
		errors.Is(err, domain.ErrDuplicateBook),
		errors.Is(err, domain.ErrEmptyList):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRandomTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrRandomUnavailable),
		errors.Is(err, domain.ErrRandomInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("malformed request body")

// decodeBody decodes a JSON request body into v
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

// pathID parses the {id} route variable
func pathID(r *http.Request) (int, error) {
	return readinglist.ParseID(mux.Vars(r)["id"])
}

// pathPosition parses the {n} route variable
func pathPosition(r *http.Request) (int, error) {
	return readinglist.ParsePosition(mux.Vars(r)["n"])
}
