package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/log"
	"github.com/mmcdole/shelf/internal/readinglist"
	"github.com/mmcdole/shelf/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRandom struct {
	value int
	err   error
}

func (r *stubRandom) Next(context.Context, int) (int, error) { return r.value, r.err }

type testServer struct {
	t       *testing.T
	handler http.Handler
	random  *stubRandom
}

// newTestServer seeds a memory store with three books (ids 1, 2, 3)
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	books, err := store.Open("")
	require.NoError(t, err)

	for _, b := range []domain.Book{
		{Author: "Harper Lee", Title: "To Kill a Mockingbird", Year: 1960, Genre: "Southern Gothic", Length: 281},
		{Author: "George Orwell", Title: "1984", Year: 1949, Genre: "Dystopian Fiction", Length: 328},
		{Author: "F. Scott Fitzgerald", Title: "The Great Gatsby", Year: 1925, Genre: "Tragedy", Length: 180},
	} {
		_, err := books.CreateBook(context.Background(), b)
		require.NoError(t, err)
	}

	random := &stubRandom{value: 1}
	engine := readinglist.New(books, random, readinglist.Config{TTL: time.Minute}, log.NullLogger())
	srv := NewServer(readinglist.NewGuarded(engine), books, log.NullLogger())

	return &testServer{t: t, handler: srv.Router(), random: random}
}

// do sends a request and decodes a JSON response into out when non-nil
func (ts *testServer) do(method, path string, body any, out any) int {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func (ts *testServer) add(ids ...int) {
	ts.t.Helper()
	for _, id := range ids {
		require.Equal(ts.t, http.StatusCreated, ts.do("POST", "/api/reading-list", addRequest{BookID: id}, nil))
	}
}

func (ts *testServer) order() []int {
	ts.t.Helper()
	var resp listResponse
	require.Equal(ts.t, http.StatusOK, ts.do("GET", "/api/reading-list", nil, &resp))
	ids := make([]int, len(resp.Books))
	for i, b := range resp.Books {
		ids[i] = b.ID
	}
	return ids
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)
	var resp map[string]any
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/health", nil, &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestServer_Catalog(t *testing.T) {
	ts := newTestServer(t)

	var created domain.Book
	code := ts.do("POST", "/api/books", domain.Book{Author: "Jane Austen", Title: "Emma", Year: 1815, Length: 474}, &created)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 4, created.ID)

	code = ts.do("POST", "/api/books", domain.Book{Author: "Jane Austen", Title: "Emma", Year: 1815, Length: 474}, nil)
	assert.Equal(t, http.StatusConflict, code)

	code = ts.do("POST", "/api/books", domain.Book{Author: "Nobody"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var list struct {
		Books []domain.Book `json:"books"`
	}
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/books", nil, &list))
	assert.Len(t, list.Books, 4)

	var got domain.Book
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/books/2", nil, &got))
	assert.Equal(t, "1984", got.Title)

	assert.Equal(t, http.StatusNotFound, ts.do("GET", "/api/books/99", nil, nil))
	assert.Equal(t, http.StatusBadRequest, ts.do("GET", "/api/books/abc", nil, nil))
}

func TestServer_CatalogSearch(t *testing.T) {
	ts := newTestServer(t)

	var resp struct {
		Results []struct {
			Book domain.Book `json:"book"`
		} `json:"results"`
	}
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/books?q=gatsby", nil, &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, 3, resp.Results[0].Book.ID)
}

func TestServer_AddErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.add(1)

	var errResp errorResponse
	assert.Equal(t, http.StatusConflict, ts.do("POST", "/api/reading-list", addRequest{BookID: 1}, &errResp))
	assert.Contains(t, errResp.Error, "already exists")

	assert.Equal(t, http.StatusNotFound, ts.do("POST", "/api/reading-list", addRequest{BookID: 42}, nil))
	assert.Equal(t, http.StatusBadRequest, ts.do("POST", "/api/reading-list", addRequest{BookID: -1}, nil))
	assert.Equal(t, http.StatusBadRequest, ts.do("POST", "/api/reading-list", map[string]string{"book": "x"}, nil))

	assert.Equal(t, []int{1}, ts.order())
}

func TestServer_EmptyList(t *testing.T) {
	ts := newTestServer(t)

	var list listResponse
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/reading-list", nil, &list))
	assert.NotNil(t, list.Books)
	assert.Empty(t, list.Books)
	assert.Zero(t, list.Position)

	assert.Equal(t, http.StatusConflict, ts.do("POST", "/api/reading-list/read-all", nil, nil))
	assert.Equal(t, http.StatusConflict, ts.do("GET", "/api/reading-list/positions/1", nil, nil))
	assert.Equal(t, http.StatusConflict, ts.do("POST", "/api/reading-list/read", nil, nil))
	assert.Equal(t, http.StatusConflict, ts.do("GET", "/api/reading-list/current", nil, nil))

	var length lengthResponse
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/reading-list/length", nil, &length))
	assert.Equal(t, lengthResponse{}, length)
}

func TestServer_LengthAndLookup(t *testing.T) {
	ts := newTestServer(t)
	ts.add(1, 2)

	var length lengthResponse
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/reading-list/length", nil, &length))
	assert.Equal(t, lengthResponse{Length: 2, TotalPages: 281 + 328}, length)

	var book domain.Book
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/reading-list/positions/2", nil, &book))
	assert.Equal(t, 2, book.ID)
	assert.Equal(t, http.StatusBadRequest, ts.do("GET", "/api/reading-list/positions/3", nil, nil))

	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/reading-list/books/1", nil, &book))
	assert.Equal(t, "Harper Lee", book.Author)
	assert.Equal(t, http.StatusNotFound, ts.do("GET", "/api/reading-list/books/3", nil, nil))
}

func TestServer_Remove(t *testing.T) {
	ts := newTestServer(t)
	ts.add(1, 2, 3)

	assert.Equal(t, http.StatusNoContent, ts.do("DELETE", "/api/reading-list/books/2", nil, nil))
	assert.Equal(t, []int{1, 3}, ts.order())

	assert.Equal(t, http.StatusNoContent, ts.do("DELETE", "/api/reading-list/positions/1", nil, nil))
	assert.Equal(t, []int{3}, ts.order())

	assert.Equal(t, http.StatusNoContent, ts.do("DELETE", "/api/reading-list", nil, nil))
	assert.Empty(t, ts.order())
}

func TestServer_MoveAndSwap(t *testing.T) {
	ts := newTestServer(t)
	ts.add(1, 2, 3)

	assert.Equal(t, http.StatusOK, ts.do("POST", "/api/reading-list/books/3/move", moveRequest{To: "beginning"}, nil))
	assert.Equal(t, []int{3, 1, 2}, ts.order())

	assert.Equal(t, http.StatusOK, ts.do("POST", "/api/reading-list/books/3/move", moveRequest{To: "end"}, nil))
	assert.Equal(t, []int{1, 2, 3}, ts.order())

	pos := 1
	assert.Equal(t, http.StatusOK, ts.do("POST", "/api/reading-list/books/2/move", moveRequest{Position: &pos}, nil))
	assert.Equal(t, []int{2, 1, 3}, ts.order())

	assert.Equal(t, http.StatusBadRequest, ts.do("POST", "/api/reading-list/books/2/move", moveRequest{To: "middle"}, nil))

	var resp listResponse
	assert.Equal(t, http.StatusOK, ts.do("POST", "/api/reading-list/swap", swapRequest{BookID1: 2, BookID2: 3}, &resp))
	assert.Equal(t, []int{3, 1, 2}, ts.order())

	assert.Equal(t, http.StatusBadRequest, ts.do("POST", "/api/reading-list/swap", swapRequest{BookID1: 1, BookID2: 1}, nil))
}

func TestServer_Reading(t *testing.T) {
	ts := newTestServer(t)
	ts.add(1, 2, 3)

	var book domain.Book
	assert.Equal(t, http.StatusOK, ts.do("POST", "/api/reading-list/read", nil, &book))
	assert.Equal(t, 1, book.ID)

	var cur cursorResponse
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/reading-list/current", nil, &cur))
	assert.Equal(t, 2, cur.Position)
	require.NotNil(t, cur.Book)
	assert.Equal(t, 2, cur.Book.ID)

	var rest listResponse
	assert.Equal(t, http.StatusOK, ts.do("POST", "/api/reading-list/read-rest", nil, &rest))
	assert.Len(t, rest.Books, 2)
	assert.Equal(t, 1, rest.Position)

	var all listResponse
	assert.Equal(t, http.StatusOK, ts.do("POST", "/api/reading-list/read-all", nil, &all))
	assert.Len(t, all.Books, 3)

	// Every read went through to the store
	var stored domain.Book
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/books/2", nil, &stored))
	assert.Equal(t, 2, stored.ReadCount)
}

func TestServer_Cursor(t *testing.T) {
	ts := newTestServer(t)
	ts.add(1, 2, 3)

	var cur cursorResponse
	assert.Equal(t, http.StatusOK, ts.do("POST", "/api/reading-list/goto/3", nil, &cur))
	assert.Equal(t, 3, cur.Position)
	assert.Equal(t, http.StatusBadRequest, ts.do("POST", "/api/reading-list/goto/4", nil, nil))

	assert.Equal(t, http.StatusOK, ts.do("POST", "/api/reading-list/rewind", nil, &cur))
	assert.Equal(t, 1, cur.Position)

	ts.random.value = 2
	assert.Equal(t, http.StatusOK, ts.do("POST", "/api/reading-list/goto-random", nil, &cur))
	assert.Equal(t, 2, cur.Position)
}

func TestServer_RandomFailures(t *testing.T) {
	ts := newTestServer(t)
	ts.add(1)

	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrRandomTimeout, http.StatusGatewayTimeout},
		{domain.ErrRandomUnavailable, http.StatusBadGateway},
		{domain.ErrRandomInvalidResponse, http.StatusBadGateway},
	}
	for _, tt := range tests {
		ts.random.err = tt.err
		assert.Equal(t, tt.want, ts.do("POST", "/api/reading-list/goto-random", nil, nil), tt.err.Error())
	}
}

func TestServer_DeleteBookForgetsCachedCopy(t *testing.T) {
	ts := newTestServer(t)
	ts.add(1)

	var stats struct {
		Entries int `json:"entries"`
	}
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/cache/stats", nil, &stats))
	assert.Equal(t, 1, stats.Entries)

	assert.Equal(t, http.StatusNoContent, ts.do("DELETE", "/api/books/1", nil, nil))
	assert.Equal(t, http.StatusOK, ts.do("GET", "/api/cache/stats", nil, &stats))
	assert.Equal(t, 0, stats.Entries)

	// The id stays listed but no longer resolves
	assert.Equal(t, http.StatusNotFound, ts.do("GET", "/api/reading-list/books/1", nil, nil))
}
