package library

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/librarr/apiclient"
	"github.com/s0up4200/librarr/catalog"
)

// fakeBackend is an in-memory catalog REST backend
type fakeBackend struct {
	mu       sync.Mutex
	nextID   int64
	authors  map[int64]catalog.Author
	genres   map[int64]catalog.Genre
	books    map[int64]catalog.BookWrite
	requests []string
	// failPath makes every request under the prefix fail with 400
	failPath string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID:  100,
		authors: map[int64]catalog.Author{},
		genres:  map[int64]catalog.Genre{},
		books:   map[int64]catalog.BookWrite{},
	}
}

func (b *fakeBackend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// Mutations returns the non-GET requests
func (b *fakeBackend) Mutations() []string {
	var out []string
	for _, r := range b.Requests() {
		if !strings.HasPrefix(r, http.MethodGet) {
			out = append(out, r)
		}
	}
	return out
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, r.Method+" "+r.URL.Path)

	if b.failPath != "" && strings.HasPrefix(r.URL.Path, b.failPath) {
		http.Error(w, "backend says no", http.StatusBadRequest)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "api" {
		http.NotFound(w, r)
		return
	}

	var id int64
	if len(parts) == 3 {
		parsed, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		id = parsed
	}

	switch parts[1] {
	case "Authors":
		serveNamed(b, w, r, id, b.authors, func(id int64, name string) catalog.Author {
			return catalog.Author{ID: id, Name: name}
		})
	case "Genres":
		serveNamed(b, w, r, id, b.genres, func(id int64, name string) catalog.Genre {
			return catalog.Genre{ID: id, Name: name}
		})
	case "Books":
		b.serveBooks(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func serveNamed[R any](b *fakeBackend, w http.ResponseWriter, r *http.Request, id int64, store map[int64]R, build func(int64, string) R) {
	switch {
	case r.Method == http.MethodGet && id == 0:
		writeJSON(w, sortedValues(store))
	case r.Method == http.MethodPost:
		var in struct{ Name string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.nextID++
		store[b.nextID] = build(b.nextID, in.Name)
		writeJSON(w, store[b.nextID])
	case r.Method == http.MethodPut:
		var in struct{ Name string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		store[id] = build(id, in.Name)
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodDelete:
		delete(store, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) serveBooks(w http.ResponseWriter, r *http.Request, id int64) {
	switch r.Method {
	case http.MethodGet:
		ids := make([]int64, 0, len(b.books))
		for bookID := range b.books {
			ids = append(ids, bookID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		books := make([]catalog.Book, 0, len(ids))
		for _, bookID := range ids {
			write := b.books[bookID]
			title := write.Title
			book := catalog.Book{ID: bookID, Title: &title, AuthorID: write.AuthorID, GenreID: write.GenreID}
			if author, ok := b.authors[write.AuthorID]; ok {
				book.AuthorName = &author.Name
			}
			if genre, ok := b.genres[write.GenreID]; ok {
				book.GenreName = &genre.Name
			}
			books = append(books, book)
		}
		writeJSON(w, books)
	case http.MethodPost:
		var in catalog.BookWrite
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.nextID++
		b.books[b.nextID] = in
		title := in.Title
		writeJSON(w, catalog.Book{ID: b.nextID, Title: &title, AuthorID: in.AuthorID, GenreID: in.GenreID})
	case http.MethodPut:
		var in catalog.BookWrite
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.books[id] = in
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		delete(b.books, id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func sortedValues[R any](store map[int64]R) []R {
	ids := make([]int64, 0, len(store))
	for id := range store {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	values := make([]R, 0, len(ids))
	for _, id := range ids {
		values = append(values, store[id])
	}
	return values
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(fmt.Sprintf("encode: %v", err))
	}
}

// confirmRecorder answers every prompt with answer and records the prompts
type confirmRecorder struct {
	answer  bool
	prompts []string
}

func (c *confirmRecorder) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

func newTestOperations(t *testing.T, backend *fakeBackend, confirmer Confirmer) *Operations {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	client, err := apiclient.NewClient(server.URL, zerolog.Nop(),
		apiclient.WithMaxRetries(1),
		apiclient.WithBackoff(time.Millisecond),
	)
	require.NoError(t, err)

	return NewOperations(catalog.NewServices(client), confirmer, zerolog.Nop())
}
