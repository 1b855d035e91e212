package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const volumesFixture = `{
  "kind": "books#volumes",
  "totalItems": 3,
  "items": [
    {
      "id": "abc",
      "volumeInfo": {
        "title": "Pride and Prejudice",
        "authors": ["Jane Austen"],
        "publishedDate": "1813",
        "industryIdentifiers": [
          {"type": "ISBN_10", "identifier": "0141439513"},
          {"type": "ISBN_13", "identifier": "9780141439518"}
        ],
        "imageLinks": {"smallThumbnail": "http://img/s", "thumbnail": "http://img/t"},
        "description": "<p>A classic.</p>"
      }
    },
    {
      "id": "def",
      "volumeInfo": {
        "authors": ["Terry Pratchett", "Neil Gaiman"],
        "industryIdentifiers": [{"type": "ISBN_10", "identifier": "0060853980"}]
      }
    },
    {
      "id": "ghi",
      "volumeInfo": {
        "title": "Odd Record",
        "authors": "Single Author",
        "industryIdentifiers": [{"type": "OTHER", "identifier": "X:1"}]
      }
    }
  ]
}`

func TestSearchShortQueryMakesNoCall(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewClient(zerolog.Nop(), WithEndpoint(server.URL))

	for _, q := range []string{"", "a", "ab", "  ab  ", "\tx\n"} {
		got, err := client.Search(context.Background(), q)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Equal(t, int32(0), hits.Load())
}

func TestSearchQueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "intitle:pride", q.Get("q"))
		assert.Equal(t, "US", q.Get("country"))
		assert.Equal(t, "40", q.Get("maxResults"))
		assert.False(t, q.Has("key"))
		w.Write([]byte(`{"kind":"books#volumes","totalItems":0}`))
	}))
	defer server.Close()

	client := NewClient(zerolog.Nop(), WithEndpoint(server.URL))

	got, err := client.Search(context.Background(), "  pride ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchMapsVolumes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(volumesFixture))
	}))
	defer server.Close()

	client := NewClient(zerolog.Nop(), WithEndpoint(server.URL), WithRateLimit(100))

	got, err := client.Search(context.Background(), "pride")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, Suggestion{
		ID:            "abc",
		Title:         "Pride and Prejudice",
		Author:        "Jane Austen",
		PublishedDate: "1813",
		ISBN:          "9780141439518",
		Thumbnail:     "http://img/t",
		Description:   "<p>A classic.</p>",
	}, got[0])

	assert.Equal(t, "Untitled", got[1].Title)
	assert.Equal(t, "Terry Pratchett, Neil Gaiman", got[1].Author)
	assert.Equal(t, "0060853980", got[1].ISBN)
	assert.Empty(t, got[1].Thumbnail)

	assert.Equal(t, "Single Author", got[2].Author)
	assert.Empty(t, got[2].ISBN)
}

func TestSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(zerolog.Nop(), WithEndpoint(server.URL))

	_, err := client.Search(context.Background(), "pride")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Google API 403 Forbidden", err.Error())
	assert.False(t, apiErr.IsRateLimited())
}

func TestClientOptions(t *testing.T) {
	client := NewClient(zerolog.Nop(),
		WithCountry("GB"),
		WithMaxResults(10),
		WithAPIKey("secret"),
		WithMaxResults(-1),
	)
	assert.Equal(t, DefaultEndpoint, client.endpoint)
	assert.Equal(t, "GB", client.country)
	assert.Equal(t, 10, client.maxResults)
	assert.Equal(t, "secret", client.apiKey)
	assert.Nil(t, client.limiter)
}

func TestTimeoutLeavesCallerClientUntouched(t *testing.T) {
	custom := &http.Client{}
	client := NewClient(zerolog.Nop(), WithHTTPClient(custom), WithTimeout(3*time.Second))

	assert.NotSame(t, custom, client.httpClient)
	assert.Equal(t, 3*time.Second, client.httpClient.Timeout)
	assert.Zero(t, custom.Timeout)

	plain := NewClient(zerolog.Nop(), WithHTTPClient(custom))
	assert.Same(t, custom, plain.httpClient)
}

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"A plain description":                    "A plain description",
		"<p>First.</p><p>Second <b>bold</b></p>": "First. Second bold",
		"Line one<br>Line two":                   "Line one Line two",
		"Tom &amp; Jerry":                        "Tom & Jerry",
		"":                                       "",
	}

	for input, want := range cases {
		assert.Equal(t, want, PlainText(input), "PlainText(%q)", input)
	}
}
