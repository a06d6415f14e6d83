package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, APIKey: "test-key"}, zerolog.Nop())
}

func TestFetchMovies_EmptyTermUsesDiscover(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "sort_by=popularity.desc", r.URL.RawQuery)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"page": 1,
			"results": []map[string]interface{}{
				{"id": 1, "title": "Popular One", "vote_average": 7.25, "original_language": "en"},
				{"id": 2, "title": "Popular Two", "vote_average": 6.5, "original_language": "fr"},
			},
		})
	})

	movies, err := client.FetchMovies(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, 1, movies[0].ID)
	assert.Equal(t, "Popular One", movies[0].Title)
	assert.Equal(t, 2, movies[1].ID)
	assert.Equal(t, "fr", movies[1].OriginalLanguage)
}

func TestFetchMovies_TermUsesSearchEncodedOnce(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		rawQuery string
	}{
		{name: "plain", term: "matrix", rawQuery: "query=matrix"},
		{name: "spaces", term: "the matrix", rawQuery: "query=the%20matrix"},
		{name: "reserved characters", term: "Tom & Jerry?", rawQuery: "query=Tom%20%26%20Jerry%3F"},
		{name: "plus and percent", term: "1+1=100%", rawQuery: "query=1%2B1%3D100%25"},
		{name: "unicode", term: "Amélie", rawQuery: "query=Am%C3%A9lie"},
		{name: "apostrophe", term: "Ocean's Eleven", rawQuery: "query=Ocean's%20Eleven"},
		{name: "marks left unescaped", term: "(500) Days! *", rawQuery: "query=(500)%20Days!%20*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				assert.Equal(t, "/search/movie", r.URL.Path)
				assert.Equal(t, tt.rawQuery, r.URL.RawQuery)
				assert.Equal(t, tt.term, r.URL.Query().Get("query"))
				w.Write([]byte(`{"results":[]}`))
			})

			movies, err := client.FetchMovies(context.Background(), tt.term)
			require.NoError(t, err)
			assert.Empty(t, movies)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestFetchMovies_MissingResultsIsEmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1}`))
	})

	movies, err := client.FetchMovies(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Len(t, movies, 0)
}

func TestFetchMovies_PreservesOptionalFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[
			{"id":10,"title":"With Poster","poster_path":"/p.jpg","vote_average":8.123,"release_date":"1999-03-31","original_language":"en"},
			{"id":11,"title":"Bare","poster_path":null,"vote_average":0,"original_language":"ja"}
		]}`))
	})

	movies, err := client.FetchMovies(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "/p.jpg", movies[0].PosterPath)
	assert.Equal(t, "1999-03-31", movies[0].ReleaseDate)
	assert.InDelta(t, 8.123, movies[0].VoteAverage, 0.0001)
	assert.Equal(t, "", movies[1].PosterPath)
	assert.Equal(t, "", movies[1].ReleaseDate)
}

func TestFetchMovies_APILevelFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Invalid API key"}`))
	})

	movies, err := client.FetchMovies(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, movies)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid API key", apiErr.Message)
	assert.True(t, IsAPIError(err))
	assert.Equal(t, "Invalid API key", FailureMessage(err))
}

func TestFetchMovies_APILevelFailureWithoutMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False"}`))
	})

	_, err := client.FetchMovies(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, APIFailureFallback, FailureMessage(err))
}

func TestFetchMovies_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_message":"Invalid API key: You must be granted a valid key."}`))
	})

	_, err := client.FetchMovies(context.Background(), "")
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusUnauthorized, transportErr.StatusCode)
	assert.False(t, IsAPIError(err))
	assert.Equal(t, GenericFailureMessage, FailureMessage(err))
}

func TestFetchMovies_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := client.FetchMovies(context.Background(), "x")
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, GenericFailureMessage, FailureMessage(err))
}

func TestFetchMovies_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: baseURL, APIKey: "k"}, zerolog.Nop())

	_, err := client.FetchMovies(context.Background(), "anything")
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, 0, transportErr.StatusCode)
	assert.Equal(t, GenericFailureMessage, FailureMessage(err))
}

func TestFailureMessage_UnknownError(t *testing.T) {
	assert.Equal(t, GenericFailureMessage, FailureMessage(errors.New("boom")))
}

func TestNewClient(t *testing.T) {
	t.Run("trims trailing slash", func(t *testing.T) {
		client := NewClient(Config{BaseURL: "http://example.test/3/"}, zerolog.Nop())
		assert.Equal(t, "http://example.test/3/discover/movie?sort_by=popularity.desc", client.Endpoint(""))
	})

	t.Run("default base url", func(t *testing.T) {
		client := NewClient(Config{}, zerolog.Nop())
		assert.Equal(t, "https://api.themoviedb.org/3/search/movie?query=dune", client.Endpoint("dune"))
	})

	t.Run("with timeout", func(t *testing.T) {
		client := NewClient(Config{}, zerolog.Nop(), WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("zero timeout keeps transport default", func(t *testing.T) {
		client := NewClient(Config{}, zerolog.Nop(), WithTimeout(0))
		assert.Equal(t, time.Duration(0), client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := NewClient(Config{}, zerolog.Nop(), WithHTTPClient(custom))
		assert.Same(t, custom, client.httpClient)
	})
}
