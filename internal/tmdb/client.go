package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/popcorn/internal/model"
)

// Config holds the connection settings for a Client.
type Config struct {
	BaseURL string
	APIKey  string
}

// Client issues search and discover requests. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client. A missing API key is not rejected here; the API
// answers such requests with an error status which is reported per request.
func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = model.DefaultBaseURL
	}

	c := &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
		logger:     logger.With().Str("component", "tmdb").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requested for term.
func (c *Client) Endpoint(term string) string {
	if term == "" {
		return c.baseURL + "/discover/movie?sort_by=popularity.desc"
	}
	return c.baseURL + "/search/movie?query=" + escapeQuery(term)
}

// FetchMovies runs one request for term and returns the result list in API
// order. The returned slice is never nil on success.
func (c *Client) FetchMovies(ctx context.Context, term string) ([]model.MovieSummary, error) {
	endpoint := c.Endpoint(term)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug().
		Str("term", term).
		Str("endpoint", endpoint).
		Msg("Requesting movies")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", truncate(string(body), 200))}
	}

	var payload listResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if payload.failed() {
		return nil, &APIError{Endpoint: endpoint, Message: payload.Error}
	}

	movies := payload.Results
	if movies == nil {
		movies = []model.MovieSummary{}
	}

	c.logger.Debug().
		Str("term", term).
		Int("count", len(movies)).
		Int("total", payload.TotalResults).
		Msg("Retrieved movies")

	return movies, nil
}

// uriComponentUnescaper restores the characters encodeURIComponent leaves
// alone but url.QueryEscape encodes.
var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeQuery percent-encodes a query component with encodeURIComponent
// semantics.
func escapeQuery(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
