// Package tmdb is a thin client for a TMDB-style movie metadata API. It
// adapts three provider endpoints (popular, per-id details, free-text
// search) into local DTOs and does nothing else: no retries, no caching,
// one best-effort HTTP round trip per call.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound reports that a per-id details lookup failed. List and search
// operations never return it; their failures propagate as-is.
var ErrNotFound = errors.New("remote film not found")

// FilmSummary is one entry of the provider's paginated results envelope.
type FilmSummary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
}

// FilmDetails is the provider's per-id detail shape; it extends the summary
// fields with the runtime in minutes.
type FilmDetails struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
}

// resultsPage is the envelope wrapping list and search responses.
type resultsPage struct {
	Results []FilmSummary `json:"results"`
}

// Client calls the remote metadata provider. It is stateless besides its
// configuration and safe for concurrent use; one instance is shared by all
// request handlers.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a Client for the given provider base URL and API key. The key
// is appended as the api_key query parameter on every outbound request.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// get issues one GET against path with the api_key credential plus extra
// query parameters and decodes the JSON body into out on a 2xx status.
func (c *Client) get(ctx context.Context, path string, extra url.Values, out any) error {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("tmdb: %s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Popular fetches the provider's popular movies list. Transport failures
// and non-success statuses propagate to the caller.
func (c *Client) Popular(ctx context.Context) ([]FilmSummary, error) {
	var page resultsPage
	if err := c.get(ctx, "/movie/popular", nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Details fetches one movie by provider id. Unlike the list operations, a
// failed round trip or non-success status is reported as absence
// (ErrNotFound) rather than an upstream error; only a malformed success
// body remains an error.
func (c *Client) Details(ctx context.Context, id int64) (*FilmDetails, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/movie/%d?%s", c.baseURL, id, q.Encode()), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ErrNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ErrNotFound
	}
	var d FilmDetails
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Search runs a free-text query against the provider's search endpoint.
// The query is URL-escaped by the values encoder; errors propagate like
// Popular's.
func (c *Client) Search(ctx context.Context, query string) ([]FilmSummary, error) {
	extra := url.Values{}
	extra.Set("query", query)

	var page resultsPage
	if err := c.get(ctx, "/search/movie", extra, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
