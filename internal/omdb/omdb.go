// Package omdb is a minimal client for the OMDb lookup API
// (https://www.omdbapi.com). It fetches one movie by title and normalizes
// the payload down to the fields the collection stores.
//
// OMDb reports most failures as HTTP 200 with an "Error" field in the JSON
// body; the client maps those onto the error taxonomy in pkg/errors so
// callers can react with errors.Is.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

const (
	// DefaultBaseURL is the OMDb API endpoint.
	DefaultBaseURL = "https://www.omdbapi.com/"

	// DefaultTimeout bounds a single lookup request.
	DefaultTimeout = 8 * time.Second

	service = "omdb"
)

// Client looks up movies on OMDb.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// payload is the raw OMDb response, reduced to the fields we read.
type payload struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	ImdbRating string `json:"imdbRating"`
	Poster     string `json:"Poster"`
	ImdbID     string `json:"imdbID"`
}

// ByTitle fetches a movie by exact title. "N/A" fields come back absent.
func (c *Client) ByTitle(ctx context.Context, title string) (movies.Movie, error) {
	if c.apiKey == "" {
		return movies.Movie{}, errors.ErrAPIKeyRequired
	}

	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	q.Set("r", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return movies.Movie{}, errors.WrapAPI(service, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return movies.Movie{}, errors.WrapAPI(service, 0, fmt.Errorf("network error: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return movies.Movie{}, &errors.APIError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Message:    "invalid or missing API key",
			Err:        errors.ErrAPIKeyRequired,
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		return movies.Movie{}, errors.ErrRateLimited
	case resp.StatusCode >= 500:
		return movies.Movie{}, &errors.APIError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Message:    "server error",
		}
	}

	var data payload
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return movies.Movie{}, errors.WrapAPI(service, resp.StatusCode, fmt.Errorf("invalid JSON response: %w", err))
	}

	if strings.EqualFold(data.Response, "false") {
		return movies.Movie{}, mapBodyError(title, data.Error)
	}

	m := movies.Movie{
		Title:  data.Title,
		Year:   absentIfNA(data.Year),
		Poster: absentIfNA(data.Poster),
		IMDbID: absentIfNA(data.ImdbID),
	}
	if rating, ok := movies.ParseRating(data.ImdbRating); ok {
		m.Rating = &rating
	}
	return m, nil
}

// mapBodyError translates OMDb's in-body error strings, e.g.
// {"Response":"False","Error":"Movie not found!"}.
func mapBodyError(title, msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "limit"):
		return errors.ErrRateLimited
	case strings.Contains(lower, "apikey"), strings.Contains(lower, "api key"):
		return &errors.APIError{Service: service, Message: msg, Err: errors.ErrAPIKeyRequired}
	case strings.Contains(lower, "not found"):
		return errors.NewNotFoundError("movie", title)
	default:
		return &errors.APIError{Service: service, Message: msg}
	}
}

func absentIfNA(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "n/a") {
		return ""
	}
	return strings.TrimSpace(s)
}
