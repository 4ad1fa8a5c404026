package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotFound is returned when TMDB does not know the requested movie.
var ErrNotFound = errors.New("tmdb: not found")

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: API error: status %d, body: %s", e.Code, e.Body)
}

// Client handles interactions with The Movie Database API. It performs no
// retries and has no side effects beyond the network call; retry policy
// belongs to callers.
type Client struct {
	client      *http.Client
	bearerToken string
	baseURL     string
}

// Config holds TMDB client configuration
type Config struct {
	BearerToken string
	BaseURL     string
}

// NewClient creates a new TMDB client
func NewClient(cfg Config) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		bearerToken: cfg.BearerToken,
		baseURL:     cfg.BaseURL,
	}
}

// doRequest performs a GET request against the TMDB API
func (c *Client) doRequest(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.bearerToken))
	req.Header.Set("Content-Type", "application/json")

	q := req.URL.Query()
	q.Add("language", "en-US")
	for key, value := range params {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// Genres fetches the list of movie genres.
func (c *Client) Genres(ctx context.Context) ([]GenreRecord, error) {
	body, err := c.doRequest(ctx, "/genre/movie/list", nil)
	if err != nil {
		return nil, err
	}

	var response genreListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal genres: %w", err)
	}

	return response.Genres, nil
}

// TrendingMovies fetches one page of the movies trending this week.
func (c *Client) TrendingMovies(ctx context.Context, page int) (*PagedResponse, error) {
	if page < 1 {
		page = 1
	}

	params := map[string]string{
		"page": fmt.Sprintf("%d", page),
	}

	body, err := c.doRequest(ctx, "/trending/movie/week", params)
	if err != nil {
		return nil, err
	}

	var response PagedResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trending page: %w", err)
	}

	return &response, nil
}

// MovieDetails fetches detailed information for a single movie by its
// numeric TMDB id.
func (c *Client) MovieDetails(ctx context.Context, movieID int) (*MovieDetailsRecord, error) {
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	body, err := c.doRequest(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var record MovieDetailsRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal movie details: %w", err)
	}

	return &record, nil
}
