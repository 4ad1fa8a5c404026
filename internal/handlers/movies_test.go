package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amro/movies/internal/models"
	"github.com/amro/movies/internal/repository"
	"github.com/amro/movies/internal/tmdb"
)

type stubRepo struct {
	trendingFn func(ctx context.Context) ([]models.Movie, error)
	detailsFn  func(ctx context.Context, id models.MovieID) (*models.MovieDetails, error)
}

func (s *stubRepo) TrendingMovies(ctx context.Context) ([]models.Movie, error) {
	return s.trendingFn(ctx)
}

func (s *stubRepo) MovieDetails(ctx context.Context, id models.MovieID) (*models.MovieDetails, error) {
	return s.detailsFn(ctx, id)
}

func (s *stubRepo) IsTrendingStale() bool { return false }

func newHandler(repo repository.MovieRepository) *MovieHandler {
	return NewMovieHandler(repo, log.New(io.Discard, "", 0))
}

func trendingMovies() []models.Movie {
	return []models.Movie{
		{
			ID:         models.TMDBID(1),
			Title:      "Movie B",
			Genres:     []models.Genre{{ID: 1, Name: "Action"}},
			Popularity: 10.0,
		},
		{
			ID:         models.TMDBID(2),
			Title:      "Movie A",
			Genres:     []models.Genre{{ID: 2, Name: "Comedy"}},
			Popularity: 20.0,
		},
	}
}

func TestTrendingDefaultSorting(t *testing.T) {
	handler := newHandler(&stubRepo{trendingFn: func(context.Context) ([]models.Movie, error) {
		return trendingMovies(), nil
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/trending", nil)
	rec := httptest.NewRecorder()
	handler.Trending(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp trendingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Len(t, resp.Movies, 2)
	// Popularity descending by default.
	assert.Equal(t, "Movie A", resp.Movies[0].Title)
	assert.Equal(t, "Movie B", resp.Movies[1].Title)
	assert.Equal(t, models.SortByPopularity, resp.SortField)
	assert.Equal(t, models.SortDescending, resp.SortDirection)
	assert.Len(t, resp.AvailableGenres, 2)
	assert.Empty(t, resp.SelectedGenres)
}

func TestTrendingSortAndFilterParams(t *testing.T) {
	handler := newHandler(&stubRepo{trendingFn: func(context.Context) ([]models.Movie, error) {
		return trendingMovies(), nil
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/trending?sort=title&direction=asc&genres=1", nil)
	rec := httptest.NewRecorder()
	handler.Trending(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp trendingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Len(t, resp.Movies, 1)
	assert.Equal(t, "Movie B", resp.Movies[0].Title)
	assert.Equal(t, models.SortByTitle, resp.SortField)
	assert.Equal(t, models.SortAscending, resp.SortDirection)
	assert.Equal(t, []int{1}, resp.SelectedGenres)
	// Available genres are taken from the unfiltered list.
	assert.Len(t, resp.AvailableGenres, 2)
}

func TestTrendingInvalidParams(t *testing.T) {
	handler := newHandler(&stubRepo{trendingFn: func(context.Context) ([]models.Movie, error) {
		t.Fatal("repository must not be called for invalid params")
		return nil, nil
	}})

	for _, target := range []string{
		"/api/movies/trending?sort=bogus",
		"/api/movies/trending?direction=sideways",
		"/api/movies/trending?genres=1,abc",
	} {
		rec := httptest.NewRecorder()
		handler.Trending(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestTrendingRepositoryFailure(t *testing.T) {
	handler := newHandler(&stubRepo{trendingFn: func(context.Context) ([]models.Movie, error) {
		return nil, errors.New("upstream down")
	}})

	rec := httptest.NewRecorder()
	handler.Trending(rec, httptest.NewRequest(http.MethodGet, "/api/movies/trending", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDetailsNumericID(t *testing.T) {
	handler := newHandler(&stubRepo{detailsFn: func(_ context.Context, id models.MovieID) (*models.MovieDetails, error) {
		assert.Equal(t, models.TMDBID(123), id)
		return &models.MovieDetails{
			Movie:  models.Movie{ID: models.TMDBID(123), Title: "Test Movie"},
			Status: "Released",
		}, nil
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/123", nil)
	req.SetPathValue("id", "123")
	rec := httptest.NewRecorder()
	handler.Details(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var details models.MovieDetails
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&details))
	assert.Equal(t, "Test Movie", details.Movie.Title)
}

func TestDetailsPrefixedIDPassedThrough(t *testing.T) {
	handler := newHandler(&stubRepo{detailsFn: func(_ context.Context, id models.MovieID) (*models.MovieDetails, error) {
		assert.Equal(t, models.MovieID("tmdb:27205"), id)
		return &models.MovieDetails{Movie: models.Movie{ID: id, Title: "Inception"}}, nil
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/tmdb:27205", nil)
	req.SetPathValue("id", "tmdb:27205")
	rec := httptest.NewRecorder()
	handler.Details(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDetailsInvalidID(t *testing.T) {
	handler := newHandler(&stubRepo{detailsFn: func(_ context.Context, id models.MovieID) (*models.MovieDetails, error) {
		return nil, fmt.Errorf("%w: %q", repository.ErrInvalidMovieID, id)
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/tt1234567", nil)
	req.SetPathValue("id", "tt1234567")
	rec := httptest.NewRecorder()
	handler.Details(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetailsNotFound(t *testing.T) {
	handler := newHandler(&stubRepo{detailsFn: func(context.Context, models.MovieID) (*models.MovieDetails, error) {
		return nil, fmt.Errorf("fetching movie: %w", tmdb.ErrNotFound)
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/999", nil)
	req.SetPathValue("id", "999")
	rec := httptest.NewRecorder()
	handler.Details(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
