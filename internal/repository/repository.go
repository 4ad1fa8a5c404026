// Package repository provides the data-access layer for trending movies.
//
// It merges paginated remote data into a single deduplicated list and owns
// the process-lifetime genre cache. Errors from the TMDB client pass through
// untouched; translating them into user-facing state is the controllers'
// job.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/amro/movies/internal/models"
	"github.com/amro/movies/internal/tmdb"
)

// ErrInvalidMovieID is returned when an identifier's raw id is not numeric.
// It is raised synchronously, before any network call.
var ErrInvalidMovieID = errors.New("repository: invalid movie id")

// MovieRepository provides a unified data interface for movie information.
type MovieRepository interface {
	// TrendingMovies returns the current top trending movies, at most
	// trendingPages*moviesPerPage entries, deduplicated by id.
	TrendingMovies(ctx context.Context) ([]models.Movie, error)

	// MovieDetails returns detailed information for a single movie.
	MovieDetails(ctx context.Context, id models.MovieID) (*models.MovieDetails, error)

	// IsTrendingStale reports whether the trending list is old enough to
	// warrant a refresh. Cheap and synchronous.
	IsTrendingStale() bool
}

// The trending list is a fixed five-page window of 20 items, 100 movies
// total. The bound is deliberate and not derived from the API's reported
// total_pages.
const (
	trendingPages = 5
	moviesPerPage = 20
)

// Config holds the values the repository needs beyond the API client.
type Config struct {
	ImageBaseURL string
	IMDBBaseURL  string
	TrendingTTL  time.Duration
}

// TMDBMovieRepository is the TMDB-backed MovieRepository.
type TMDBMovieRepository struct {
	api          *tmdb.Client
	imageBaseURL string
	imdbBaseURL  string
	trendingTTL  time.Duration

	// genreCache maps genre id to name for the lifetime of the process.
	// Entries are write-once. genreMu serializes both population and reads
	// so no caller can observe a partially filled cache.
	genreMu    sync.Mutex
	genreCache map[int]string
}

// NewTMDBMovieRepository creates a repository backed by the given client.
func NewTMDBMovieRepository(api *tmdb.Client, cfg Config) *TMDBMovieRepository {
	return &TMDBMovieRepository{
		api:          api,
		imageBaseURL: cfg.ImageBaseURL,
		imdbBaseURL:  cfg.IMDBBaseURL,
		trendingTTL:  cfg.TrendingTTL,
		genreCache:   make(map[int]string),
	}
}

// genres returns the genre id→name map, fetching it on first use. The fetch
// happens while holding genreMu, so at most one network call is in flight no
// matter how many TrendingMovies calls race here; later callers block until
// the cache is fully populated.
func (r *TMDBMovieRepository) genres(ctx context.Context) (map[int]string, error) {
	r.genreMu.Lock()
	defer r.genreMu.Unlock()

	if len(r.genreCache) == 0 {
		records, err := r.api.Genres(ctx)
		if err != nil {
			return nil, err
		}
		for _, g := range records {
			r.genreCache[g.ID] = g.Name
		}
	}
	return r.genreCache, nil
}

// TrendingMovies fetches pages 1..trendingPages concurrently, maps every
// record through the genre cache, concatenates the pages in page order and
// drops duplicate ids keeping the first occurrence. If the genre fetch or
// any single page fails, the whole call fails; there is no partial result.
func (r *TMDBMovieRepository) TrendingMovies(ctx context.Context) ([]models.Movie, error) {
	genres, err := r.genres(ctx)
	if err != nil {
		return nil, err
	}

	pages := make([][]models.Movie, trendingPages)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < trendingPages; i++ {
		page := i + 1
		g.Go(func() error {
			response, err := r.api.TrendingMovies(ctx, page)
			if err != nil {
				return fmt.Errorf("fetch trending page %d: %w", page, err)
			}
			movies := make([]models.Movie, 0, len(response.Results))
			for _, rec := range response.Results {
				movies = append(movies, tmdb.MovieFromRecord(rec, r.imageBaseURL, genres))
			}
			pages[page-1] = movies
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[models.MovieID]struct{}, trendingPages*moviesPerPage)
	merged := make([]models.Movie, 0, trendingPages*moviesPerPage)
	for _, page := range pages {
		for _, movie := range page {
			if _, ok := seen[movie.ID]; ok {
				continue
			}
			seen[movie.ID] = struct{}{}
			merged = append(merged, movie)
		}
	}
	return merged, nil
}

// MovieDetails fetches and maps details for a single movie. A non-numeric
// raw id fails with ErrInvalidMovieID before any request is made.
func (r *TMDBMovieRepository) MovieDetails(ctx context.Context, id models.MovieID) (*models.MovieDetails, error) {
	tmdbID, err := strconv.Atoi(id.RawID())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMovieID, id)
	}

	record, err := r.api.MovieDetails(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	details := tmdb.DetailsFromRecord(*record, r.imageBaseURL, r.imdbBaseURL)
	return &details, nil
}

// IsTrendingStale always reports false.
//
// TODO: trendingTTL is configured (see config.TMDBConfig.TrendingTTL) but
// not enforced here, which makes RefreshIfStale a no-op in default wiring.
// Needs a product decision before wiring the timestamp check in.
func (r *TMDBMovieRepository) IsTrendingStale() bool {
	return false
}
