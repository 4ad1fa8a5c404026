package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amro/movies/internal/models"
	"github.com/amro/movies/internal/repository"
	"github.com/amro/movies/internal/tmdb"
)

// MovieHandler serves the trending list and movie details as JSON
type MovieHandler struct {
	repo   repository.MovieRepository
	logger *log.Logger
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(repo repository.MovieRepository, logger *log.Logger) *MovieHandler {
	return &MovieHandler{
		repo:   repo,
		logger: logger,
	}
}

type trendingResponse struct {
	Movies          []models.Movie       `json:"movies"`
	AvailableGenres []models.Genre       `json:"availableGenres"`
	SelectedGenres  []int                `json:"selectedGenres"`
	SortField       models.SortField     `json:"sortField"`
	SortDirection   models.SortDirection `json:"sortDirection"`
}

// Trending handles GET /api/movies/trending
//
// Query parameters: sort (title|releaseDate|popularity), direction
// (ascending|descending), genres (comma-separated genre ids, all of which a
// movie must carry).
func (h *MovieHandler) Trending(w http.ResponseWriter, r *http.Request) {
	field, direction, selected, err := parseListParams(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	movies, err := h.repo.TrendingMovies(r.Context())
	if err != nil {
		h.logger.Printf("Failed to fetch trending movies: %v", err)
		http.Error(w, `{"error":"Failed to fetch trending movies"}`, http.StatusBadGateway)
		return
	}

	visible := models.SortMovies(models.FilterMovies(movies, selected), field, direction)

	selectedIDs := make([]int, 0, len(selected))
	for id := range selected {
		selectedIDs = append(selectedIDs, id)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trendingResponse{
		Movies:          visible,
		AvailableGenres: availableGenres(movies),
		SelectedGenres:  selectedIDs,
		SortField:       field,
		SortDirection:   direction,
	})
}

// Details handles GET /api/movies/{id}
//
// The id may be a bare numeric TMDB id or a provider-prefixed identifier
// such as "tmdb:27205".
func (h *MovieHandler) Details(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")

	var movieID models.MovieID
	if n, err := strconv.Atoi(idStr); err == nil {
		movieID = models.TMDBID(n)
	} else {
		movieID = models.MovieID(idStr)
	}

	details, err := h.repo.MovieDetails(r.Context(), movieID)
	switch {
	case errors.Is(err, repository.ErrInvalidMovieID):
		http.Error(w, `{"error":"Invalid movie ID"}`, http.StatusBadRequest)
		return
	case errors.Is(err, tmdb.ErrNotFound):
		http.Error(w, `{"error":"Movie not found"}`, http.StatusNotFound)
		return
	case err != nil:
		h.logger.Printf("Failed to fetch movie details: %v", err)
		http.Error(w, `{"error":"Failed to fetch movie details"}`, http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

func parseListParams(values url.Values) (models.SortField, models.SortDirection, map[int]struct{}, error) {
	field := models.DefaultSortField
	switch values.Get("sort") {
	case "":
	case string(models.SortByTitle):
		field = models.SortByTitle
	case string(models.SortByReleaseDate):
		field = models.SortByReleaseDate
	case string(models.SortByPopularity):
		field = models.SortByPopularity
	default:
		return "", "", nil, fmt.Errorf("invalid sort field %q", values.Get("sort"))
	}

	direction := models.DefaultSortDirection
	switch values.Get("direction") {
	case "":
	case string(models.SortAscending), "asc":
		direction = models.SortAscending
	case string(models.SortDescending), "desc":
		direction = models.SortDescending
	default:
		return "", "", nil, fmt.Errorf("invalid sort direction %q", values.Get("direction"))
	}

	selected := make(map[int]struct{})
	if raw := values.Get("genres"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return "", "", nil, fmt.Errorf("invalid genre id %q", part)
			}
			selected[id] = struct{}{}
		}
	}

	return field, direction, selected, nil
}

// availableGenres collects the unique genres of the unfiltered list in
// first-seen order.
func availableGenres(movies []models.Movie) []models.Genre {
	seen := make(map[int]struct{})
	genres := make([]models.Genre, 0)
	for _, movie := range movies {
		for _, g := range movie.Genres {
			if _, ok := seen[g.ID]; ok {
				continue
			}
			seen[g.ID] = struct{}{}
			genres = append(genres, g)
		}
	}
	return genres
}
