package controller

import (
	"context"
	"log"
	"sync"

	"github.com/amro/movies/internal/models"
	"github.com/amro/movies/internal/repository"
)

// ListState is the state of the movie list screen. Exactly one of the three
// Status variants is populated: Loading carries nothing, Error carries
// ErrorMessage, Success carries everything else.
type ListState struct {
	Status Status

	// Movies is the filtered and sorted list to display.
	Movies []models.Movie
	// AvailableGenres are the unique genres of the full unfiltered fetch,
	// in first-seen order.
	AvailableGenres []models.Genre
	// SelectedGenres is the active genre filter.
	SelectedGenres map[int]struct{}
	SortField      models.SortField
	SortDirection  models.SortDirection
	IsRefreshing   bool

	ErrorMessage string
}

// ListController drives the movie list screen. It combines the repository's
// fetch result with the user's sort and filter preferences into a single
// consistent state and republishes it on every change to either side.
type ListController struct {
	repo   repository.MovieRepository
	logger *log.Logger

	mu            sync.Mutex
	sortField     models.SortField
	sortDirection models.SortDirection
	selected      map[int]struct{}
	isRefreshing  bool
	movies        []models.Movie
	loaded        bool
	err           error
	generation    int
	started       bool
	current       ListState
	subs          map[int]chan ListState
	nextSubID     int
}

// NewListController creates a list controller over the given repository.
func NewListController(repo repository.MovieRepository, logger *log.Logger) *ListController {
	if logger == nil {
		logger = log.Default()
	}
	return &ListController{
		repo:          repo,
		logger:        logger,
		sortField:     models.DefaultSortField,
		sortDirection: models.DefaultSortDirection,
		selected:      make(map[int]struct{}),
		current:       ListState{Status: StatusLoading},
		subs:          make(map[int]chan ListState),
	}
}

// Start kicks off the initial fetch. Exactly one fetch happens regardless of
// how often Start is called; the initial load does not count as a refresh.
func (c *ListController) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.fetch(ctx, gen)
}

// Refresh marks the state as refreshing and starts a new fetch cycle,
// superseding any fetch still in flight.
func (c *ListController) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.isRefreshing = true
	if c.err != nil {
		// A refresh out of an error state begins a fresh Loading cycle
		// rather than showing the stale error alongside the spinner.
		c.err = nil
		c.loaded = false
		c.movies = nil
	}
	c.publishLocked(c.recomputeLocked())
	c.mu.Unlock()

	c.fetch(ctx, gen)
}

// RefreshIfStale refreshes only when the repository reports stale data and
// the current state is Success. Otherwise it is a no-op with no emission.
func (c *ListController) RefreshIfStale(ctx context.Context) {
	c.mu.Lock()
	shouldRefresh := c.repo.IsTrendingStale() && c.current.Status == StatusSuccess
	c.mu.Unlock()

	if shouldRefresh {
		c.Refresh(ctx)
	}
}

// SetSortField changes the sort field and republishes the state.
func (c *ListController) SetSortField(field models.SortField) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortField = field
	c.publishLocked(c.recomputeLocked())
}

// SetSortDirection changes the sort direction and republishes the state.
func (c *ListController) SetSortDirection(direction models.SortDirection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortDirection = direction
	c.publishLocked(c.recomputeLocked())
}

// ToggleGenre adds the genre to the filter if absent and removes it if
// present.
func (c *ListController) ToggleGenre(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
	c.publishLocked(c.recomputeLocked())
}

// ClearFilters empties the genre selection.
func (c *ListController) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = make(map[int]struct{})
	c.publishLocked(c.recomputeLocked())
}

// State returns the current snapshot.
func (c *ListController) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registers a listener. The channel immediately replays the
// current state and then receives every published change. The returned
// cancel function must be called to release the subscription.
func (c *ListController) Subscribe() (<-chan ListState, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	ch := make(chan ListState, subscriberBuffer)
	ch <- c.current
	c.subs[id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// fetch runs one load cycle in the background. The result is dropped when a
// newer cycle has started since.
func (c *ListController) fetch(ctx context.Context, gen int) {
	go func() {
		movies, err := c.repo.TrendingMovies(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.generation {
			return
		}
		if err != nil {
			c.logger.Printf("trending fetch failed: %v", err)
			c.err = err
		} else {
			c.movies = movies
			c.err = nil
			c.loaded = true
		}
		// Reset before the cycle's final state is computed so Error is
		// never observed together with IsRefreshing=true.
		c.isRefreshing = false
		c.publishLocked(c.recomputeLocked())
	}()
}

func (c *ListController) recomputeLocked() ListState {
	if c.err != nil {
		return ListState{Status: StatusError, ErrorMessage: errorMessage(c.err)}
	}
	if !c.loaded {
		return ListState{Status: StatusLoading}
	}

	selected := make(map[int]struct{}, len(c.selected))
	for id := range c.selected {
		selected[id] = struct{}{}
	}

	visible := models.SortMovies(
		models.FilterMovies(c.movies, c.selected),
		c.sortField,
		c.sortDirection,
	)

	return ListState{
		Status:          StatusSuccess,
		Movies:          visible,
		AvailableGenres: availableGenres(c.movies),
		SelectedGenres:  selected,
		SortField:       c.sortField,
		SortDirection:   c.sortDirection,
		IsRefreshing:    c.isRefreshing,
	}
}

func (c *ListController) publishLocked(state ListState) {
	c.current = state
	for _, ch := range c.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

// availableGenres collects the unique genres across the full unfiltered
// list, keeping first-seen order.
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
