package controller

import (
	"context"
	"log"
	"sync"

	"github.com/amro/movies/internal/models"
	"github.com/amro/movies/internal/repository"
)

// DetailState is the state of the movie detail screen.
type DetailState struct {
	Status       Status
	Details      *models.MovieDetails
	ErrorMessage string
}

// DetailController drives the detail screen for one fixed movie id. Every
// Retry runs an independent Loading→(Success|Error) cycle; a newer retry
// supersedes the eventual emission of any fetch still in flight.
type DetailController struct {
	repo    repository.MovieRepository
	movieID models.MovieID
	logger  *log.Logger

	mu         sync.Mutex
	generation int
	started    bool
	current    DetailState
	subs       map[int]chan DetailState
	nextSubID  int
}

// NewDetailController creates a detail controller for the given movie.
func NewDetailController(repo repository.MovieRepository, movieID models.MovieID, logger *log.Logger) *DetailController {
	if logger == nil {
		logger = log.Default()
	}
	return &DetailController{
		repo:    repo,
		movieID: movieID,
		logger:  logger,
		current: DetailState{Status: StatusLoading},
		subs:    make(map[int]chan DetailState),
	}
}

// Start kicks off the initial fetch, once.
func (c *DetailController) Start(ctx context.Context) {
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

// Retry publishes Loading and runs exactly one new fetch cycle.
func (c *DetailController) Retry(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.publishLocked(DetailState{Status: StatusLoading})
	c.mu.Unlock()

	c.fetch(ctx, gen)
}

// State returns the current snapshot.
func (c *DetailController) State() DetailState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registers a listener; the channel replays the current state
// first. The cancel function releases the subscription.
func (c *DetailController) Subscribe() (<-chan DetailState, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	ch := make(chan DetailState, subscriberBuffer)
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

func (c *DetailController) fetch(ctx context.Context, gen int) {
	go func() {
		details, err := c.repo.MovieDetails(ctx, c.movieID)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.generation {
			return
		}
		if err != nil {
			c.logger.Printf("details fetch failed for %s: %v", c.movieID, err)
			c.publishLocked(DetailState{Status: StatusError, ErrorMessage: errorMessage(err)})
			return
		}
		c.publishLocked(DetailState{Status: StatusSuccess, Details: details})
	}()
}

func (c *DetailController) publishLocked(state DetailState) {
	c.current = state
	for _, ch := range c.subs {
		select {
		case ch <- state:
		default:
		}
	}
}
