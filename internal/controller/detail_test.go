package controller_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amro/movies/internal/controller"
	"github.com/amro/movies/internal/models"
)

func detailsFixture(title string) *models.MovieDetails {
	return &models.MovieDetails{
		Movie: models.Movie{
			ID:    models.TMDBID(123),
			Title: title,
		},
		VoteAverage: 8.5,
		VoteCount:   100,
		Status:      "Released",
	}
}

func awaitDetail(t *testing.T, ch <-chan controller.DetailState) controller.DetailState {
	t.Helper()
	select {
	case state := <-ch:
		return state
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for detail state")
		return controller.DetailState{}
	}
}

func awaitDetailStatus(t *testing.T, ch <-chan controller.DetailState, status controller.Status) controller.DetailState {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case state := <-ch:
			if state.Status == status {
				return state
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v state", status)
			return controller.DetailState{}
		}
	}
}

func TestDetailControllerSuccess(t *testing.T) {
	repo := &fakeRepo{detailsFn: func(ctx context.Context, id models.MovieID) (*models.MovieDetails, error) {
		assert.Equal(t, models.TMDBID(123), id)
		return detailsFixture("Test Movie"), nil
	}}
	c := controller.NewDetailController(repo, models.TMDBID(123), testLogger())
	ch, cancel := c.Subscribe()
	defer cancel()

	assert.Equal(t, controller.StatusLoading, awaitDetail(t, ch).Status)

	c.Start(context.Background())

	state := awaitDetailStatus(t, ch, controller.StatusSuccess)
	require.NotNil(t, state.Details)
	assert.Equal(t, "Test Movie", state.Details.Movie.Title)
	assert.Empty(t, state.ErrorMessage)
}

func TestDetailControllerStartFetchesExactlyOnce(t *testing.T) {
	repo := &fakeRepo{detailsFn: func(context.Context, models.MovieID) (*models.MovieDetails, error) {
		return detailsFixture("Once"), nil
	}}
	c := controller.NewDetailController(repo, models.TMDBID(1), testLogger())
	ch, cancel := c.Subscribe()
	defer cancel()

	c.Start(context.Background())
	c.Start(context.Background())

	awaitDetailStatus(t, ch, controller.StatusSuccess)
	time.Sleep(50 * time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 1, repo.detailsCalls)
}

func TestDetailControllerErrorThenRetry(t *testing.T) {
	var mu sync.Mutex
	failing := true

	repo := &fakeRepo{}
	repo.detailsFn = func(context.Context, models.MovieID) (*models.MovieDetails, error) {
		mu.Lock()
		defer mu.Unlock()
		if failing {
			return nil, errors.New("network down")
		}
		return detailsFixture("Recovered"), nil
	}

	c := controller.NewDetailController(repo, models.TMDBID(1), testLogger())
	ch, cancel := c.Subscribe()
	defer cancel()

	c.Start(context.Background())
	state := awaitDetailStatus(t, ch, controller.StatusError)
	assert.Equal(t, "network down", state.ErrorMessage)
	assert.Nil(t, state.Details)

	mu.Lock()
	failing = false
	mu.Unlock()

	c.Retry(context.Background())

	// Retry starts a fresh cycle from Loading.
	assert.Equal(t, controller.StatusLoading, awaitDetail(t, ch).Status)
	state = awaitDetailStatus(t, ch, controller.StatusSuccess)
	require.NotNil(t, state.Details)
	assert.Equal(t, "Recovered", state.Details.Movie.Title)
}

func TestDetailControllerRetrySupersedesInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	first := true

	repo := &fakeRepo{}
	repo.detailsFn = func(context.Context, models.MovieID) (*models.MovieDetails, error) {
		mu.Lock()
		isFirst := first
		first = false
		mu.Unlock()
		if isFirst {
			<-release
			return detailsFixture("Stale"), nil
		}
		return detailsFixture("Fresh"), nil
	}

	c := controller.NewDetailController(repo, models.TMDBID(1), testLogger())
	c.Start(context.Background())
	c.Retry(context.Background())

	ch, cancel := c.Subscribe()
	defer cancel()
	state := awaitDetailStatus(t, ch, controller.StatusSuccess)
	assert.Equal(t, "Fresh", state.Details.Movie.Title)

	// Completing the superseded fetch must not overwrite the newer result.
	close(release)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, "Fresh", c.State().Details.Movie.Title)
}
