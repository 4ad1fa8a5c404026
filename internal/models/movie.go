package models

import "time"

// Genre represents a movie genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie represents a single trending movie, provider-agnostic and ready for
// display. Instances are never mutated after construction.
type Movie struct {
	ID          MovieID    `json:"id"`
	Title       string     `json:"title"`
	Overview    string     `json:"overview"`
	PosterURL   string     `json:"posterUrl"`
	Genres      []Genre    `json:"genres"`
	ReleaseDate *time.Time `json:"releaseDate"`
	Popularity  float64    `json:"popularity"`
}

// MovieDetails wraps a Movie with the extra fields shown on the detail
// screen. Budget and Revenue of exactly 0 mean "not available" to display
// layers; the zero is stored as-is here.
type MovieDetails struct {
	Movie       Movie          `json:"movie"`
	Tagline     *string        `json:"tagline"`
	BackdropURL *string        `json:"backdropUrl"`
	VoteAverage float64        `json:"voteAverage"`
	VoteCount   int            `json:"voteCount"`
	Budget      int64          `json:"budget"`
	Revenue     int64          `json:"revenue"`
	Status      string         `json:"status"`
	IMDBURL     *string        `json:"imdbUrl"`
	Runtime     *time.Duration `json:"runtime"`
}

// SortField selects which movie attribute a sort operates on.
type SortField string

const (
	SortByTitle       SortField = "title"
	SortByReleaseDate SortField = "releaseDate"
	SortByPopularity  SortField = "popularity"
)

// SortDirection selects the order of a sort.
type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

// Defaults applied by the list screen before the user picks anything.
const (
	DefaultSortField     = SortByPopularity
	DefaultSortDirection = SortDescending
)
