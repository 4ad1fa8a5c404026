package tmdb

import (
	"encoding/json"
	"time"
)

// Date is a calendar date in the "2006-01-02" format TMDB serves. The API is
// known to return an empty string instead of null for unknown release dates;
// both decode to the zero Date rather than failing.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// TimePtr returns the date as *time.Time, nil for the zero Date.
func (d Date) TimePtr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// GenreRecord represents a genre entry from TMDB
type GenreRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListResponse struct {
	Genres []GenreRecord `json:"genres"`
}

// MovieRecord represents a movie as it appears in a trending page
type MovieRecord struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
	ReleaseDate Date    `json:"release_date"`
	Popularity  float64 `json:"popularity"`
}

// PagedResponse represents one page of trending results
type PagedResponse struct {
	Page         int           `json:"page"`
	Results      []MovieRecord `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// MovieDetailsRecord represents the full movie payload from GET /movie/{id}
type MovieDetailsRecord struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	Tagline      *string       `json:"tagline"`
	Overview     string        `json:"overview"`
	PosterPath   *string       `json:"poster_path"`
	BackdropPath *string       `json:"backdrop_path"`
	Genres       []GenreRecord `json:"genres"`
	ReleaseDate  Date          `json:"release_date"`
	Popularity   float64       `json:"popularity"`
	VoteAverage  float64       `json:"vote_average"`
	VoteCount    int           `json:"vote_count"`
	Budget       int64         `json:"budget"`
	Revenue      int64         `json:"revenue"`
	Status       string        `json:"status"`
	IMDBID       *string       `json:"imdb_id"`
	Runtime      *int          `json:"runtime"`
}
