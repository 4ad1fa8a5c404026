package tmdb

import (
	"time"

	"github.com/amro/movies/internal/models"
)

// unknownGenre is substituted for genre ids the cache cannot resolve.
const unknownGenre = "Unknown"

// MovieFromRecord converts a trending-page record into a domain Movie.
//
// The poster URL is plain concatenation of the image base URL and the
// record's poster path; an empty path yields the base URL alone, which the
// display layer tolerates. Genre ids missing from genreNames resolve to the
// literal name "Unknown".
func MovieFromRecord(rec MovieRecord, imageBaseURL string, genreNames map[int]string) models.Movie {
	genres := make([]models.Genre, 0, len(rec.GenreIDs))
	for _, id := range rec.GenreIDs {
		name, ok := genreNames[id]
		if !ok {
			name = unknownGenre
		}
		genres = append(genres, models.Genre{ID: id, Name: name})
	}

	return models.Movie{
		ID:          models.TMDBID(rec.ID),
		Title:       rec.Title,
		Overview:    rec.Overview,
		PosterURL:   imageBaseURL + rec.PosterPath,
		Genres:      genres,
		ReleaseDate: rec.ReleaseDate.TimePtr(),
		Popularity:  rec.Popularity,
	}
}

// DetailsFromRecord converts a movie-details record into domain
// MovieDetails. Backdrop URL, IMDB URL and runtime stay nil when the source
// field is nil.
func DetailsFromRecord(rec MovieDetailsRecord, imageBaseURL, imdbBaseURL string) models.MovieDetails {
	posterURL := ""
	if rec.PosterPath != nil {
		posterURL = imageBaseURL + *rec.PosterPath
	}

	genres := make([]models.Genre, 0, len(rec.Genres))
	for _, g := range rec.Genres {
		genres = append(genres, models.Genre{ID: g.ID, Name: g.Name})
	}

	movie := models.Movie{
		ID:          models.TMDBID(rec.ID),
		Title:       rec.Title,
		Overview:    rec.Overview,
		PosterURL:   posterURL,
		Genres:      genres,
		ReleaseDate: rec.ReleaseDate.TimePtr(),
		Popularity:  rec.Popularity,
	}

	var backdropURL *string
	if rec.BackdropPath != nil {
		u := imageBaseURL + *rec.BackdropPath
		backdropURL = &u
	}

	var imdbURL *string
	if rec.IMDBID != nil {
		u := imdbBaseURL + *rec.IMDBID
		imdbURL = &u
	}

	var runtime *time.Duration
	if rec.Runtime != nil {
		d := time.Duration(*rec.Runtime) * time.Minute
		runtime = &d
	}

	return models.MovieDetails{
		Movie:       movie,
		Tagline:     rec.Tagline,
		BackdropURL: backdropURL,
		VoteAverage: rec.VoteAverage,
		VoteCount:   rec.VoteCount,
		Budget:      rec.Budget,
		Revenue:     rec.Revenue,
		Status:      rec.Status,
		IMDBURL:     imdbURL,
		Runtime:     runtime,
	}
}
