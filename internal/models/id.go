package models

import (
	"strconv"
	"strings"
)

// Provider identifies the external data source a movie id originated from.
type Provider string

const (
	ProviderTMDB    Provider = "tmdb"
	ProviderIMDB    Provider = "imdb"
	ProviderUnknown Provider = "unknown"
)

const (
	prefixTMDB = "tmdb:"
	prefixIMDB = "imdb:"
)

// MovieID is a provider-aware movie identifier encoded as "<provider>:<rawid>".
// Keeping the provider in the id lets the domain layer handle movies from
// multiple sources interchangeably. Parsing is total: an unrecognized prefix
// yields ProviderUnknown and the original string as raw id.
type MovieID string

// TMDBID builds a MovieID for a TMDB-sourced movie.
func TMDBID(id int) MovieID {
	return MovieID(prefixTMDB + strconv.Itoa(id))
}

// IMDBID builds a MovieID for an IMDB-sourced movie (e.g. "tt1234567").
func IMDBID(id string) MovieID {
	return MovieID(prefixIMDB + id)
}

// Provider reports which data source this id belongs to.
func (id MovieID) Provider() Provider {
	switch {
	case strings.HasPrefix(string(id), prefixTMDB):
		return ProviderTMDB
	case strings.HasPrefix(string(id), prefixIMDB):
		return ProviderIMDB
	default:
		return ProviderUnknown
	}
}

// RawID returns the per-provider identifier without the prefix. If the id
// contains no colon the full string is returned.
func (id MovieID) RawID() string {
	if i := strings.IndexByte(string(id), ':'); i >= 0 {
		return string(id)[i+1:]
	}
	return string(id)
}

func (id MovieID) String() string {
	return string(id)
}
