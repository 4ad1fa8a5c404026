package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieIDProvider(t *testing.T) {
	tests := []struct {
		id       MovieID
		provider Provider
		rawID    string
	}{
		{TMDBID(123), ProviderTMDB, "123"},
		{IMDBID("tt1234567"), ProviderIMDB, "tt1234567"},
		{MovieID("tmdb:42"), ProviderTMDB, "42"},
		{MovieID("imdb:tt0000001"), ProviderIMDB, "tt0000001"},
		{MovieID("trakt:99"), ProviderUnknown, "99"},
		{MovieID("no-prefix-at-all"), ProviderUnknown, "no-prefix-at-all"},
		{MovieID(""), ProviderUnknown, ""},
	}

	for _, tc := range tests {
		t.Run(string(tc.id), func(t *testing.T) {
			assert.Equal(t, tc.provider, tc.id.Provider())
			assert.Equal(t, tc.rawID, tc.id.RawID())
		})
	}
}

func TestMovieIDValueSemantics(t *testing.T) {
	assert.Equal(t, TMDBID(123), MovieID("tmdb:123"))

	// MovieID must be usable as a map key with value-based hashing.
	seen := map[MovieID]int{}
	seen[TMDBID(1)]++
	seen[MovieID("tmdb:1")]++
	assert.Equal(t, 2, seen[TMDBID(1)])
}
