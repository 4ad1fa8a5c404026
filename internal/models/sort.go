package models

import (
	"sort"
	"strings"
)

// SortMovies returns a new slice sorted by the given field and direction.
// The input is never modified.
//
// The ascending order is computed first with a stable sort and descending is
// its reversal. Release-date sorting keeps movies without a date after all
// dated movies in both directions: the undated block is split off before
// sorting and re-appended after the (possibly reversed) dated block.
func SortMovies(movies []Movie, field SortField, direction SortDirection) []Movie {
	if field == SortByReleaseDate {
		return sortByReleaseDate(movies, direction)
	}

	sorted := make([]Movie, len(movies))
	copy(sorted, movies)

	switch field {
	case SortByTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Popularity < sorted[j].Popularity
		})
	}

	if direction == SortDescending {
		reverse(sorted)
	}
	return sorted
}

func sortByReleaseDate(movies []Movie, direction SortDirection) []Movie {
	dated := make([]Movie, 0, len(movies))
	undated := make([]Movie, 0)
	for _, m := range movies {
		if m.ReleaseDate != nil {
			dated = append(dated, m)
		} else {
			undated = append(undated, m)
		}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].ReleaseDate.Before(*dated[j].ReleaseDate)
	})
	if direction == SortDescending {
		reverse(dated)
	}

	return append(dated, undated...)
}

func reverse(movies []Movie) {
	for i, j := 0, len(movies)-1; i < j; i, j = i+1, j-1 {
		movies[i], movies[j] = movies[j], movies[i]
	}
}
