package models

// FilterMovies keeps only the movies that carry every genre id in selected.
// An empty selection means "no filter": the input slice is returned as-is,
// same order, same elements.
func FilterMovies(movies []Movie, selected map[int]struct{}) []Movie {
	if len(selected) == 0 {
		return movies
	}

	filtered := make([]Movie, 0, len(movies))
	for _, movie := range movies {
		ids := make(map[int]struct{}, len(movie.Genres))
		for _, g := range movie.Genres {
			ids[g.ID] = struct{}{}
		}
		matches := true
		for id := range selected {
			if _, ok := ids[id]; !ok {
				matches = false
				break
			}
		}
		if matches {
			filtered = append(filtered, movie)
		}
	}
	return filtered
}
