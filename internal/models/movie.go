package models

// Genre represents a genre tag on a movie detail record.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie represents a movie from the catalog.
//
// List endpoints return a reduced projection (no genres or runtime); detail
// endpoints populate every field. PosterPath is nullable upstream and stays a
// pointer so "no poster" is distinguishable from an empty path.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	Genres      []Genre `json:"genres,omitempty"`
	Runtime     int     `json:"runtime,omitempty"`
}

// Page represents one page of a paginated catalog listing.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// EmptyPage returns the neutral page substituted when the catalog fails.
//
// The proxy endpoint echoes this with a 200 status instead of propagating
// source-side errors.
func EmptyPage() Page {
	return Page{Page: 1, Results: []Movie{}, TotalPages: 1, TotalResults: 0}
}
