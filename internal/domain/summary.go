// Package domain contains the core business entities for cinelog.
package domain

// NoGenre is the sentinel reported as the most-watched genre when the
// catalog is empty.
const NoGenre = "none"

// Summary holds the aggregate statistics computed over the catalog.
// It is derived data and never persisted.
type Summary struct {
	// AverageByGenre maps each genre to the mean rating of its movies,
	// rounded to two decimal places.
	AverageByGenre map[string]float64 `json:"average_by_genre"`

	// MostWatchedGenre is the genre with the most entries. Ties are
	// broken by first appearance in catalog order. NoGenre when empty.
	MostWatchedGenre string `json:"most_watched_genre"`

	// TopRated is the highest-rated movie, first-encountered on ties.
	// Nil when the catalog is empty.
	TopRated *Movie `json:"top_rated,omitempty"`
}
