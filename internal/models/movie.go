package models

import (
	"slices"
	"time"
)

// MovieRecord is a single movie entry of a draft or a saved marathon
type MovieRecord struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path"`
	VoteAverage float64   `json:"vote_average"`
	ReleaseDate string    `json:"release_date"` // ISO date, may be empty
	GenreIDs    []int     `json:"genre_ids"`
	Overview    string    `json:"overview"`
	Runtime     int       `json:"runtime"` // Minutes, 0 = unknown
	Popularity  float64   `json:"popularity"`
	AddedAt     time.Time `json:"addedAt"`
}

// IsComplete reports whether the record carries runtime, release date and genres.
// Incomplete records are sent through enrichment when added to a draft.
func (m MovieRecord) IsComplete() bool {
	return m.Runtime > 0 && m.ReleaseDate != "" && len(m.GenreIDs) > 0
}

// Clone returns a deep copy of the record
func (m MovieRecord) Clone() MovieRecord {
	c := m
	if m.GenreIDs != nil {
		c.GenreIDs = slices.Clone(m.GenreIDs)
	}
	return c
}

// Equal compares every field, timestamps by instant
func (m MovieRecord) Equal(o MovieRecord) bool {
	return m.ID == o.ID &&
		m.Title == o.Title &&
		m.PosterPath == o.PosterPath &&
		m.VoteAverage == o.VoteAverage &&
		m.ReleaseDate == o.ReleaseDate &&
		slices.Equal(m.GenreIDs, o.GenreIDs) &&
		m.Overview == o.Overview &&
		m.Runtime == o.Runtime &&
		m.Popularity == o.Popularity &&
		m.AddedAt.Equal(o.AddedAt)
}

// CloneMovies deep-copies a movie list. A nil input yields an empty, non-nil slice.
func CloneMovies(movies []MovieRecord) []MovieRecord {
	out := make([]MovieRecord, len(movies))
	for i, m := range movies {
		out[i] = m.Clone()
	}
	return out
}

// IndexOfMovie returns the position of the movie id in the list or -1
func IndexOfMovie(movies []MovieRecord, id int64) int {
	return slices.IndexFunc(movies, func(m MovieRecord) bool { return m.ID == id })
}

// DuplicateMovieID returns the first movie id that appears more than once
func DuplicateMovieID(movies []MovieRecord) (int64, bool) {
	seen := make(map[int64]struct{}, len(movies))
	for _, m := range movies {
		if _, ok := seen[m.ID]; ok {
			return m.ID, true
		}
		seen[m.ID] = struct{}{}
	}
	return 0, false
}
