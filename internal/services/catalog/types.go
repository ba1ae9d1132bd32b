package catalog

import (
	"context"
	"time"

	"github.com/killallgit/marathon-api/internal/models"
)

// Lookup fetches full movie details by catalog id
type Lookup interface {
	GetMovieDetails(ctx context.Context, movieID int64) (*models.MovieRecord, error)
}

// Config holds configuration for the catalog client
type Config struct {
	BaseURL string // Default: https://api.themoviedb.org/3
	APIKey  string

	// Rate limiting
	RequestsPerMinute int // Default: 600
	BurstSize         int // Default: 10

	// HTTP configuration
	Timeout      time.Duration // Default: 10s
	MaxRetries   int           // Default: 3
	RetryBackoff time.Duration // Default: 1s
	UserAgent    string
}

// genre is one entry of the details endpoint's genres array
type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// movieDetails is the subset of the /movie/{id} response the engine keeps
type movieDetails struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	Genres      []genre `json:"genres"`
	GenreIDs    []int   `json:"genre_ids"`
	Overview    string  `json:"overview"`
	Runtime     *int    `json:"runtime"`
	Popularity  float64 `json:"popularity"`
}

// toRecord flattens the response into a MovieRecord. The details endpoint
// returns genre objects while search results carry bare ids.
func (d *movieDetails) toRecord() *models.MovieRecord {
	record := &models.MovieRecord{
		ID:          d.ID,
		Title:       d.Title,
		VoteAverage: d.VoteAverage,
		ReleaseDate: d.ReleaseDate,
		Overview:    d.Overview,
		Popularity:  d.Popularity,
		GenreIDs:    d.GenreIDs,
	}
	if d.PosterPath != nil {
		record.PosterPath = *d.PosterPath
	}
	if d.Runtime != nil {
		record.Runtime = *d.Runtime
	}
	if len(record.GenreIDs) == 0 && len(d.Genres) > 0 {
		record.GenreIDs = make([]int, 0, len(d.Genres))
		for _, g := range d.Genres {
			record.GenreIDs = append(record.GenreIDs, g.ID)
		}
	}
	return record
}
