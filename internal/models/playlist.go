package models

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// SortKey names a movie attribute a marathon can be ordered by
type SortKey string

const (
	SortByTitle       SortKey = "title"
	SortByReleaseDate SortKey = "release_date"
	SortByVoteAverage SortKey = "vote_average"
	SortByRuntime     SortKey = "runtime"
	SortByPopularity  SortKey = "popularity"
)

// SortOrder is either ascending or descending
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

var (
	// ErrInvalidSortKey is returned for an unknown sort attribute
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrInvalidSortOrder is returned for anything other than asc or desc
	ErrInvalidSortOrder = errors.New("invalid sort order")
)

// ParseSortKey validates a sort key coming from user input
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByTitle, SortByReleaseDate, SortByVoteAverage, SortByRuntime, SortByPopularity:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

// ParseSortOrder validates a sort order; empty means ascending
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortAsc, nil
	case SortAsc, SortDesc:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
	}
}

// SortMovies returns a sorted copy of movies. Ties keep their relative order.
// Movies without a release date sort as the earliest.
func SortMovies(movies []MovieRecord, key SortKey, order SortOrder) ([]MovieRecord, error) {
	var compare func(a, b MovieRecord) int
	switch key {
	case SortByTitle:
		compare = func(a, b MovieRecord) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortByReleaseDate:
		compare = func(a, b MovieRecord) int {
			return releaseTime(a).Compare(releaseTime(b))
		}
	case SortByVoteAverage:
		compare = func(a, b MovieRecord) int { return cmp.Compare(a.VoteAverage, b.VoteAverage) }
	case SortByRuntime:
		compare = func(a, b MovieRecord) int { return cmp.Compare(a.Runtime, b.Runtime) }
	case SortByPopularity:
		compare = func(a, b MovieRecord) int { return cmp.Compare(a.Popularity, b.Popularity) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, key)
	}

	if order == SortDesc {
		asc := compare
		compare = func(a, b MovieRecord) int { return asc(b, a) }
	} else if order != SortAsc && order != "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortOrder, order)
	}

	sorted := CloneMovies(movies)
	slices.SortStableFunc(sorted, compare)
	return sorted, nil
}

func releaseTime(m MovieRecord) time.Time {
	if m.ReleaseDate == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, m.ReleaseDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// MoveMovie swaps the movie at index with its neighbour delta positions away.
// Out-of-range moves leave the list unchanged.
func MoveMovie(movies []MovieRecord, index, delta int) []MovieRecord {
	out := CloneMovies(movies)
	target := index + delta
	if index < 0 || index >= len(out) || target < 0 || target >= len(out) {
		return out
	}
	out[index], out[target] = out[target], out[index]
	return out
}

// TotalRuntime sums runtimes in minutes, unknown runtimes count as zero
func TotalRuntime(movies []MovieRecord) int {
	total := 0
	for _, m := range movies {
		if m.Runtime > 0 {
			total += m.Runtime
		}
	}
	return total
}

// FormatDuration renders minutes as "2h 5m", or "45m" under an hour
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours, rest := minutes/60, minutes%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, rest)
	}
	return fmt.Sprintf("%dm", rest)
}
