package marathons

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/killallgit/marathon-api/internal/models"
)

const (
	// MarathonsKey is the store key holding every saved marathon
	MarathonsKey = "movie_marathons"

	// DraftKey is the store key holding the current draft
	DraftKey = "current_marathon"

	formatVersion = 1
)

type marathonsEnvelope struct {
	Version   int               `json:"version"`
	Marathons []models.Marathon `json:"marathons"`
}

type draftEnvelope struct {
	Version int                  `json:"version"`
	Movies  []models.MovieRecord `json:"movies"`
}

func encodeMarathons(list []models.Marathon) ([]byte, error) {
	out := make([]models.Marathon, len(list))
	for i, m := range list {
		c := m.Clone()
		c.CreatedAt = c.CreatedAt.UTC()
		c.UpdatedAt = c.UpdatedAt.UTC()
		c.Movies = utcMovies(c.Movies)
		out[i] = c
	}
	return json.Marshal(marathonsEnvelope{Version: formatVersion, Marathons: out})
}

// decodeMarathons accepts the versioned envelope and the bare array layout
func decodeMarathons(data []byte) ([]models.Marathon, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []models.Marathon{}, nil
	}

	var list []models.Marathon
	if data[0] == '[' {
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode marathons: %w", err)
		}
	} else {
		var env marathonsEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode marathons: %w", err)
		}
		if env.Version > formatVersion {
			return nil, fmt.Errorf("decode marathons: unsupported version %d", env.Version)
		}
		list = env.Marathons
	}

	for i := range list {
		list[i].Movies = models.CloneMovies(list[i].Movies)
	}
	if list == nil {
		list = []models.Marathon{}
	}
	return list, nil
}

func encodeDraft(movies []models.MovieRecord) ([]byte, error) {
	return json.Marshal(draftEnvelope{Version: formatVersion, Movies: utcMovies(models.CloneMovies(movies))})
}

// decodeDraft accepts the versioned envelope and the bare array layout
func decodeDraft(data []byte) ([]models.MovieRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []models.MovieRecord{}, nil
	}

	var movies []models.MovieRecord
	if data[0] == '[' {
		if err := json.Unmarshal(data, &movies); err != nil {
			return nil, fmt.Errorf("decode draft: %w", err)
		}
	} else {
		var env draftEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode draft: %w", err)
		}
		if env.Version > formatVersion {
			return nil, fmt.Errorf("decode draft: unsupported version %d", env.Version)
		}
		movies = env.Movies
	}

	return models.CloneMovies(movies), nil
}

func utcMovies(movies []models.MovieRecord) []models.MovieRecord {
	for i := range movies {
		movies[i].AddedAt = movies[i].AddedAt.UTC()
	}
	return movies
}
