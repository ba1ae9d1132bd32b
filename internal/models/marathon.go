package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Marathon is a named, saved, ordered collection of movies
type Marathon struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Movies    []MovieRecord `json:"movies"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Clone returns a deep copy of the marathon
func (m Marathon) Clone() Marathon {
	c := m
	c.Movies = CloneMovies(m.Movies)
	return c
}

// TotalRuntime sums the known runtimes of the marathon's movies
func (m Marathon) TotalRuntime() int {
	return TotalRuntime(m.Movies)
}

// MarathonState is what observers of the current draft receive
type MarathonState struct {
	Movies       []MovieRecord `json:"movies"`
	MarathonMode bool          `json:"marathon_mode"`
}

// NormalizeName trims surrounding whitespace from a marathon name
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// nameKey returns the comparison key for marathon name uniqueness.
// Two names collide when their trimmed, case-folded forms are identical.
func nameKey(name string) string {
	// A Caser keeps state between calls, so one is built per use
	return cases.Fold().String(NormalizeName(name))
}

// SameName reports whether two marathon names collide
func SameName(a, b string) bool {
	return nameKey(a) == nameKey(b)
}
