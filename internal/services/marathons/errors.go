package marathons

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrEmptyDraft         = errors.New("there are no movies in the current marathon to save")
	ErrDuplicateName      = errors.New("a marathon with this name already exists")
	ErrNotFound           = errors.New("marathon not found")
	ErrEmptyName          = errors.New("marathon name is required")
	ErrDuplicateMovie     = errors.New("marathon lists the same movie more than once")
	ErrStorageUnavailable = errors.New("marathon storage unavailable")
)

// NotFoundError represents a lookup of a marathon id that does not exist
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("marathon %q not found", e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateNameError represents a name colliding with an existing marathon
type DuplicateNameError struct {
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("a marathon named %q already exists, choose a different name", e.Name)
}

func (e DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}
