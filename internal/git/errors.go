package git

import (
	"errors"
	"fmt"
)

// ErrNotARepository is returned when a path is not inside a git repository.
var ErrNotARepository = errors.New("not a git repository")

// InvalidRevisionError is returned when a revision cannot be resolved.
type InvalidRevisionError struct {
	Revision string
	Message  string
}

func (e *InvalidRevisionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("invalid revision %q", e.Revision)
	}
	return fmt.Sprintf("invalid revision %q: %s", e.Revision, e.Message)
}

// FileNotFoundError is returned when a path does not exist at a revision.
type FileNotFoundError struct {
	Path     string
	Revision string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %q does not exist at revision %q", e.Path, e.Revision)
}

// SpawnError is returned when the git process could not be started at all,
// as opposed to running and exiting non-zero.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
