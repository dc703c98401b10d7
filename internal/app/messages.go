package app

import "github.com/chmouel/lazystatus/internal/models"

// gitRootMsg delivers the resolved repository root.
type gitRootMsg struct {
	root string
	err  error
}

// statusMsg delivers a fresh set of parsed status records.
type statusMsg struct {
	records []models.StatusFile
	err     error
}

// contentMsg delivers file content fetched at a revision. The id ties the
// message to the request that asked for it; the model discards stale ids so
// two in-flight fetches can never cross-deliver.
type contentMsg struct {
	id       int
	revision string
	path     string
	lines    []string
	err      error
}

// watchEventMsg signals filesystem activity under the git directory.
type watchEventMsg struct{}
