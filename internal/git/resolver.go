package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Executor runs a git invocation and returns its captured stdout.
// *Runner is the production implementation; tests substitute stubs.
type Executor interface {
	Execute(ctx context.Context, args []string, opts Options) (string, error)
}

// Resolver answers repository root, revision, and historical content queries.
type Resolver struct {
	runner Executor
}

// NewResolver returns a Resolver backed by the given executor.
func NewResolver(runner Executor) *Resolver {
	return &Resolver{runner: runner}
}

// GitRoot resolves the repository top-level directory containing filePath.
// The query runs from the file's containing directory. The result is trimmed
// and forward-slash normalized. A path outside any repository yields
// ErrNotARepository.
func (r *Resolver) GitRoot(ctx context.Context, filePath string) (string, error) {
	out, err := r.runner.Execute(ctx, []string{"rev-parse", "--show-toplevel"}, Options{Dir: filepath.Dir(filePath)})
	if err != nil {
		var spawn *SpawnError
		if errors.As(err, &spawn) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s", ErrNotARepository, filePath)
	}
	return filepath.ToSlash(strings.TrimSpace(out)), nil
}

// RelativePath strips the gitRoot prefix from filePath. Both paths are
// normalized to absolute, forward-slash form first. A filePath that is not
// under gitRoot is an error; the caller owns that precondition.
func RelativePath(filePath, gitRoot string) (string, error) {
	absFile, err := filepath.Abs(filePath)
	if err != nil {
		return "", err
	}
	absRoot, err := filepath.Abs(gitRoot)
	if err != nil {
		return "", err
	}

	file := filepath.ToSlash(absFile)
	root := strings.TrimSuffix(filepath.ToSlash(absRoot), "/")
	if !strings.HasPrefix(file, root+"/") {
		return "", fmt.Errorf("path %q is not under repository root %q", filePath, gitRoot)
	}
	return strings.TrimPrefix(file, root+"/"), nil
}

// ResolveRevision resolves a revision reference (branch, tag, hash) to its
// canonical commit hash. Failures are reported as InvalidRevisionError naming
// the revision and the underlying git message.
func (r *Resolver) ResolveRevision(ctx context.Context, revision, gitRoot string) (string, error) {
	out, err := r.runner.Execute(ctx, []string{"rev-parse", "--verify", revision}, Options{Dir: gitRoot})
	if err != nil {
		var spawn *SpawnError
		if errors.As(err, &spawn) {
			return "", err
		}
		return "", &InvalidRevisionError{Revision: revision, Message: err.Error()}
	}
	return strings.TrimSpace(out), nil
}

// FileContent fetches relPath's content at revision, split into lines.
// Exactly one trailing empty element is dropped when the raw output ends in
// a newline; a genuine empty last line without a trailing newline is kept.
func (r *Resolver) FileContent(ctx context.Context, revision, gitRoot, relPath string) ([]string, error) {
	out, err := r.runner.Execute(ctx, []string{"show", revision + ":" + relPath}, Options{Dir: gitRoot})
	if err != nil {
		var spawn *SpawnError
		if errors.As(err, &spawn) {
			return nil, err
		}
		msg := err.Error()
		if strings.Contains(msg, "does not exist") || strings.Contains(msg, "exists on disk, but not in") {
			return nil, &FileNotFoundError{Path: relPath, Revision: revision}
		}
		return nil, err
	}

	lines := strings.Split(out, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

// GitRootCmd is the asynchronous form of GitRoot.
func (r *Resolver) GitRootCmd(ctx context.Context, filePath string, wrap func(root string, err error) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		root, err := r.GitRoot(ctx, filePath)
		return wrap(root, err)
	}
}

// ResolveRevisionCmd is the asynchronous form of ResolveRevision.
func (r *Resolver) ResolveRevisionCmd(ctx context.Context, revision, gitRoot string, wrap func(hash string, err error) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		hash, err := r.ResolveRevision(ctx, revision, gitRoot)
		return wrap(hash, err)
	}
}

// FileContentCmd is the asynchronous form of FileContent.
func (r *Resolver) FileContentCmd(ctx context.Context, revision, gitRoot, relPath string, wrap func(lines []string, err error) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		lines, err := r.FileContent(ctx, revision, gitRoot, relPath)
		return wrap(lines, err)
	}
}
