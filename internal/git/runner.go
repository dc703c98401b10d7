// Package git wraps git subprocess invocations and revision queries for lazystatus.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/chmouel/lazystatus/internal/log"
)

// DefaultTimeout bounds a single git invocation. A hung subprocess otherwise
// stalls its message forever; callers can widen this through config.
const DefaultTimeout = 10 * time.Second

// Options carries per-invocation settings.
type Options struct {
	// Dir is the working directory for the invocation. Empty means the
	// process inherits the current directory.
	Dir string
}

// runStrategy executes a prepared command and returns captured stdout and
// stderr. Both strategies must have released all descriptors and reaped the
// process before returning.
type runStrategy func(cmd *exec.Cmd) (stdout, stderr string, err error)

// Runner executes git with an explicit argument vector, never a shell.
// Each invocation owns its output buffers; a Runner is safe for concurrent
// use.
type Runner struct {
	timeout time.Duration
	run     runStrategy
}

// NewRunner returns a Runner using the buffered execution strategy.
// A timeout of zero falls back to DefaultTimeout.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{timeout: timeout, run: runBuffered}
}

// UsePipeStrategy switches the runner to the manual pipe execution path,
// which drains stdout and stderr incrementally as chunks arrive.
func (r *Runner) UsePipeStrategy() {
	r.run = runPiped
}

// Execute runs git with args and returns captured stdout on exit code zero.
// A non-zero exit yields an error carrying trimmed stderr, or a generic
// failure message when stderr is empty. A process that could not be started
// yields a SpawnError.
func (r *Runner) Execute(ctx context.Context, args []string, opts Options) (string, error) {
	if len(args) == 0 {
		return "", errors.New("no git arguments provided")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	log.Printf("run: git %s (cwd=%s)", strings.Join(args, " "), opts.Dir)

	// #nosec G204 -- arguments come from internal logic and are not shell interpolated
	cmd := exec.CommandContext(ctx, "git", args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	stdout, stderr, err := r.run(cmd)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr)
			if msg == "" {
				msg = fmt.Sprintf("git exited with code %d", exitErr.ExitCode())
			}
			log.Printf("error: git %s: %s", strings.Join(args, " "), msg)
			return "", errors.New(msg)
		}
		log.Printf("error: git %s: spawn: %v", strings.Join(args, " "), err)
		return "", &SpawnError{Name: "git", Err: err}
	}

	return stdout, nil
}

// Do returns a tea.Cmd running the invocation asynchronously. bubbletea runs
// the Cmd in its own goroutine and delivers the wrapped message exactly once
// on the program's update loop, so no caller blocks and no result arrives
// outside the single-threaded context.
func (r *Runner) Do(ctx context.Context, args []string, opts Options, wrap func(out string, err error) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		out, err := r.Execute(ctx, args, opts)
		return wrap(out, err)
	}
}

func runBuffered(cmd *exec.Cmd) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func runPiped(cmd *exec.Cmd) (string, string, error) {
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return "", "", err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", err
	}
	if err := cmd.Start(); err != nil {
		return "", "", err
	}

	var stdout, stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go drain(&stdout, stdoutPipe, &wg)
	go drain(&stderr, stderrPipe, &wg)

	// Both pipes must be fully drained before Wait closes them; Wait then
	// reaps the process, so nothing leaks even on failure.
	wg.Wait()
	err = cmd.Wait()
	return stdout.String(), stderr.String(), err
}

func drain(dst *bytes.Buffer, src io.Reader, wg *sync.WaitGroup) {
	defer wg.Done()
	buf := make([]byte, 32*1024)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			dst.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}
