package git

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestExecuteSuccess(t *testing.T) {
	requireGit(t)
	r := NewRunner(0)

	out, err := r.Execute(context.Background(), []string{"version"}, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "git version")
}

func TestExecuteNonZeroExitCarriesStderr(t *testing.T) {
	requireGit(t)
	r := NewRunner(0)

	_, err := r.Execute(context.Background(), []string{"rev-parse", "--verify", "no-such-ref-xyz"}, Options{Dir: t.TempDir()})
	require.Error(t, err)
	// stderr is the error message, never an exit-status wrapper.
	assert.NotContains(t, err.Error(), "exit status")
}

func TestExecuteSpawnFailure(t *testing.T) {
	requireGit(t)
	r := NewRunner(0)

	_, err := r.Execute(context.Background(), []string{"version"}, Options{Dir: "/nonexistent-dir-for-test"})
	require.Error(t, err)

	var spawn *SpawnError
	assert.ErrorAs(t, err, &spawn)
}

func TestExecuteEmptyArgs(t *testing.T) {
	r := NewRunner(0)

	_, err := r.Execute(context.Background(), nil, Options{})
	require.Error(t, err)
}

func TestExecuteTimeout(t *testing.T) {
	requireGit(t)
	r := NewRunner(time.Nanosecond)

	_, err := r.Execute(context.Background(), []string{"version"}, Options{})
	require.Error(t, err)
}

func TestStrategiesProduceSameOutput(t *testing.T) {
	requireGit(t)

	buffered := NewRunner(0)
	piped := NewRunner(0)
	piped.UsePipeStrategy()

	outA, errA := buffered.Execute(context.Background(), []string{"version"}, Options{})
	outB, errB := piped.Execute(context.Background(), []string{"version"}, Options{})

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, outA, outB)
}

func TestPipedStrategyReportsExitError(t *testing.T) {
	requireGit(t)
	r := NewRunner(0)
	r.UsePipeStrategy()

	_, err := r.Execute(context.Background(), []string{"rev-parse", "--verify", "no-such-ref-xyz"}, Options{Dir: t.TempDir()})
	require.Error(t, err)

	var spawn *SpawnError
	assert.False(t, errors.As(err, &spawn), "exit failure must not be classified as spawn failure")
}

func TestDoDeliversExactlyOneMessage(t *testing.T) {
	requireGit(t)
	r := NewRunner(0)

	type doneMsg struct {
		out string
		err error
	}
	cmd := r.Do(context.Background(), []string{"version"}, Options{}, func(out string, err error) tea.Msg {
		return doneMsg{out: out, err: err}
	})

	msg := cmd()
	done, ok := msg.(doneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Contains(t, done.out, "git version")
}
