package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFileFlushesBufferedOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	Printf("before file: %d", 1)
	require.NoError(t, SetFile(path))
	Printf("after file: %d", 2)
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before file: 1")
	assert.Contains(t, string(data), "after file: 2")
}

func TestSetFileEmptyPathDiscards(t *testing.T) {
	require.NoError(t, SetFile(""))
	Printf("dropped")
	assert.NoError(t, Close())
}

func TestSetFileUnwritablePath(t *testing.T) {
	err := SetFile("/nonexistent-dir-for-test/debug.log")
	assert.Error(t, err)
}
