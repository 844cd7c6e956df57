package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", ""} {
		log, err := New(level, "text", "stderr")
		require.NoError(t, err, "level %q", level)
		require.NotNil(t, log)
	}

	_, err := New("verbose", "text", "stderr")
	assert.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "irondb.log")
	log, err := New("info", "json", path)
	require.NoError(t, err)

	log.Infow("buffer pool started", "frames", 64)
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "buffer pool started")
	assert.Contains(t, string(data), `"frames":64`)
}

func TestNamed(t *testing.T) {
	log, err := New("info", "text", "stderr")
	require.NoError(t, err)
	assert.NotNil(t, log.Named("pool"))
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Infow("dropped")
	require.NoError(t, log.Sync())
}
