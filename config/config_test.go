package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.Storage.PageSize)
	assert.Equal(t, 64, cfg.Storage.PoolFrames)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "irondb.yaml")
	content := `storage:
  data_dir: /tmp/irondb
  page_size: 8192
  pool_frames: 32
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/irondb", cfg.Storage.DataDir)
	assert.Equal(t, 8192, cfg.Storage.PageSize)
	assert.Equal(t, 32, cfg.Storage.PoolFrames)
	assert.Equal(t, "debug", cfg.Log.Level)
	// unset keys keep their defaults
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Storage.PageSize = 0
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Storage.PoolFrames = -1
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Storage.DataDir = ""
	assert.Error(t, cfg.Validate())
}

func TestInitDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, InitDataDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent on an existing directory
	require.NoError(t, InitDataDir(dir))

	// rejects a plain file
	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	assert.Error(t, InitDataDir(file))
}

func TestCreateDefaultConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "irondb.yaml")
	require.NoError(t, CreateDefaultConfig(path, filepath.Join(dir, "data")))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "data")), cfg.Storage.DataDir)
}
