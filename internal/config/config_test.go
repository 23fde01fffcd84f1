package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gocfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "in", cfg.Units)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, FileName), []byte("units: mm\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mm", cfg.Units)
	assert.Equal(t, Default().Export, cfg.Export)
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
store:
  in_memory: true
export:
  width_in: 10
  height_in: 10
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Store.InMemory)
	assert.Equal(t, 10.0, cfg.Export.WidthIn)
	assert.Equal(t, "in", cfg.Units)

	lc := cfg.Logging()
	assert.Equal(t, "debug", lc.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"bad level":   "log: {level: loud}\n",
		"bad format":  "log: {format: xml}\n",
		"bad export":  "export: {width_in: 0}\n",
		"empty store": "store: {path: \"\"}\n",
		"not yaml":    "log: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := ExpandHome("~/.gocfs/db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".gocfs", "db"), p)

	p, err = ExpandHome("/var/lib/gocfs")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/gocfs", p)

	cfg := Default()
	p, err = cfg.StorePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".gocfs", "db"), p)
}
