package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woozymasta/wkb/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, "0.0.0.0", cfg.Addr)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, int64(4<<20), cfg.MaxBodyBytes)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("addr: 127.0.0.1\nport: 9090\nmax_body_bytes: 1024\nattribution: test\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Addr)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, int64(1024), cfg.MaxBodyBytes)
	require.Equal(t, "test", cfg.Attribution)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [\n"), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
}
