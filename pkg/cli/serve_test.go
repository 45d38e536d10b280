package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getcalcd/calcd/pkg/config"
)

// changedSet fakes cobra's Flags().Changed for buildConfig tests.
func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestBuildConfigDefaults(t *testing.T) {
	t.Parallel()

	f := &serveFlags{host: config.DefaultHost, port: config.DefaultPort}
	cfg, err := buildConfig(f, changedSet())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestBuildConfigFlagOverrides(t *testing.T) {
	t.Parallel()

	f := &serveFlags{host: "127.0.0.1", port: 3000, logFormat: "json"}
	cfg, err := buildConfig(f, changedSet("host", "port", "log-format"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "json", cfg.Log.Format)

	// Untouched flags keep defaults.
	assert.Equal(t, config.DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestBuildConfigFileThenFlags(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "calcd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\nhost: 10.0.0.1\n"), 0o600))

	// Flags set explicitly win over file values; file wins over defaults.
	f := &serveFlags{configFile: path, port: 3000}
	cfg, err := buildConfig(f, changedSet("port"))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "10.0.0.1", cfg.Host)
}

func TestBuildConfigBadFile(t *testing.T) {
	t.Parallel()

	f := &serveFlags{configFile: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := buildConfig(f, changedSet())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrFileNotFound)
}
