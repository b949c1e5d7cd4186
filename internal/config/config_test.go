package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sidquark/minikv/internal/config"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{
		config.EnvDataFile,
		config.EnvBuckets,
		config.EnvAutoLoad,
		config.EnvLogLevel,
		config.EnvLogFormat,
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvDataFile, "/tmp/data.kv")
	t.Setenv(config.EnvBuckets, "64")
	t.Setenv(config.EnvAutoLoad, "false")
	t.Setenv(config.EnvLogLevel, "debug")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	require.Equal(t, "/tmp/data.kv", cfg.DataFile)
	require.Equal(t, 64, cfg.NumBuckets)
	require.False(t, cfg.AutoLoad)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "console", cfg.LogFormat)
}

func TestFromEnv_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvBuckets, "zero")

	_, err := config.FromEnv()
	require.Error(t, err)

	t.Setenv(config.EnvBuckets, "")
	t.Setenv(config.EnvAutoLoad, "maybe")
	_, err = config.FromEnv()
	require.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "minikv.env")
	require.NoError(t, os.WriteFile(path, []byte("MINIKV_DATA_FILE=from-file.kv\nMINIKV_LOG_FORMAT=json\n"), 0644))

	// Real environment wins over the file
	t.Setenv(config.EnvLogFormat, "console")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-file.kv", cfg.DataFile)
	require.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}
