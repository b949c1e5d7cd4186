package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sidquark/minikv/internal/config"
	"github.com/sidquark/minikv/internal/database"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
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

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	out, _, err := executeApp(t, stdin, args...)
	return out, err
}

func executeApp(t *testing.T, stdin string, args ...string) (string, *app, error) {
	t.Helper()

	root, a := newRootCommand()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "absent.env"), "--log-level", "disabled"))

	err := run(root, a)
	return out.String(), a, err
}

func TestRoot_OneShotCommands(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "data.kv")

	_, err := execute(t, "", "put", "--file", path, "name", "mini", "kv")
	require.NoError(t, err)

	_, err = execute(t, "", "put", "--file", path, "empty")
	require.NoError(t, err)

	out, err := execute(t, "", "get", "--file", path, "name")
	require.NoError(t, err)
	require.Equal(t, "mini kv\n", out)

	out, err = execute(t, "", "count", "--file", path)
	require.NoError(t, err)
	require.Equal(t, "2\n", out)

	out, err = execute(t, "", "list", "--file", path, "--asc")
	require.NoError(t, err)
	require.Contains(t, out, "empty = \nname = mini kv\n")

	_, err = execute(t, "", "del", "--file", path, "empty")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "name=mini kv\n", string(data))
}

func TestRoot_Errors(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "data.kv")

	_, err := execute(t, "", "put", "k", "v")
	require.ErrorIs(t, err, errNoDataFile)

	_, err = execute(t, "", "get", "--file", path, "missing")
	require.Error(t, err)

	_, err = execute(t, "", "del", "--file", path, "missing")
	require.Error(t, err)

	_, err = execute(t, "", "count", "--buckets", "0")
	require.Error(t, err)

	_, err = execute(t, "", "list", "--asc", "--desc")
	require.Error(t, err)
}

func TestRoot_DefaultsToShell(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "data.kv")
	require.NoError(t, os.WriteFile(path, []byte("a=1\n"), 0644))

	out, err := execute(t, "get a\nput b 2\ncount\nquit\n", "--file", path)
	require.NoError(t, err)
	require.Equal(t, "1\nOK\n2\n", out)
}

func TestRoot_EnvConfig(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "data.kv")
	require.NoError(t, os.WriteFile(path, []byte("from=env\n"), 0644))
	t.Setenv(config.EnvDataFile, path)

	out, err := execute(t, "", "get", "from")
	require.NoError(t, err)
	require.Equal(t, "env\n", out)

	out, err = execute(t, "", "count", "--autoload=false")
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
}

func TestRoot_UpdateWithoutAutoload(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "data.kv")
	require.NoError(t, os.WriteFile(path, []byte("a=1\nb=2\n"), 0644))

	_, err := execute(t, "", "put", "--file", path, "--autoload=false", "c", "3")
	require.NoError(t, err)

	_, err = execute(t, "", "del", "--file", path, "--autoload=false", "a")
	require.NoError(t, err)

	t.Setenv(config.EnvAutoLoad, "false")
	_, err = execute(t, "", "put", "--file", path, "d", "4")
	require.NoError(t, err)

	out, err := execute(t, "", "list", "--file", path, "--autoload=true", "--asc")
	require.NoError(t, err)
	require.Contains(t, out, "b = 2\nc = 3\nd = 4\n")
	require.NotContains(t, out, "a = 1")

	// A missing file still starts empty
	fresh := filepath.Join(t.TempDir(), "fresh.kv")
	_, err = execute(t, "", "put", "--file", fresh, "--autoload=false", "x", "1")
	require.NoError(t, err)

	data, err := os.ReadFile(fresh)
	require.NoError(t, err)
	require.Equal(t, "x=1\n", string(data))
}

func TestRoot_ClosesStoreOnFailure(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "data.kv")

	_, a, err := executeApp(t, "", "get", "--file", path, "missing")
	require.Error(t, err)
	require.NotNil(t, a.db)
	require.ErrorIs(t, a.db.Put("k", "v"), database.ErrDatabaseClosed)

	_, a, err = executeApp(t, "", "count", "--file", path)
	require.NoError(t, err)
	require.ErrorIs(t, a.db.Put("k", "v"), database.ErrDatabaseClosed)
}
