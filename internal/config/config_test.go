package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 20, c.Solver.Top)
	assert.Equal(t, "auto", c.Solver.TableMode)
	assert.Equal(t, 6000, c.Solver.TableThreshold)
	assert.Equal(t, ":8080", c.Server.Addr)
}

func TestLoadOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wdl.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[dictionary]
path = "words.json"
count = 500

[solver]
table_mode = "direct"
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "words.json", c.Dictionary.Path)
	assert.Equal(t, 500, c.Dictionary.Count)
	assert.Equal(t, "direct", c.Solver.TableMode)
	// untouched keys keep their defaults
	assert.Equal(t, 20, c.Solver.Top)
	assert.Equal(t, ":8080", c.Server.Addr)
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[solver\ntop = 3"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	c := Default()
	c.Solver.Workers = 3
	c.Solver.TableCache = "pairs.msgpack"
	path := filepath.Join(t.TempDir(), "wdl.toml")
	require.NoError(t, Save(c, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"WDL_DICT":       "other.txt",
		"WDL_TOP":        "5",
		"WDL_WORKERS":    "2",
		"WDL_TABLE_MODE": "table",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	c := Default()
	require.NoError(t, c.ApplyEnv(lookup))
	assert.Equal(t, "other.txt", c.Dictionary.Path)
	assert.Equal(t, 5, c.Solver.Top)
	assert.Equal(t, 2, c.Solver.Workers)
	assert.Equal(t, "table", c.Solver.TableMode)
	assert.Equal(t, ":8080", c.Server.Addr)

	env["WDL_TOP"] = "many"
	assert.ErrorIs(t, Default().ApplyEnv(lookup), ErrInvalidConfig)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WDL_ADDR=:9999\n"), 0o644))
	t.Setenv("WDL_ADDR", "")
	os.Unsetenv("WDL_ADDR")

	c := Default()
	require.NoError(t, c.LoadEnv(path))
	assert.Equal(t, ":9999", c.Server.Addr)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"mode":    func(c *Config) { c.Solver.TableMode = "sometimes" },
		"format":  func(c *Config) { c.Dictionary.Format = "csv" },
		"level":   func(c *Config) { c.Log.Level = "loud" },
		"workers": func(c *Config) { c.Solver.Workers = -1 },
		"top":     func(c *Config) { c.Solver.Top = -2 },
		"path":    func(c *Config) { c.Dictionary.Path = "" },
	} {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}
