package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powellquiring/wordle-entropy/internal/config"
	"github.com/powellquiring/wordle-entropy/internal/logger"
	"github.com/powellquiring/wordle-entropy/tablefile"
	"github.com/powellquiring/wordle-entropy/wordle"
)

const dictText = "alloy\nllama\nspeed\nerase\ncrane\nraise\nabide\nabode\n"

func testConfiguration(t *testing.T, mode string) *GlobalConfiguration {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte(dictText), 0o644))
	c := config.Default()
	c.Dictionary.Path = path
	c.Solver.TableMode = mode
	c.Solver.TableCache = filepath.Join(dir, "pairs.msgpack")
	c.Solver.Top = 3
	require.NoError(t, c.Validate())
	return &GlobalConfiguration{config: c, log: logger.Discard()}
}

func TestScoreModesAgree(t *testing.T) {
	var table, direct bytes.Buffer
	require.NoError(t, score(context.Background(), testConfiguration(t, "table"), &table, ""))
	require.NoError(t, score(context.Background(), testConfiguration(t, "direct"), &direct, ""))
	assert.Equal(t, direct.String(), table.String())
	assert.Len(t, strings.Split(strings.TrimSpace(table.String()), "\n"), 3)
}

func TestScoreUsesTableCache(t *testing.T) {
	g := testConfiguration(t, "table")
	var first, second bytes.Buffer
	require.NoError(t, score(context.Background(), g, &first, ""))
	assert.FileExists(t, g.config.Solver.TableCache)
	require.NoError(t, score(context.Background(), g, &second, ""))
	assert.Equal(t, first.String(), second.String())
}

func TestScoreRebuildsCorruptTableCache(t *testing.T) {
	g := testConfiguration(t, "table")
	d, err := g.dictionary()
	require.NoError(t, err)
	zeros, err := wordle.NewPairTable(d.Len(), make([]uint8, d.Len()*d.Len()))
	require.NoError(t, err)
	require.NoError(t, tablefile.Save(g.config.Solver.TableCache, d, zeros))

	var cached, direct bytes.Buffer
	require.NoError(t, score(context.Background(), g, &cached, ""))
	require.NoError(t, score(context.Background(), testConfiguration(t, "direct"), &direct, ""))
	assert.Equal(t, direct.String(), cached.String())

	// the cache was replaced by a good table
	rebuilt, err := tablefile.Load(g.config.Solver.TableCache, d)
	require.NoError(t, err)
	assert.NoError(t, rebuilt.Verify(d))
}

func TestScorePrefix(t *testing.T) {
	var out bytes.Buffer
	g := testConfiguration(t, "direct")
	require.NoError(t, score(context.Background(), g, &out, "ab"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, " AB")
	}
	assert.Error(t, score(context.Background(), g, &out, "zz"))
}

func TestSimulate(t *testing.T) {
	var out bytes.Buffer
	g := testConfiguration(t, "table")
	require.NoError(t, simulate(context.Background(), g, &out, []string{"raise"}, []string{"alloy", "crane"}))
	assert.Contains(t, out.String(), "ALLOY: RAISE")
	assert.Contains(t, out.String(), "CRANE: RAISE")
	assert.Contains(t, out.String(), "over 2 games")

	assert.Error(t, simulate(context.Background(), g, &out, nil, []string{"zesty"}))
	assert.Error(t, simulate(context.Background(), g, &out, []string{"rai"}, nil))
}

func TestWriteConfig(t *testing.T) {
	g := testConfiguration(t, "direct")
	path := filepath.Join(t.TempDir(), "wdl.toml")
	require.NoError(t, writeConfig(g, path))
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, g.config, loaded)
}

func TestPlay(t *testing.T) {
	var out bytes.Buffer
	g := testConfiguration(t, "auto")
	require.NoError(t, playWordle(context.Background(), g, &out, []string{"raise", "ryrrr", "llama", "ygyrr"}))
	assert.Contains(t, out.String(), "1 possible: ALLOY")
	assert.Contains(t, out.String(), "next guess: ALLOY (possible answer)")

	err := playWordle(context.Background(), g, &out, []string{"zesty", "rrrrr"})
	assert.Error(t, err)
	err = playWordle(context.Background(), g, &out, []string{"raise", "rrxrr"})
	assert.Error(t, err)
}

func TestPatterns(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, patterns(context.Background(), testConfiguration(t, "direct"), &out, "raise"))
	assert.Contains(t, out.String(), "ryrrr  2")
	assert.Contains(t, out.String(), "ggggg  1")
}

func TestFeedback(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, feedback(&out, "speed", "erase"))
	assert.True(t, strings.HasSuffix(out.String(), "yrryy\n"))
	assert.Error(t, feedback(&out, "speedy", "erase"))
}

func TestBuildTable(t *testing.T) {
	g := testConfiguration(t, "table")
	path := filepath.Join(t.TempDir(), "out.msgpack")
	require.NoError(t, buildTable(context.Background(), g, path))
	assert.FileExists(t, path)
}

func TestFlatten(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "trie.json")
	out := filepath.Join(dir, "dict.txt")
	require.NoError(t, os.WriteFile(in, []byte(`{"c":{"r":{"a":{"n":{"e":true,"k":1}}}}}`), 0o644))
	require.NoError(t, flatten(in, out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "CRANE\nCRANK\n", string(data))
}
