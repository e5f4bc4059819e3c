/*
Package config manages the TOML configuration of the wdl command.

Values are resolved in order: built-in defaults, the TOML file, a .env file
and the process environment, then command line flags (applied by the caller).
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/powellquiring/wordle-entropy/internal/logger"
	"github.com/powellquiring/wordle-entropy/wordle"
	"github.com/powellquiring/wordle-entropy/wordsource"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the entire config structure
type Config struct {
	Dictionary DictionaryConfig `toml:"dictionary"`
	Solver     SolverConfig     `toml:"solver"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
}

type DictionaryConfig struct {
	Path   string `toml:"path"`
	Format string `toml:"format"` // text, trie, or empty to detect from the extension
	Count  int    `toml:"count"`  // 0 keeps every word
}

type SolverConfig struct {
	Workers        int    `toml:"workers"` // 0 is one per CPU
	Top            int    `toml:"top"`
	TableMode      string `toml:"table_mode"`
	TableThreshold int    `toml:"table_threshold"`
	TableCache     string `toml:"table_cache"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Dictionary: DictionaryConfig{
			Path: "dict.txt",
		},
		Solver: SolverConfig{
			Top:            wordle.DefaultTop,
			TableMode:      string(wordle.TableAuto),
			TableThreshold: wordle.DefaultTableThreshold,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load decodes path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return config, nil
}

// Save writes the config as TOML.
func Save(config *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(config)
}

// LoadEnv reads an optional .env file into the process environment and then
// applies the WDL_* variables. Variables already set in the environment win
// over the .env file.
func (c *Config) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	return c.ApplyEnv(os.LookupEnv)
}

// ApplyEnv overrides fields from the WDL_* variables returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"WDL_DICT":        &c.Dictionary.Path,
		"WDL_DICT_FORMAT": &c.Dictionary.Format,
		"WDL_TABLE_MODE":  &c.Solver.TableMode,
		"WDL_TABLE_CACHE": &c.Solver.TableCache,
		"WDL_ADDR":        &c.Server.Addr,
		"WDL_LOG_LEVEL":   &c.Log.Level,
	}
	for k, p := range strs {
		if v, ok := lookup(k); ok {
			*p = v
		}
	}
	ints := map[string]*int{
		"WDL_COUNT":   &c.Dictionary.Count,
		"WDL_WORKERS": &c.Solver.Workers,
		"WDL_TOP":     &c.Solver.Top,
	}
	for k, p := range ints {
		v, ok := lookup(k)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", k, v, ErrInvalidConfig)
		}
		*p = n
	}
	return nil
}

// Validate rejects unknown modes and negative sizes.
func (c *Config) Validate() error {
	if c.Dictionary.Path == "" {
		return fmt.Errorf("dictionary.path is empty: %w", ErrInvalidConfig)
	}
	if c.Dictionary.Format != "" {
		if _, err := wordsource.ParseFormat(c.Dictionary.Format); err != nil {
			return fmt.Errorf("dictionary.format: %w: %w", err, ErrInvalidConfig)
		}
	}
	if _, err := wordle.ParseTableMode(c.Solver.TableMode); err != nil {
		return fmt.Errorf("solver.table_mode: %w: %w", err, ErrInvalidConfig)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w: %w", err, ErrInvalidConfig)
	}
	for name, v := range map[string]int{
		"dictionary.count":       c.Dictionary.Count,
		"solver.workers":         c.Solver.Workers,
		"solver.top":             c.Solver.Top,
		"solver.table_threshold": c.Solver.TableThreshold,
	} {
		if v < 0 {
			return fmt.Errorf("%s is %d: %w", name, v, ErrInvalidConfig)
		}
	}
	return nil
}
