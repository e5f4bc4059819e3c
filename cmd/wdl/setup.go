package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/powellquiring/wordle-entropy/internal/config"
	"github.com/powellquiring/wordle-entropy/internal/logger"
	"github.com/powellquiring/wordle-entropy/tablefile"
	"github.com/powellquiring/wordle-entropy/wordle"
	"github.com/powellquiring/wordle-entropy/wordsource"
)

// flagValues are the destinations of the global flags.
type flagValues struct {
	configPath string
	dict       string
	format     string
	count      int
	workers    int
	top        int
	mode       string
	tableCache string
	progress   bool
	profile    bool
	debug      bool
}

type GlobalConfiguration struct {
	config   *config.Config
	log      *log.Logger
	progress bool
}

// globalConfiguration resolves defaults, the config file, the environment
// and finally the flags the user set.
func globalConfiguration(cmd *cli.Command, fv *flagValues) (*GlobalConfiguration, error) {
	c, err := config.Load(fv.configPath)
	if err != nil {
		return nil, err
	}
	if err := c.LoadEnv(); err != nil {
		return nil, err
	}
	if cmd.IsSet("dict") {
		c.Dictionary.Path = fv.dict
	}
	if cmd.IsSet("format") {
		c.Dictionary.Format = fv.format
	}
	if cmd.IsSet("count") {
		c.Dictionary.Count = fv.count
	}
	if cmd.IsSet("workers") {
		c.Solver.Workers = fv.workers
	}
	if cmd.IsSet("top") {
		c.Solver.Top = fv.top
	}
	if cmd.IsSet("mode") {
		c.Solver.TableMode = fv.mode
	}
	if cmd.IsSet("table-cache") {
		c.Solver.TableCache = fv.tableCache
	}
	if fv.debug {
		c.Log.Level = "debug"
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	level, _ := logger.ParseLevel(c.Log.Level)
	return &GlobalConfiguration{
		config:   c,
		log:      logger.New("wdl", level),
		progress: fv.progress,
	}, nil
}

func (g *GlobalConfiguration) options(bar wordle.Progress) []wordle.Option {
	return []wordle.Option{
		wordle.WithWorkers(g.config.Solver.Workers),
		wordle.WithProgress(bar),
		wordle.WithLogger(g.log),
	}
}

func (g *GlobalConfiguration) bar(n int, description string) *progressbar.ProgressBar {
	if g.progress {
		return progressbar.Default(int64(n), description)
	}
	return progressbar.DefaultSilent(int64(n), description)
}

func (g *GlobalConfiguration) dictionary() (*wordle.Dictionary, error) {
	dc := g.config.Dictionary
	format, err := wordsource.ParseFormat(dc.Format)
	if err != nil {
		return nil, err
	}
	strs, err := wordsource.Load(dc.Path, format)
	if err != nil {
		return nil, err
	}
	d, err := wordle.NewDictionaryFromStrings(strs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dc.Path, err)
	}
	d = d.Truncate(dc.Count)
	g.log.Info("dictionary loaded", "path", dc.Path, "words", d.Len())
	return d, nil
}

// table loads the cached pair table when it matches d, otherwise builds it
// and refreshes the cache.
func (g *GlobalConfiguration) table(ctx context.Context, d *wordle.Dictionary) (*wordle.PairTable, error) {
	path := g.config.Solver.TableCache
	if path != "" {
		t, err := tablefile.Load(path, d)
		switch {
		case err == nil:
			g.log.Info("pair table loaded", "path", path)
			return t, nil
		case errors.Is(err, os.ErrNotExist):
		default:
			g.log.Warn("rebuilding pair table", "path", path, "err", err)
		}
	}
	t, err := wordle.BuildPairTable(ctx, d, g.options(g.bar(d.Len(), "pair table"))...)
	if err != nil {
		return nil, err
	}
	g.log.Info("pair table built", "words", d.Len())
	if path != "" {
		if err := tablefile.Save(path, d, t); err != nil {
			g.log.Warn("pair table not cached", "path", path, "err", err)
		}
	}
	return t, nil
}

func (g *GlobalConfiguration) scorer(ctx context.Context, d *wordle.Dictionary) (*wordle.Scorer, error) {
	mode, err := wordle.ParseTableMode(g.config.Solver.TableMode)
	if err != nil {
		return nil, err
	}
	if !mode.UseTable(d.Len(), g.config.Solver.TableThreshold) {
		g.log.Debug("scoring without pair table", "words", d.Len(), "mode", mode)
		return wordle.NewScorer(d, nil)
	}
	t, err := g.table(ctx, d)
	if err != nil {
		return nil, err
	}
	return wordle.NewScorer(d, t)
}

// load is the common prefix of the scoring commands.
func (g *GlobalConfiguration) load(ctx context.Context) (*wordle.Scorer, error) {
	d, err := g.dictionary()
	if err != nil {
		return nil, err
	}
	return g.scorer(ctx, d)
}

func cpuProfile() (func(), error) {
	f, err := os.Create("cpu.prof")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
