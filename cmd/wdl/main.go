package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3" // imports as package "cli"

	"github.com/powellquiring/wordle-entropy/internal/config"
	"github.com/powellquiring/wordle-entropy/internal/httpserver"
	"github.com/powellquiring/wordle-entropy/internal/logger"
	"github.com/powellquiring/wordle-entropy/internal/render"
	"github.com/powellquiring/wordle-entropy/tablefile"
	"github.com/powellquiring/wordle-entropy/wordle"
	"github.com/powellquiring/wordle-entropy/wordsource"
)

// score ranks dictionary words as opening guesses, only those starting with
// prefix when it is not empty.
func score(ctx context.Context, g *GlobalConfiguration, out io.Writer, prefix string) error {
	scorer, err := g.load(ctx)
	if err != nil {
		return err
	}
	d := scorer.Dictionary()
	guesses := d.WordlistAll()
	if prefix != "" {
		guesses = d.WithPrefix(prefix)
		if guesses.Len() == 0 {
			return cli.Exit(fmt.Sprintf("no dictionary word starts with %q", prefix), 3)
		}
	}
	sb, err := scorer.Rank(ctx, guesses, d.WordlistAll(), g.options(g.bar(guesses.Len(), "ranking"))...)
	if err != nil {
		return err
	}
	g.log.Info("ranking done", "guesses", len(sb))
	return render.New(out).Scoreboard(sb, g.config.Solver.Top)
}

// playWordle with guess/answer pairs provided
func playWordle(ctx context.Context, g *GlobalConfiguration, out io.Writer, answers []string) error {
	scorer, err := g.load(ctx)
	if err != nil {
		return err
	}
	d := scorer.Dictionary()
	guessAnswers := []wordle.GuessAnswer{}
	for i := 0; i < len(answers); i += 2 {
		guessIndex, err := d.Lookup(answers[i])
		if err != nil {
			return cli.Exit(fmt.Sprintf("guess not in dictionary: %v", err), 3)
		}
		pattern, err := wordle.ParsePattern(answers[i+1])
		if err != nil {
			return cli.Exit(fmt.Sprintf("answer not in right format r,y,g like rrggy: %v", err), 4)
		}
		guessAnswers = append(guessAnswers, wordle.GuessAnswer{Guess: d.Word(guessIndex), Pattern: pattern})
	}
	sb, possible, err := scorer.PlayReturnPossible(ctx, guessAnswers, g.options(g.bar(d.Len(), "ranking"))...)
	if err != nil {
		return err
	}
	p := render.New(out)
	if err := p.Scoreboard(sb, g.config.Solver.Top); err != nil {
		return err
	}
	if err := p.Candidates(d.WordlistStrings(possible)); err != nil {
		return err
	}
	best, _ := sb.Best()
	bestIndex, _ := d.Index(best.Word)
	return p.NextGuess(best.Word, possible.Contains(bestIndex))
}

// simulate plays every solution with the first words as opening guesses and
// prints the games grouped by length.
func simulate(ctx context.Context, g *GlobalConfiguration, out io.Writer, firstStrings, solutionStrings []string) error {
	scorer, err := g.load(ctx)
	if err != nil {
		return err
	}
	d := scorer.Dictionary()
	first, err := wordle.ParseWords(firstStrings)
	if err != nil {
		return cli.Exit(err.Error(), 3)
	}
	solutions := d.WordlistAll()
	if len(solutionStrings) > 0 {
		solutions = d.WordlistEmpty()
		for _, solutionString := range solutionStrings {
			i, err := d.Lookup(solutionString)
			if err != nil {
				return cli.Exit(fmt.Sprintf("solution not in dictionary: %v", err), 3)
			}
			solutions.Insert(i)
		}
	}

	bar := g.bar(solutions.Len(), "games")
	opts := g.options(nil)
	games := make(map[int][][]wordle.Word)
	for _, solution := range solutions.Range {
		guesses, err := scorer.Simulate(ctx, d.Word(solution), first, opts...)
		if err != nil {
			return err
		}
		games[len(guesses)] = append(games[len(guesses)], guesses)
		_ = bar.Add(1)
	}
	g.log.Info("simulation done", "games", solutions.Len())
	return render.New(out).Games(games)
}

func feedback(out io.Writer, secret, guess string) error {
	pattern, err := wordle.Feedback(secret, guess)
	if err != nil {
		return cli.Exit(err.Error(), 3)
	}
	return render.New(out).Feedback(wordle.MustParseWord(guess), pattern)
}

// patterns shows how a guess splits the dictionary.
func patterns(ctx context.Context, g *GlobalConfiguration, out io.Writer, guessString string) error {
	guess, err := wordle.ParseWord(guessString)
	if err != nil {
		return cli.Exit(err.Error(), 3)
	}
	scorer, err := g.load(ctx)
	if err != nil {
		return err
	}
	buckets, err := scorer.Partition(guess, scorer.Dictionary().WordlistAll())
	if err != nil {
		return err
	}
	return render.New(out).Partition(guess, buckets)
}

// buildTable writes the pair table to path and reads it back as a check.
func buildTable(ctx context.Context, g *GlobalConfiguration, path string) error {
	d, err := g.dictionary()
	if err != nil {
		return err
	}
	t, err := wordle.BuildPairTable(ctx, d, g.options(g.bar(d.Len(), "pair table"))...)
	if err != nil {
		return err
	}
	if err := tablefile.Save(path, d, t); err != nil {
		return err
	}
	loaded, err := tablefile.Load(path, d)
	if err != nil {
		return err
	}
	if err := loaded.Verify(d); err != nil {
		return err
	}
	g.log.Info("pair table saved", "path", path, "words", d.Len(), "bytes", len(loaded.Codes()))
	return nil
}

// flatten converts a JSON letter trie to a newline word list.
func flatten(in, out string) error {
	words, err := wordsource.Load(in, wordsource.FormatTrie)
	if err != nil {
		return err
	}
	if out == "" || out == "-" {
		return wordsource.WriteText(os.Stdout, words)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := wordsource.WriteText(f, words); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeConfig saves the resolved configuration, flags and environment
// included, as TOML.
func writeConfig(g *GlobalConfiguration, path string) error {
	if err := config.Save(g.config, path); err != nil {
		return err
	}
	g.log.Info("config written", "path", path)
	return nil
}

func serve(ctx context.Context, g *GlobalConfiguration) error {
	scorer, err := g.load(ctx)
	if err != nil {
		return err
	}
	srv := httpserver.New(scorer, httpserver.Options{
		Top:     g.config.Solver.Top,
		Workers: g.config.Solver.Workers,
		Logger:  g.log,
	})
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx, g.config.Server.Addr)
}

func main() {
	fv := &flagValues{}
	var tableOut string
	var prefix string

	// withConfig resolves the configuration and starts profiling around an action.
	withConfig := func(action func(context.Context, *cli.Command, *GlobalConfiguration) error) cli.ActionFunc {
		return func(ctx context.Context, cmd *cli.Command) error {
			g, err := globalConfiguration(cmd, fv)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if fv.profile {
				stop, err := cpuProfile()
				if err != nil {
					return err
				}
				defer stop()
			}
			return action(ctx, cmd, g)
		}
	}

	cmd := &cli.Command{
		Name:  "wdl",
		Usage: "rank wordle guesses by the entropy of their feedback patterns",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "TOML config file",
				Destination: &fv.configPath,
			},
			&cli.StringFlag{
				Name:        "dict",
				Aliases:     []string{"d"},
				Usage:       "dictionary file, newline words or a .json letter trie",
				Destination: &fv.dict,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "dictionary format text or trie, default from the file extension",
				Destination: &fv.format,
			},
			&cli.IntFlag{
				Name:        "count",
				Value:       0,
				Aliases:     []string{"c"},
				Usage:       "number of words, 0 is all words",
				Destination: &fv.count,
			},
			&cli.IntFlag{
				Name:        "workers",
				Aliases:     []string{"w"},
				Usage:       "goroutines for table build and ranking, 0 is one per cpu",
				Destination: &fv.workers,
			},
			&cli.IntFlag{
				Name:        "top",
				Aliases:     []string{"t"},
				Value:       wordle.DefaultTop,
				Usage:       "scoreboard entries to print",
				Destination: &fv.top,
			},
			&cli.StringFlag{
				Name:        "mode",
				Aliases:     []string{"m"},
				Value:       string(wordle.TableAuto),
				Usage:       "auto, table or direct: whether to precompute the pair table",
				Destination: &fv.mode,
			},
			&cli.StringFlag{
				Name:        "table-cache",
				Usage:       "pair table cache file, reused when it matches the dictionary",
				Destination: &fv.tableCache,
			},
			&cli.BoolFlag{
				Name:        "progress",
				Value:       false,
				Aliases:     []string{"p"},
				Usage:       "show progress bar",
				Destination: &fv.progress,
			},
			&cli.BoolFlag{
				Name:        "profile",
				Value:       false,
				Usage:       "store profile data to analyze in cpu.prof",
				Destination: &fv.profile,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "debug logging",
				Destination: &fv.debug,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "score",
				Usage: "print the best opening guesses",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "prefix",
						Usage:       "only rank guesses starting with these letters",
						Destination: &prefix,
					},
				},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, g *GlobalConfiguration) error {
					return score(ctx, g, os.Stdout, prefix)
				}),
			},
			{
				Name: "play",
				Usage: `play [guess answer]...
				rank the next guess after the given pairs, answers use r,y,g like rrggy
				`,
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, g *GlobalConfiguration) error {
					if cmd.NArg()%2 != 0 {
						return cli.Exit("must have pairs of guess answer", 1)
					} else if cmd.NArg() < 2 {
						return cli.Exit("must have at least one guess answer", 2)
					}
					return playWordle(ctx, g, os.Stdout, cmd.Args().Slice())
				}),
			},
			{
				Name: "sim",
				Usage: `sim --first raise [solution] ...
				Simulate games, one per solution or for every word when none are given.  The
				--first words are the opening guesses, after them the highest entropy guess is played.
				`,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Usage:   "--first first1 --first first2 ...",
						Name:    "first",
						Aliases: []string{"f"},
					},
				},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, g *GlobalConfiguration) error {
					return simulate(ctx, g, os.Stdout, cmd.StringSlice("first"), cmd.Args().Slice())
				}),
			},
			{
				Name:      "feedback",
				Usage:     "print the pattern a guess gets against a secret",
				ArgsUsage: "secret guess",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() != 2 {
						return cli.Exit("must have secret and guess", 1)
					}
					return feedback(os.Stdout, cmd.Args().Get(0), cmd.Args().Get(1))
				},
			},
			{
				Name:      "patterns",
				Usage:     "print how a guess partitions the dictionary",
				ArgsUsage: "guess",
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, g *GlobalConfiguration) error {
					if cmd.NArg() != 1 {
						return cli.Exit("must have one guess", 1)
					}
					return patterns(ctx, g, os.Stdout, cmd.Args().First())
				}),
			},
			{
				Name:  "table",
				Usage: "build the pair table and save it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "out",
						Aliases:     []string{"o"},
						Usage:       "output file, default is the table cache path",
						Destination: &tableOut,
					},
				},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, g *GlobalConfiguration) error {
					path := tableOut
					if path == "" {
						path = g.config.Solver.TableCache
					}
					if path == "" {
						return cli.Exit("must have --out or a table cache path", 1)
					}
					return buildTable(ctx, g, path)
				}),
			},
			{
				Name:      "flatten",
				Usage:     "convert a JSON letter trie to a newline word list",
				ArgsUsage: "trie.json [dict.txt]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() < 1 || cmd.NArg() > 2 {
						return cli.Exit("must have input and optional output file", 1)
					}
					return flatten(cmd.Args().Get(0), cmd.Args().Get(1))
				},
			},
			{
				Name:      "config",
				Usage:     "write the resolved configuration as TOML",
				ArgsUsage: "wdl.toml",
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, g *GlobalConfiguration) error {
					if cmd.NArg() != 1 {
						return cli.Exit("must have output file", 1)
					}
					return writeConfig(g, cmd.Args().First())
				}),
			},
			{
				Name:  "serve",
				Usage: "serve scoreboards and narrowing over HTTP",
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, g *GlobalConfiguration) error {
					return serve(ctx, g)
				}),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.New("wdl", log.InfoLevel).Fatal(err)
	}
}
