package wordle

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTop is the number of entries shown by default.
const DefaultTop = 20

type ScoreEntry struct {
	Word    Word
	Entropy float64
}

// Scoreboard is sorted by descending entropy.
type Scoreboard []ScoreEntry

// NewScoreboard sorts a copy of entries. Equal scores keep their input order.
func NewScoreboard(entries []ScoreEntry) Scoreboard {
	ret := make(Scoreboard, len(entries))
	copy(ret, entries)
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Entropy > ret[j].Entropy
	})
	return ret
}

// Top returns the first n entries, or all of them when n <= 0 or n > Len.
func (sb Scoreboard) Top(n int) Scoreboard {
	if n <= 0 || n > len(sb) {
		return sb
	}
	return sb[:n]
}

func (sb Scoreboard) Best() (ScoreEntry, bool) {
	if len(sb) == 0 {
		return ScoreEntry{}, false
	}
	return sb[0], true
}

// Rank scores every guess against candidates and returns the scoreboard.
// Guesses are spread over workers; each result lands in its own slot.
func (s *Scorer) Rank(ctx context.Context, guesses, candidates *WordList, opts ...Option) (Scoreboard, error) {
	if candidates.Len() == 0 {
		return nil, ErrEmptyDictionary
	}
	o := newOptions(opts)
	indexes := guesses.Indexes()
	entries := make([]ScoreEntry, len(indexes))
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for slot, guess := range indexes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			word := s.dict.words[guess]
			score, err := s.Entropy(word, candidates)
			if err != nil {
				return fmt.Errorf("score %s: %w", word, err)
			}
			entries[slot] = ScoreEntry{Word: word, Entropy: score}
			_ = o.progress.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rank guesses: %w", err)
	}
	o.logger.Debug("guesses ranked", "guesses", len(indexes), "candidates", candidates.Len(),
		"table", s.table != nil, "elapsed", time.Since(start))
	return NewScoreboard(entries), nil
}

// GuessAnswer is one played guess and the pattern it got.
type GuessAnswer struct {
	Guess   Word
	Pattern Pattern
}

// PlayReturnPossible narrows the whole dictionary by every guess/answer
// pair in order and ranks all dictionary words against what is left.
func (s *Scorer) PlayReturnPossible(ctx context.Context, guessAnswers []GuessAnswer, opts ...Option) (Scoreboard, *WordList, error) {
	possible := s.dict.WordlistAll()
	for _, ga := range guessAnswers {
		possible = s.Narrow(possible, ga.Guess, ga.Pattern)
		if possible.Len() == 0 {
			return nil, possible, fmt.Errorf("no word answers %s with %s: %w", ga.Guess, ga.Pattern, ErrEmptyDictionary)
		}
	}
	sb, err := s.Rank(ctx, s.dict.WordlistAll(), possible, opts...)
	if err != nil {
		return nil, possible, err
	}
	return sb, possible, nil
}

// MaxGuesses bounds a simulated game.
const MaxGuesses = 20

// NextGuess picks the highest entropy guess against possible. Among guesses
// tied for the best score one that could itself be the answer wins, and
// with two or fewer candidates the first candidate is guessed outright.
func (s *Scorer) NextGuess(ctx context.Context, possible *WordList, opts ...Option) (Word, error) {
	if possible.Len() == 0 {
		return Word{}, ErrEmptyDictionary
	}
	if possible.Len() <= 2 {
		return s.dict.words[possible.Indexes()[0]], nil
	}
	sb, err := s.Rank(ctx, s.dict.WordlistAll(), possible, opts...)
	if err != nil {
		return Word{}, err
	}
	best, _ := sb.Best()
	for _, e := range sb {
		if e.Entropy != best.Entropy {
			break
		}
		if i, ok := s.dict.Index(e.Word); ok && possible.Contains(i) {
			return e.Word, nil
		}
	}
	return best.Word, nil
}

// Simulate plays one game against solution: the first guesses are used as
// given, after that NextGuess chooses. It returns every guess, the last one
// being the solution.
func (s *Scorer) Simulate(ctx context.Context, solution Word, first []Word, opts ...Option) ([]Word, error) {
	if _, ok := s.dict.Index(solution); !ok {
		return nil, fmt.Errorf("solution %s: %w", solution, ErrUnknownWord)
	}
	possible := s.dict.WordlistAll()
	guesses := []Word{}
	for len(guesses) < MaxGuesses {
		var guess Word
		if len(guesses) < len(first) {
			guess = first[len(guesses)]
		} else {
			var err error
			if guess, err = s.NextGuess(ctx, possible, opts...); err != nil {
				return guesses, fmt.Errorf("simulate %s: %w", solution, err)
			}
		}
		guesses = append(guesses, guess)
		pattern := Compare(solution, guess)
		if pattern == AllCorrect {
			return guesses, nil
		}
		possible = s.Narrow(possible, guess, pattern)
	}
	return guesses, fmt.Errorf("simulate %s: no solution after %d guesses", solution, MaxGuesses)
}
