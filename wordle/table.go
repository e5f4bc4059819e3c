package wordle

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// PairTable holds the feedback code of every ordered (secret, guess) pair of
// a dictionary in one flat slice indexed by secret*n + guess.
type PairTable struct {
	n     int
	codes []uint8
}

// BuildPairTable compares every word against every word, n*n comparisons.
// Rows are split across workers; each worker writes only its own rows.
func BuildPairTable(ctx context.Context, d *Dictionary, opts ...Option) (*PairTable, error) {
	if d == nil || d.Len() == 0 {
		return nil, ErrEmptyDictionary
	}
	o := newOptions(opts)
	n := d.Len()
	t := &PairTable{n: n, codes: make([]uint8, n*n)}
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for secret := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := t.codes[secret*n : (secret+1)*n]
			secretWord := d.words[secret]
			for guess, guessWord := range d.words {
				row[guess] = Compare(secretWord, guessWord).Code()
			}
			_ = o.progress.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build pair table: %w", err)
	}
	o.logger.Debug("pair table built", "words", n, "workers", o.workers, "elapsed", time.Since(start))
	return t, nil
}

// NewPairTable wraps codes read back from storage. It checks the shape and
// the code range; Verify checks the contents against a dictionary.
func NewPairTable(n int, codes []uint8) (*PairTable, error) {
	if n <= 0 {
		return nil, ErrEmptyDictionary
	}
	if len(codes) != n*n {
		return nil, fmt.Errorf("%d codes for %d words: %w", len(codes), n, ErrTableMismatch)
	}
	for i, code := range codes {
		if code >= PatternCount {
			return nil, fmt.Errorf("entry %d code %d: %w", i, code, ErrInvalidPattern)
		}
	}
	return &PairTable{n: n, codes: codes}, nil
}

// Len is the number of words on each side of the table.
func (t *PairTable) Len() int {
	return t.n
}

func (t *PairTable) Code(secret, guess int) uint8 {
	return t.codes[secret*t.n+guess]
}

func (t *PairTable) Lookup(secret, guess int) Pattern {
	return patternFromCode(t.Code(secret, guess))
}

// Codes exposes the backing slice for serialisation. It must not be modified.
func (t *PairTable) Codes() []uint8 {
	return t.codes
}

// Verify recomputes every pair and reports the first one that differs.
func (t *PairTable) Verify(d *Dictionary) error {
	rows := make([]int, t.n)
	for i := range rows {
		rows[i] = i
	}
	return t.VerifyRows(d, rows)
}

// VerifyRows recomputes the given secret rows only. The diagonal of every
// row must be AllCorrect.
func (t *PairTable) VerifyRows(d *Dictionary, rows []int) error {
	if d.Len() != t.n {
		return fmt.Errorf("table has %d words, dictionary %d: %w", t.n, d.Len(), ErrTableMismatch)
	}
	for _, secret := range rows {
		secretWord := d.words[secret]
		for guess, guessWord := range d.words {
			want := Compare(secretWord, guessWord).Code()
			if got := t.Code(secret, guess); got != want {
				return fmt.Errorf("secret %s guess %s: have %s want %s: %w",
					secretWord, guessWord, patternFromCode(got), patternFromCode(want), ErrTableMismatch)
			}
		}
	}
	return nil
}

// VerifyDiagonal checks that every word answers itself with AllCorrect.
func (t *PairTable) VerifyDiagonal() error {
	want := AllCorrect.Code()
	for i := range t.n {
		if got := t.Code(i, i); got != want {
			return fmt.Errorf("entry %d,%d is %s: %w", i, i, patternFromCode(got), ErrTableMismatch)
		}
	}
	return nil
}
