package wordle

import (
	"fmt"
	"math"
	"sort"
)

// MaxEntropy is the largest possible score, log2(PatternCount).
var MaxEntropy = math.Log2(PatternCount)

// TableMode selects how a Scorer finds the feedback of a pair.
type TableMode string

const (
	TableAuto   TableMode = "auto"   // table when the dictionary is small enough
	TableAlways TableMode = "table"  // always build or load a table
	TableNever  TableMode = "direct" // always compare directly
)

// DefaultTableThreshold keeps the table at 36MB or less in auto mode.
const DefaultTableThreshold = 6000

func ParseTableMode(s string) (TableMode, error) {
	switch m := TableMode(s); m {
	case TableAuto, TableAlways, TableNever:
		return m, nil
	case "":
		return TableAuto, nil
	}
	return "", fmt.Errorf("unknown table mode %q, want auto, table or direct", s)
}

// UseTable reports whether a dictionary of n words should get a table.
func (m TableMode) UseTable(n, threshold int) bool {
	switch m {
	case TableAlways:
		return true
	case TableNever:
		return false
	}
	return n <= threshold
}

// Scorer computes pattern distributions and entropies of guesses against
// candidate sets drawn from one dictionary.
type Scorer struct {
	dict  *Dictionary
	space []Pattern
	table *PairTable
}

// NewScorer returns a scorer for d. table may be nil, in which case every
// pair is compared directly.
func NewScorer(d *Dictionary, table *PairTable) (*Scorer, error) {
	if d == nil || d.Len() == 0 {
		return nil, ErrEmptyDictionary
	}
	if table != nil && table.Len() != d.Len() {
		return nil, fmt.Errorf("table has %d words, dictionary %d: %w", table.Len(), d.Len(), ErrTableMismatch)
	}
	return &Scorer{dict: d, space: Space(), table: table}, nil
}

func (s *Scorer) Dictionary() *Dictionary {
	return s.dict
}

func (s *Scorer) HasTable() bool {
	return s.table != nil
}

// Distribution counts, for every pattern code, the candidates that would
// answer guess with that pattern.
func (s *Scorer) Distribution(guess Word, candidates *WordList) ([PatternCount]int, error) {
	var counts [PatternCount]int
	if candidates.Len() == 0 {
		return counts, ErrEmptyDictionary
	}
	if s.table != nil {
		if g, ok := s.dict.Index(guess); ok {
			for _, secret := range candidates.Range {
				counts[s.table.Code(secret, g)]++
			}
			return counts, nil
		}
	}
	for _, secret := range candidates.Range {
		counts[Compare(s.dict.words[secret], guess).Code()]++
	}
	return counts, nil
}

// Entropy is the Shannon entropy in bits of guess's pattern distribution
// over candidates.
func (s *Scorer) Entropy(guess Word, candidates *WordList) (float64, error) {
	counts, err := s.Distribution(guess, candidates)
	if err != nil {
		return 0, err
	}
	return entropy(&counts, candidates.Len(), s.space), nil
}

// PatternBucket is one bucket of a guess's partition of the candidates.
type PatternBucket struct {
	Pattern Pattern
	Count   int
}

// Partition lists the non-empty buckets, largest first.
func (s *Scorer) Partition(guess Word, candidates *WordList) ([]PatternBucket, error) {
	counts, err := s.Distribution(guess, candidates)
	if err != nil {
		return nil, err
	}
	ret := []PatternBucket{}
	for _, p := range s.space {
		if c := counts[p.Code()]; c > 0 {
			ret = append(ret, PatternBucket{Pattern: p, Count: c})
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Count > ret[j].Count
	})
	return ret, nil
}

// Narrow keeps the candidates that would have answered guess with p.
func (s *Scorer) Narrow(candidates *WordList, guess Word, p Pattern) *WordList {
	ret := s.dict.WordlistEmpty()
	code := p.Code()
	g, inDict := s.dict.Index(guess)
	for _, secret := range candidates.Range {
		var got uint8
		if s.table != nil && inDict {
			got = s.table.Code(secret, g)
		} else {
			got = Compare(s.dict.words[secret], guess).Code()
		}
		if got == code {
			ret.Insert(secret)
		}
	}
	return ret
}

// Entropy scores guess against a plain word list by direct comparison.
func Entropy(guess Word, words []Word) (float64, error) {
	if len(words) == 0 {
		return 0, ErrEmptyDictionary
	}
	var counts [PatternCount]int
	for _, secret := range words {
		counts[Compare(secret, guess).Code()]++
	}
	return entropy(&counts, len(words), Space()), nil
}

// entropy sums p*log2(1/p) over the pattern space in order, skipping empty
// buckets, so equal inputs give bit-identical results.
func entropy(counts *[PatternCount]int, total int, space []Pattern) float64 {
	sum := 0.0
	for _, p := range space {
		c := counts[p.Code()]
		if c == 0 {
			continue
		}
		prob := float64(c) / float64(total)
		sum += prob * math.Log2(1/prob)
	}
	return sum
}
