package wordle

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	mapset "github.com/deckarep/golang-set"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Dictionary is an ordered list of unique words. A word's position is its
// identity in a PairTable and in a WordList.
type Dictionary struct {
	words []Word
	index *patricia.Trie // word -> position
}

// WordList is a set of dictionary positions.
type WordList bitset.BitSet

func NewDictionary(words []Word) (*Dictionary, error) {
	if len(words) == 0 {
		return nil, ErrEmptyDictionary
	}
	seen := mapset.NewThreadUnsafeSet()
	ret := &Dictionary{
		words: make([]Word, len(words)),
		index: patricia.NewTrie(),
	}
	copy(ret.words, words)
	for i, word := range words {
		if !seen.Add(word) {
			return nil, fmt.Errorf("%s at position %d: %w", word, i, ErrDuplicateWord)
		}
		ret.index.Insert(patricia.Prefix(word.String()), i)
	}
	return ret, nil
}

// NewDictionaryFromStrings parses every string and builds a dictionary.
func NewDictionaryFromStrings(strs []string) (*Dictionary, error) {
	words, err := ParseWords(strs)
	if err != nil {
		return nil, err
	}
	return NewDictionary(words)
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

// Word returns the word at position i.
func (d *Dictionary) Word(i int) Word {
	return d.words[i]
}

// Words returns a copy of the words in dictionary order.
func (d *Dictionary) Words() []Word {
	ret := make([]Word, len(d.words))
	copy(ret, d.words)
	return ret
}

// Strings returns the words in dictionary order.
func (d *Dictionary) Strings() []string {
	ret := make([]string, len(d.words))
	for i, word := range d.words {
		ret[i] = word.String()
	}
	return ret
}

// Index returns the position of w.
func (d *Dictionary) Index(w Word) (int, bool) {
	item := d.index.Get(patricia.Prefix(w.String()))
	if item == nil {
		return 0, false
	}
	return item.(int), true
}

// Lookup parses s and returns its position.
func (d *Dictionary) Lookup(s string) (int, error) {
	w, err := ParseWord(s)
	if err != nil {
		return 0, err
	}
	i, ok := d.Index(w)
	if !ok {
		return 0, fmt.Errorf("%s: %w", w, ErrUnknownWord)
	}
	return i, nil
}

// WithPrefix returns the positions of all words starting with prefix, in
// dictionary order.
func (d *Dictionary) WithPrefix(prefix string) *WordList {
	ret := d.WordlistEmpty()
	_ = d.index.VisitSubtree(patricia.Prefix(strings.ToUpper(prefix)), func(_ patricia.Prefix, item patricia.Item) error {
		ret.Insert(item.(int))
		return nil
	})
	return ret
}

// Truncate returns a dictionary of the first count words, count 0 or more
// than Len keeps them all.
func (d *Dictionary) Truncate(count int) *Dictionary {
	if count <= 0 || count >= len(d.words) {
		return d
	}
	ret, err := NewDictionary(d.words[:count])
	if err != nil {
		// a prefix of a valid dictionary is valid
		panic(err)
	}
	return ret
}

func (d *Dictionary) WordlistAll() *WordList {
	wordsLen := uint(len(d.words))
	ret := bitset.New(wordsLen)
	for i := range wordsLen {
		ret.Set(i)
	}
	return (*WordList)(ret)
}

func (d *Dictionary) WordlistEmpty() *WordList {
	return (*WordList)(bitset.New(uint(len(d.words))))
}

// WordlistStrings returns the words of a list in dictionary order.
func (d *Dictionary) WordlistStrings(wordlist *WordList) []string {
	ret := []string{}
	for _, i := range wordlist.Range {
		ret = append(ret, d.words[i].String())
	}
	return ret
}

// Range iterates positions in ascending order, yielding a running count and
// the position.
func (wl *WordList) Range(yield func(i int, index int) bool) {
	bs := (*bitset.BitSet)(wl)
	i := 0
	for index, ok := bs.NextSet(0); ok; index, ok = bs.NextSet(index + 1) {
		if !yield(i, int(index)) {
			return
		}
		i++
	}
}

func (wl *WordList) Indexes() []int {
	ret := []int{}
	for _, index := range wl.Range {
		ret = append(ret, index)
	}
	return ret
}

func (wl *WordList) Len() int {
	return int((*bitset.BitSet)(wl).Count())
}

func (wl *WordList) Insert(index int) {
	(*bitset.BitSet)(wl).Set(uint(index))
}

func (wl *WordList) Contains(index int) bool {
	return (*bitset.BitSet)(wl).Test(uint(index))
}
