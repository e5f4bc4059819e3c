package wordle

import (
	"fmt"
	"strings"
)

// WordLength is the number of letters in every word.
const WordLength = 5

// Word is five uppercase ASCII letters. Build words with ParseWord; the zero
// Word is not a valid word.
type Word [WordLength]byte

// ParseWord trims and uppercases s and checks that it is a five letter word.
func ParseWord(s string) (Word, error) {
	var w Word
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != WordLength {
		return w, fmt.Errorf("%q has %d letters, want %d: %w", s, len(s), WordLength, ErrInvalidWordLength)
	}
	for i := range WordLength {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return w, fmt.Errorf("%q position %d: %w", s, i, ErrInvalidLetter)
		}
		w[i] = c
	}
	return w, nil
}

// MustParseWord is ParseWord for literals known to be valid.
func MustParseWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseWords parses every string, stopping at the first bad one.
func ParseWords(strs []string) ([]Word, error) {
	ret := make([]Word, 0, len(strs))
	for _, s := range strs {
		w, err := ParseWord(s)
		if err != nil {
			return nil, err
		}
		ret = append(ret, w)
	}
	return ret, nil
}

func (w Word) String() string {
	return string(w[:])
}
