package wordle

import (
	"fmt"
	"strings"
)

// Symbol is the feedback for one letter position.
type Symbol uint8

const (
	Absent Symbol = iota
	Present
	Correct
)

// symbolCount is the number of distinct symbols per position.
const symbolCount = 3

// PatternCount is the size of the pattern space, 3^5.
const PatternCount = 243

// Pattern is the feedback for a whole guess, one symbol per position.
type Pattern [WordLength]Symbol

// AllCorrect is the pattern of a solved guess.
var AllCorrect = Pattern{Correct, Correct, Correct, Correct, Correct}

// Code packs the pattern into a base 3 number, position 0 most significant.
// The code of the k-th element of Space() is k.
func (p Pattern) Code() uint8 {
	var ret uint8
	for _, s := range p {
		ret = ret*symbolCount + uint8(s)
	}
	return ret
}

// PatternFromCode is the inverse of Pattern.Code.
func PatternFromCode(code uint8) (Pattern, error) {
	var p Pattern
	if code >= PatternCount {
		return p, fmt.Errorf("code %d: %w", code, ErrInvalidPattern)
	}
	for i := WordLength - 1; i >= 0; i-- {
		p[i] = Symbol(code % symbolCount)
		code /= symbolCount
	}
	return p, nil
}

func patternFromCode(code uint8) Pattern {
	p, err := PatternFromCode(code)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePattern reads the r/y/g form produced by Pattern.String,
// r absent, y present elsewhere, g correct position.
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != WordLength {
		return p, fmt.Errorf("%q has %d symbols, want %d: %w", s, len(s), WordLength, ErrInvalidPattern)
	}
	for i := range WordLength {
		switch s[i] {
		case 'r':
			p[i] = Absent
		case 'y':
			p[i] = Present
		case 'g':
			p[i] = Correct
		default:
			return p, fmt.Errorf("%q position %d: %w", s, i, ErrInvalidPattern)
		}
	}
	return p, nil
}

func (s Symbol) String() string {
	switch s {
	case Absent:
		return "r"
	case Present:
		return "y"
	case Correct:
		return "g"
	}
	return "?"
}

func (p Pattern) String() string {
	var b strings.Builder
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}

// Space returns every pattern exactly once in lexicographic order.
func Space() []Pattern {
	ret := make([]Pattern, 0, PatternCount)
	return generatePatterns(0, Pattern{}, ret)
}

func generatePatterns(pos int, prefix Pattern, acc []Pattern) []Pattern {
	if pos == WordLength {
		return append(acc, prefix)
	}
	for s := Absent; s <= Correct; s++ {
		prefix[pos] = s
		acc = generatePatterns(pos+1, prefix, acc)
	}
	return acc
}
