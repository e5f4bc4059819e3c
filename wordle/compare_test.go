package wordle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCompare(t *testing.T, secret, guess, want string) {
	t.Helper()
	p, err := Feedback(secret, guess)
	require.NoError(t, err)
	assert.Equal(t, want, p.String(), "secret %s guess %s", secret, guess)
}

func TestCompareSelf(t *testing.T) {
	for _, w := range testWords {
		word := MustParseWord(w)
		assert.Equal(t, AllCorrect, Compare(word, word), w)
	}
}

func TestCompareRepeatedLetters(t *testing.T) {
	// second L and the last A have nothing left to match
	testCompare(t, "alloy", "llama", "ygyrr")
	// two E's in both words, both yellow
	testCompare(t, "speed", "erase", "yrryy")
	// the green E uses the only E, the earlier ones stay absent
	testCompare(t, "crane", "eerie", "rryrg")
	testCompare(t, "abbey", "babes", "yyggr")
	testCompare(t, "geese", "eerie", "ygrrg")
}

func TestCompareSimple(t *testing.T) {
	testCompare(t, "cigar", "rebut", "yrrrr")
	testCompare(t, "crane", "react", "yygyr")
	testCompare(t, "humph", "quiet", "rgrrr")
}

func TestCompareCounts(t *testing.T) {
	for _, s := range testWords {
		for _, g := range testWords {
			secret, guess := MustParseWord(s), MustParseWord(g)
			p := Compare(secret, guess)
			var inSecret, inGuess, marked [26]int
			for i := range WordLength {
				inSecret[secret[i]-'A']++
				inGuess[guess[i]-'A']++
				if p[i] != Absent {
					marked[guess[i]-'A']++
				}
				assert.Equal(t, secret[i] == guess[i], p[i] == Correct, "%s %s %d", s, g, i)
			}
			for l := range 26 {
				assert.Equal(t, min(inSecret[l], inGuess[l]), marked[l], "%s %s %c", s, g, 'A'+l)
			}
		}
	}
}

func TestCompareUnparsedWords(t *testing.T) {
	crane := MustParseWord("crane")
	assert.NotPanics(t, func() {
		assert.Equal(t, Pattern{}, Compare(Word{}, crane))
	})
	lower := Word{'c', 'r', 'a', 'n', 'e'}
	assert.Equal(t, AllCorrect, Compare(lower, lower))
	assert.Equal(t, Pattern{}, Compare(lower, crane))
}

func TestFeedbackInvalid(t *testing.T) {
	_, err := Feedback("cigars", "rebut")
	assert.ErrorIs(t, err, ErrInvalidWordLength)
	_, err = Feedback("cigar", "reb")
	assert.ErrorIs(t, err, ErrInvalidWordLength)
	_, err = Feedback("cig4r", "rebut")
	assert.ErrorIs(t, err, ErrInvalidLetter)
}
