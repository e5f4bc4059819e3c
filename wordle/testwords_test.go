package wordle

import "testing"

var testWords = []string{
	"cigar", "rebut", "sissy", "humph", "awake", "blush", "focal", "evade",
	"naval", "serve", "heath", "dwarf", "model", "karma", "stink", "grade",
	"quiet", "bench", "abate", "feign", "major", "death", "fresh", "crust",
	"stool", "colon", "abase", "marry", "react", "batty", "pride", "floss",
	"helix", "croak", "staff", "paper", "unfed", "whelp", "trawl", "outdo",
	"alloy", "llama", "speed", "erase", "crane", "eerie", "raise", "geese",
}

func testDictionary(t testing.TB) *Dictionary {
	t.Helper()
	d, err := NewDictionaryFromStrings(testWords)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
