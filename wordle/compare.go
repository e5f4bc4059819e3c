package wordle

import "fmt"

// Compare returns the feedback a player sees after guessing guess when the
// secret is secret. Words are expected to come from ParseWord; other byte
// values are compared as opaque symbols.
//
// Greens are settled first and consume their letter on both sides. The
// remaining guess letters are then scanned left to right and turn yellow only
// while an unconsumed copy is left in the secret, so a repeated guess letter
// is never marked more often than the secret holds it.
func Compare(secret, guess Word) Pattern {
	var ret Pattern
	var secretNotGreen [256]uint8
	for i, secretLetter := range secret {
		if secretLetter == guess[i] {
			ret[i] = Correct
		} else {
			secretNotGreen[secretLetter]++
		}
	}
	// turn the absent to present if still available in the secret
	for i, guessLetter := range guess {
		if ret[i] == Correct {
			continue
		}
		if secretNotGreen[guessLetter] > 0 {
			ret[i] = Present
			secretNotGreen[guessLetter]--
		}
	}
	return ret
}

// Feedback parses both strings and compares them.
func Feedback(secret, guess string) (Pattern, error) {
	s, err := ParseWord(secret)
	if err != nil {
		return Pattern{}, fmt.Errorf("secret: %w", err)
	}
	g, err := ParseWord(guess)
	if err != nil {
		return Pattern{}, fmt.Errorf("guess: %w", err)
	}
	return Compare(s, g), nil
}
