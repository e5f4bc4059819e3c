// Package wordsource reads word lists for the solver: plain newline
// delimited files and JSON letter tries.
package wordsource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrMalformedSource = errors.New("malformed dictionary source")

// Format names a source layout.
type Format string

const (
	FormatText Format = "text"
	FormatTrie Format = "trie"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatTrie:
		return f, nil
	case "":
		return "", nil
	}
	return "", fmt.Errorf("unknown dictionary format %q, want text or trie", s)
}

// DetectFormat guesses the format from the file extension.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatTrie
	}
	return FormatText
}

// ReadText returns one trimmed, uppercased word per non-blank line. Lines
// starting with # are comments. Word validation is left to the caller.
func ReadText(r io.Reader) ([]string, error) {
	var ret []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		ret = append(ret, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %v: %w", err, ErrMalformedSource)
	}
	return ret, nil
}

// WriteText writes one word per line.
func WriteText(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := bw.WriteString(word + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load reads path in the given format, detecting it from the extension when
// format is empty.
func Load(path string, format Format) ([]string, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, ErrMalformedSource)
	}
	defer f.Close()

	var words []string
	switch format {
	case FormatTrie:
		words, err = ReadTrie(f)
	default:
		words, err = ReadText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}
