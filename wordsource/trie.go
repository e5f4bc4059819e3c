package wordsource

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ReadTrie decodes a JSON letter trie and flattens it. Each object key is
// one or more letters appended to the word so far; any value that is not an
// object ends a word. Keys are visited in sorted order, so the output is
// sorted when keys are single letters.
//
//	{"c": {"i": {"g": {"a": {"r": 1}}}}}  ->  CIGAR
func ReadTrie(r io.Reader) ([]string, error) {
	var root any
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode trie: %v: %w", err, ErrMalformedSource)
	}
	node, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("trie root is %T, want object: %w", root, ErrMalformedSource)
	}
	return FlattenTrie(node), nil
}

// FlattenTrie walks a decoded trie depth first and returns every word.
func FlattenTrie(node map[string]any) []string {
	return flatten("", node, nil)
}

func flatten(prefix string, node map[string]any, acc []string) []string {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		word := prefix + strings.ToUpper(k)
		if child, ok := node[k].(map[string]any); ok {
			acc = flatten(word, child, acc)
		} else {
			acc = append(acc, word)
		}
	}
	return acc
}
