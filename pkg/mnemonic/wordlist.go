package mnemonic

import (
	_ "embed"
	"fmt"
	"strings"
)

// WordlistSize is the number of words in the wordlist.
const WordlistSize = 1626

// prefixLength is the number of leading characters of each word that feed
// the checksum.
const prefixLength = 3

//go:embed wordlist/english.txt
var englishRaw string

var (
	words []string
	index map[string]int
)

func init() {
	words = strings.Fields(englishRaw)
	if len(words) != WordlistSize {
		panic(fmt.Sprintf("mnemonic: wordlist has %d words, want %d", len(words), WordlistSize))
	}
	index = make(map[string]int, len(words))
	for i, w := range words {
		if _, dup := index[w]; dup {
			panic(fmt.Sprintf("mnemonic: duplicate word %q", w))
		}
		index[w] = i
	}
}

// Word returns the word at index i.
func Word(i int) string {
	return words[i]
}

// Index returns the wordlist position of w. Matching ignores ASCII case
// only; any other letter must match exactly.
func Index(w string) (int, bool) {
	i, ok := index[asciiLower(w)]
	return i, ok
}

// asciiLower folds A-Z and leaves every other rune untouched.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// Words returns a copy of the wordlist.
func Words() []string {
	out := make([]string, len(words))
	copy(out, words)
	return out
}
