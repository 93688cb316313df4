package mnemonic

import (
	"sort"
	"testing"
)

func TestWordlist_Size(t *testing.T) {
	if got := len(Words()); got != WordlistSize {
		t.Fatalf("len(Words()) = %d, want %d", got, WordlistSize)
	}
}

func TestWordlist_SortedLowercaseUnique(t *testing.T) {
	w := Words()
	if !sort.StringsAreSorted(w) {
		t.Error("wordlist should be sorted")
	}
	seen := make(map[string]bool, len(w))
	for _, word := range w {
		if seen[word] {
			t.Errorf("duplicate word %q", word)
		}
		seen[word] = true
		for _, c := range word {
			if c < 'a' || c > 'z' {
				t.Errorf("word %q is not lowercase ASCII", word)
				break
			}
		}
	}
}

func TestWordlist_Bounds(t *testing.T) {
	if Word(0) != "abbey" {
		t.Errorf("Word(0) = %q, want abbey", Word(0))
	}
	if Word(WordlistSize-1) != "zoom" {
		t.Errorf("Word(last) = %q, want zoom", Word(WordlistSize-1))
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		word string
		idx  int
		ok   bool
	}{
		{"abbey", 0, true},
		{"ABBEY", 0, true},
		{"Zoom", WordlistSize - 1, true},
		{"notaword", 0, false},
		{"", 0, false},
		{"\u212Aept", 0, false}, // Kelvin sign, not K
		{"\u212Aiosk", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			idx, ok := Index(tt.word)
			if ok != tt.ok {
				t.Fatalf("Index(%q) ok = %v, want %v", tt.word, ok, tt.ok)
			}
			if ok && idx != tt.idx {
				t.Errorf("Index(%q) = %d, want %d", tt.word, idx, tt.idx)
			}
		})
	}
}

func TestIndex_Bijection(t *testing.T) {
	for i := 0; i < WordlistSize; i++ {
		idx, ok := Index(Word(i))
		if !ok || idx != i {
			t.Fatalf("Index(Word(%d)) = %d, %v", i, idx, ok)
		}
	}
}

func TestWords_ReturnsCopy(t *testing.T) {
	w := Words()
	w[0] = "changed"
	if Word(0) != "abbey" {
		t.Error("Words() should not expose the internal slice")
	}
}
