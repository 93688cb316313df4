// Package mnemonic implements the 25-word TOS seed phrase: 24 words carrying
// the 32-byte private key plus one checksum word.
package mnemonic

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/tos-network/paperwallet/pkg/crypto"
)

// Phrase lengths.
const (
	SeedLength     = 24
	PhraseLength   = SeedLength + 1
	wordsPerChunk  = 3
	bytesPerChunk  = 4
	wordlistLength = uint32(WordlistSize)
)

// Decode errors.
var (
	ErrInvalidWordCount  = errors.New("mnemonic must have 24 or 25 words")
	ErrChecksumMismatch  = errors.New("mnemonic checksum word mismatch")
	ErrUnknownWord       = errors.New("unknown mnemonic word")
	ErrWordlistIntegrity = errors.New("wordlist integrity check failed")
)

// UnknownWordError reports a word that is not in the wordlist.
type UnknownWordError struct {
	Word     string
	Position int
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("unknown mnemonic word %q at position %d", e.Word, e.Position+1)
}

func (e *UnknownWordError) Unwrap() error {
	return ErrUnknownWord
}

// ChecksumIndex returns the position, within the first 24 words, of the
// checksum word. Up to the first three characters of each word are
// ASCII lower-cased and concatenated; shorter words contribute what they have.
func ChecksumIndex(seed []string) int {
	var sb strings.Builder
	for _, w := range seed {
		r := []rune(asciiLower(w))
		if len(r) > prefixLength {
			r = r[:prefixLength]
		}
		sb.WriteString(string(r))
	}
	sum := crc32.ChecksumIEEE([]byte(sb.String()))
	return int(sum % uint32(len(seed)))
}

// ScalarToWords encodes a private key as a 25-word phrase.
func ScalarToWords(key *crypto.PrivateKey) []string {
	b := key.Bytes()

	out := make([]string, 0, PhraseLength)
	for i := 0; i < crypto.PrivateKeySize; i += bytesPerChunk {
		val := binary.LittleEndian.Uint32(b[i : i+bytesPerChunk])
		a := val % wordlistLength
		bb := (val/wordlistLength + a) % wordlistLength
		c := (val/wordlistLength/wordlistLength + bb) % wordlistLength
		out = append(out, words[a], words[bb], words[c])
	}

	return append(out, out[ChecksumIndex(out)])
}

// WordsToScalar decodes a 24- or 25-word phrase into a private key. A 25th
// word must match the checksum. The entropy floor applied to fresh keys is
// not enforced here.
func WordsToScalar(phrase []string) (*crypto.PrivateKey, error) {
	if len(phrase) != SeedLength && len(phrase) != PhraseLength {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWordCount, len(phrase))
	}
	seed := phrase[:SeedLength]
	if len(phrase) == PhraseLength {
		if asciiLower(seed[ChecksumIndex(seed)]) != asciiLower(phrase[SeedLength]) {
			return nil, ErrChecksumMismatch
		}
	}

	indices := make([]uint32, SeedLength)
	for i, w := range seed {
		idx, ok := Index(w)
		if !ok {
			return nil, &UnknownWordError{Word: w, Position: i}
		}
		indices[i] = uint32(idx)
	}

	var buf [crypto.PrivateKeySize]byte
	for i := 0; i < SeedLength; i += wordsPerChunk {
		val, err := decodeChunk(indices[i], indices[i+1], indices[i+2])
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i/wordsPerChunk, err)
		}
		off := i / wordsPerChunk * bytesPerChunk
		binary.LittleEndian.PutUint32(buf[off:off+bytesPerChunk], val)
	}

	key, err := crypto.PrivateKeyFromBytes(buf[:])
	if err != nil {
		return nil, fmt.Errorf("decode scalar: %w", err)
	}
	return key, nil
}

// decodeChunk inverts the three-word encoding of one 32-bit chunk.
func decodeChunk(a, b, c uint32) (uint32, error) {
	const n = uint64(wordlistLength)
	x, y, z := uint64(a), uint64(b), uint64(c)
	val := x + n*((n-x+y)%n) + n*n*((n-y+z)%n)
	if val%n != x {
		return 0, ErrWordlistIntegrity
	}
	return uint32(val), nil
}

// Split normalizes a space-separated phrase into words.
func Split(phrase string) []string {
	return strings.Fields(phrase)
}

// Join renders words as a single-space phrase.
func Join(words []string) string {
	return strings.Join(words, " ")
}

// Validate checks that phrase decodes, including the checksum word when present.
func Validate(phrase string) error {
	_, err := WordsToScalar(Split(phrase))
	return err
}
