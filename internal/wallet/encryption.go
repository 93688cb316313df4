package wallet

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/tos-network/paperwallet/internal/log"
	"github.com/tos-network/paperwallet/pkg/crypto"
	"github.com/tos-network/paperwallet/pkg/types"
)

// Encryption constants.
const (
	SaltSize = 32
	// Sealed format: [version(1)][salt(32)][memory(4)][iterations(4)][parallelism(1)][nonce(24)][ciphertext...]
	headerSize  = 1 + SaltSize + 4 + 4 + 1
	sealVersion = 1

	// SealedKeySize is the decoded length of a sealed private key.
	SealedKeySize = headerSize + chacha20poly1305.NonceSizeX + crypto.PrivateKeySize + chacha20poly1305.Overhead

	// MinMemory is the smallest Argon2id memory cost in KiB.
	MinMemory = 64

	// Upper bounds accepted when opening, so a crafted header cannot
	// demand unbounded work.
	maxMemory     = 1 << 20 // 1 GiB in KiB
	maxIterations = 64
)

// Encryption errors.
var (
	ErrSealedFormat    = errors.New("malformed encrypted key")
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted encrypted key")
	ErrEmptyPassphrase = errors.New("passphrase is empty")
	ErrInvalidParams   = errors.New("invalid argon2 parameters")
)

// EncryptionParams holds Argon2id parameters.
type EncryptionParams struct {
	Memory      uint32 // in KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultParams returns recommended Argon2id parameters.
func DefaultParams() EncryptionParams {
	return EncryptionParams{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 4,
	}
}

// Validate checks the parameters against the bounds OpenKey accepts.
func (p EncryptionParams) Validate() error {
	switch {
	case p.Memory < MinMemory || p.Memory > maxMemory:
		return fmt.Errorf("%w: memory %d KiB not in [%d, %d]", ErrInvalidParams, p.Memory, MinMemory, maxMemory)
	case p.Iterations == 0 || p.Iterations > maxIterations:
		return fmt.Errorf("%w: iterations %d not in [1, %d]", ErrInvalidParams, p.Iterations, maxIterations)
	case p.Parallelism == 0:
		return fmt.Errorf("%w: parallelism 0", ErrInvalidParams)
	}
	return nil
}

// deriveKey uses Argon2id to derive a 32-byte encryption key from passphrase and salt.
func deriveKey(passphrase, salt []byte, params EncryptionParams) []byte {
	return argon2.IDKey(
		passphrase,
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		chacha20poly1305.KeySize,
	)
}

// SealKey encrypts a private key with passphrase using Argon2id and
// XChaCha20-Poly1305 and returns it as lowercase hex. The header is
// authenticated along with the key.
func SealKey(key *crypto.PrivateKey, passphrase []byte, params EncryptionParams) (string, error) {
	return sealKey(rand.Reader, key, passphrase, params)
}

func sealKey(rng io.Reader, key *crypto.PrivateKey, passphrase []byte, params EncryptionParams) (string, error) {
	if len(passphrase) == 0 {
		return "", ErrEmptyPassphrase
	}
	if err := params.Validate(); err != nil {
		return "", err
	}

	// Generate random salt.
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rng, salt); err != nil {
		return "", fmt.Errorf("%w: salt: %v", ErrRandomSource, err)
	}

	dk := deriveKey(passphrase, salt, params)
	defer clear(dk)

	aead, err := chacha20poly1305.NewX(dk)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rng, nonce); err != nil {
		return "", fmt.Errorf("%w: nonce: %v", ErrRandomSource, err)
	}

	out := make([]byte, 0, SealedKeySize)
	out = append(out, sealVersion)
	out = append(out, salt...)
	out = binary.LittleEndian.AppendUint32(out, params.Memory)
	out = binary.LittleEndian.AppendUint32(out, params.Iterations)
	out = append(out, params.Parallelism)
	header := append([]byte(nil), out...)
	out = append(out, nonce...)

	plain := key.Bytes()
	defer clear(plain[:])
	out = aead.Seal(out, nonce, plain[:], header)

	return hex.EncodeToString(out), nil
}

// OpenKey decrypts a key sealed by SealKey.
func OpenKey(sealed string, passphrase []byte) (*crypto.PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(sealed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSealedFormat, err)
	}
	if len(raw) != SealedKeySize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrSealedFormat, len(raw), SealedKeySize)
	}
	if raw[0] != sealVersion {
		return nil, fmt.Errorf("%w: unknown version %d", ErrSealedFormat, raw[0])
	}

	// Parse header.
	header := raw[:headerSize]
	salt := raw[1 : 1+SaltSize]
	params := EncryptionParams{
		Memory:      binary.LittleEndian.Uint32(raw[1+SaltSize:]),
		Iterations:  binary.LittleEndian.Uint32(raw[1+SaltSize+4:]),
		Parallelism: raw[1+SaltSize+8],
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSealedFormat, err)
	}

	nonce := raw[headerSize : headerSize+chacha20poly1305.NonceSizeX]
	ciphertext := raw[headerSize+chacha20poly1305.NonceSizeX:]

	dk := deriveKey(passphrase, salt, params)
	defer clear(dk)

	aead, err := chacha20poly1305.NewX(dk)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	plain, err := aead.Open(nil, nonce, ciphertext, header)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	defer clear(plain)

	key, err := crypto.PrivateKeyFromBytes(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSealedFormat, err)
	}
	return key, nil
}

// Seal returns the wallet's private key sealed with passphrase. The result
// is opened again before it is returned.
func (w *Wallet) Seal(passphrase []byte, params EncryptionParams) (string, error) {
	sealed, err := SealKey(w.PrivateKey, passphrase, params)
	if err != nil {
		return "", err
	}
	opened, err := OpenKey(sealed, passphrase)
	if err != nil {
		return "", fmt.Errorf("%w: encrypted key: %v", ErrVerifyFailed, err)
	}
	defer opened.Zero()
	if !opened.Equal(w.PrivateKey) {
		return "", fmt.Errorf("%w: encrypted key opens to a different key", ErrVerifyFailed)
	}
	return sealed, nil
}

// FromSealedKey rebuilds a wallet from a key sealed by SealKey.
func FromSealedKey(sealed string, passphrase []byte, network types.Network) (*Wallet, error) {
	key, err := OpenKey(sealed, passphrase)
	if err != nil {
		return nil, err
	}
	if key.IsZero() {
		return nil, ErrZeroKey
	}
	w := fromKey(key, network)
	log.Wallet.Info().
		Str("address", w.Address.String()).
		Str("network", network.String()).
		Msg("Wallet restored from encrypted key")
	return w, nil
}
