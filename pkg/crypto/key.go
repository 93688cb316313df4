// Package crypto provides the ristretto255 key primitives for TOS wallets.
package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gtank/ristretto255"
)

// Key sizes in bytes.
const (
	PrivateKeySize = 32
	PublicKeySize  = 32
	// UniformSize is the input length for wide reduction into the scalar field.
	UniformSize = 64
)

// ErrInvalidPoint is returned when bytes are not a canonical ristretto255 encoding.
var ErrInvalidPoint = errors.New("invalid ristretto255 point")

// PrivateKey is a scalar modulo the ristretto255 group order.
type PrivateKey struct {
	s ristretto255.Scalar
}

// PrivateKeyFromUniformBytes reduces 64 uniformly random bytes into a scalar.
func PrivateKeyFromUniformBytes(b []byte) (*PrivateKey, error) {
	if len(b) != UniformSize {
		return nil, fmt.Errorf("uniform input must be %d bytes, got %d", UniformSize, len(b))
	}
	pk := &PrivateKey{}
	if _, err := pk.s.SetUniformBytes(b); err != nil {
		return nil, fmt.Errorf("reduce scalar: %w", err)
	}
	return pk, nil
}

// PrivateKeyFromBytes interprets 32 little-endian bytes as an integer and
// reduces it modulo the group order. Non-canonical input is accepted.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", PrivateKeySize, len(b))
	}
	var wide [UniformSize]byte
	copy(wide[:], b)
	return PrivateKeyFromUniformBytes(wide[:])
}

// PrivateKeyFromHex decodes a 64-character hex private key.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return PrivateKeyFromBytes(b)
}

// Bytes returns the canonical 32-byte little-endian encoding.
func (pk *PrivateKey) Bytes() [PrivateKeySize]byte {
	var out [PrivateKeySize]byte
	copy(out[:], pk.s.Bytes())
	return out
}

// Hex returns the lowercase hex encoding of Bytes.
func (pk *PrivateKey) Hex() string {
	b := pk.Bytes()
	return hex.EncodeToString(b[:])
}

// IsZero reports whether the scalar is zero.
func (pk *PrivateKey) IsZero() bool {
	var z ristretto255.Scalar
	return pk.s.Equal(&z) == 1
}

// IsWeak reports whether the scalar is below 2^32, i.e. bytes 4..31 of
// its encoding are all zero.
func (pk *PrivateKey) IsWeak() bool {
	b := pk.Bytes()
	for _, v := range b[4:] {
		if v != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether two private keys hold the same scalar.
func (pk *PrivateKey) Equal(other *PrivateKey) bool {
	return pk.s.Equal(&other.s) == 1
}

// PublicKey derives the public point H·s.
func (pk *PrivateKey) PublicKey() *PublicKey {
	e := ristretto255.NewIdentityElement()
	e.ScalarMult(&pk.s, generatorH)
	return &PublicKey{e: e}
}

// Zero overwrites the scalar.
func (pk *PrivateKey) Zero() {
	pk.s.Zero()
}

// PublicKey is a ristretto255 group element.
type PublicKey struct {
	e *ristretto255.Element
}

// PublicKeyFromBytes decompresses a 32-byte encoded point.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPoint, PublicKeySize, len(b))
	}
	e := ristretto255.NewIdentityElement()
	if _, err := e.SetCanonicalBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return &PublicKey{e: e}, nil
}

// Bytes returns the compressed 32-byte encoding.
func (p *PublicKey) Bytes() [PublicKeySize]byte {
	var out [PublicKeySize]byte
	copy(out[:], p.e.Bytes())
	return out
}

// Hex returns the lowercase hex encoding of Bytes.
func (p *PublicKey) Hex() string {
	b := p.Bytes()
	return hex.EncodeToString(b[:])
}

// Equal reports whether two public keys are the same group element.
func (p *PublicKey) Equal(other *PublicKey) bool {
	return p.e.Equal(other.e) == 1
}
