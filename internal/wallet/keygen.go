// Package wallet assembles TOS paper wallets from fresh randomness, a
// mnemonic phrase, or a raw private key.
package wallet

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tos-network/paperwallet/internal/log"
	"github.com/tos-network/paperwallet/pkg/crypto"
)

// ErrRandomSource is returned when the random source cannot be read.
var ErrRandomSource = errors.New("random source failure")

// KeyGenerator draws entropy-checked private keys.
type KeyGenerator struct {
	rand   io.Reader
	logger zerolog.Logger
}

// Option configures a KeyGenerator.
type Option func(*KeyGenerator)

// WithRandom replaces the random source. Tests use it to script draws.
func WithRandom(r io.Reader) Option {
	return func(g *KeyGenerator) {
		g.rand = r
	}
}

// WithLogger replaces the logger used for rejection warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(g *KeyGenerator) {
		g.logger = l
	}
}

// NewKeyGenerator returns a generator reading from crypto/rand.
func NewKeyGenerator(opts ...Option) *KeyGenerator {
	g := &KeyGenerator{
		rand:   rand.Reader,
		logger: log.KeyGen,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a nonzero private key whose encoding has a nonzero byte
// somewhere in positions 4..31, together with its public key. Rejected
// draws are logged and redrawn without limit.
func (g *KeyGenerator) Generate() (*crypto.PrivateKey, *crypto.PublicKey, error) {
	buf := make([]byte, crypto.UniformSize)
	defer clear(buf)

	for {
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
		}

		key, err := crypto.PrivateKeyFromUniformBytes(buf)
		if err != nil {
			return nil, nil, err
		}

		switch {
		case key.IsZero():
			g.logger.Warn().Str("reason", "zero").Msg("Rejected generated scalar, retrying")
			continue
		case key.IsWeak():
			key.Zero()
			g.logger.Warn().Str("reason", "weak").Msg("Rejected generated scalar, retrying")
			continue
		}

		return key, key.PublicKey(), nil
	}
}
