package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tos-network/paperwallet/internal/log"
	"github.com/tos-network/paperwallet/pkg/crypto"
	"github.com/tos-network/paperwallet/pkg/mnemonic"
	"github.com/tos-network/paperwallet/pkg/types"
)

// Wallet errors.
var (
	ErrZeroKey      = errors.New("private key is zero")
	ErrVerifyFailed = errors.New("wallet self-check failed")
)

// Wallet is a complete paper wallet identity.
type Wallet struct {
	Address    types.Address
	PrivateKey *crypto.PrivateKey
	SeedPhrase []string
	Network    types.Network
}

// Info is the printable form of a wallet.
type Info struct {
	Address     string `json:"address"`
	PrivateKey  string `json:"private_key,omitempty"`
	SeedPhrase  string `json:"seed_phrase,omitempty"`
	Network     string `json:"network"`
	PublicKey   string `json:"public_key"`
	Fingerprint string `json:"fingerprint"`
}

// Generate creates a wallet from fresh randomness using the default generator.
func Generate(network types.Network) (*Wallet, error) {
	return NewKeyGenerator().NewWallet(network)
}

// NewWallet creates a wallet from a freshly generated key.
func (g *KeyGenerator) NewWallet(network types.Network) (*Wallet, error) {
	key, _, err := g.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	w := fromKey(key, network)
	log.Wallet.Info().
		Str("address", w.Address.String()).
		Str("network", network.String()).
		Msg("Wallet generated")
	return w, nil
}

// Restore rebuilds a wallet from a 24- or 25-word phrase. The recovered
// seed phrase is re-encoded, so a 24-word input gains its checksum word.
func Restore(words []string, network types.Network) (*Wallet, error) {
	key, err := mnemonic.WordsToScalar(words)
	if err != nil {
		return nil, fmt.Errorf("restore wallet: %w", err)
	}
	w := fromKey(key, network)
	log.Wallet.Info().
		Str("address", w.Address.String()).
		Str("network", network.String()).
		Msg("Wallet restored from seed phrase")
	return w, nil
}

// FromPrivateKey rebuilds a wallet from a 64-character hex private key.
// The key is reduced modulo the group order and must not be zero.
func FromPrivateKey(hexKey string, network types.Network) (*Wallet, error) {
	key, err := crypto.PrivateKeyFromHex(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	if key.IsZero() {
		return nil, ErrZeroKey
	}
	w := fromKey(key, network)
	log.Wallet.Info().
		Str("address", w.Address.String()).
		Str("network", network.String()).
		Msg("Wallet restored from private key")
	return w, nil
}

func fromKey(key *crypto.PrivateKey, network types.Network) *Wallet {
	return &Wallet{
		Address:    types.NewAddress(key.PublicKey(), network),
		PrivateKey: key,
		SeedPhrase: mnemonic.ScalarToWords(key),
		Network:    network,
	}
}

// PublicKey returns the wallet's public key.
func (w *Wallet) PublicKey() *crypto.PublicKey {
	return w.Address.PublicKey
}

// PrivateKeyHex returns the private key as 64 lowercase hex characters.
func (w *Wallet) PrivateKeyHex() string {
	return w.PrivateKey.Hex()
}

// Phrase returns the seed phrase joined by single spaces.
func (w *Wallet) Phrase() string {
	return mnemonic.Join(w.SeedPhrase)
}

// Fingerprint returns the short public key digest printed on the sheet.
func (w *Wallet) Fingerprint() string {
	return crypto.Fingerprint(w.PublicKey())
}

// Info returns the printable form of the wallet.
func (w *Wallet) Info() Info {
	return Info{
		Address:     w.Address.String(),
		PrivateKey:  w.PrivateKeyHex(),
		SeedPhrase:  w.Phrase(),
		Network:     w.Network.String(),
		PublicKey:   w.PublicKey().Hex(),
		Fingerprint: w.Fingerprint(),
	}
}

// Verify decodes the seed phrase and the address again and checks that
// they describe the same key. A printed sheet should only be trusted after
// Verify returns nil.
func (w *Wallet) Verify() error {
	key, err := mnemonic.WordsToScalar(w.SeedPhrase)
	if err != nil {
		return fmt.Errorf("%w: seed phrase: %v", ErrVerifyFailed, err)
	}
	if !key.Equal(w.PrivateKey) {
		return fmt.Errorf("%w: seed phrase decodes to a different key", ErrVerifyFailed)
	}

	addr, err := types.ParseAddress(w.Address.String())
	if err != nil {
		return fmt.Errorf("%w: address: %v", ErrVerifyFailed, err)
	}
	if addr.Network != w.Network {
		return fmt.Errorf("%w: address network %s, want %s", ErrVerifyFailed, addr.Network, w.Network)
	}
	if !addr.PublicKey.Equal(key.PublicKey()) {
		return fmt.Errorf("%w: address does not match private key", ErrVerifyFailed)
	}
	return nil
}

// Wipe zeroes the private key and drops the seed phrase.
func (w *Wallet) Wipe() {
	if w.PrivateKey != nil {
		w.PrivateKey.Zero()
	}
	for i := range w.SeedPhrase {
		w.SeedPhrase[i] = ""
	}
	w.SeedPhrase = nil
}
