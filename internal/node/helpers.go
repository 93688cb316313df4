package node

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tos-network/paperwallet/internal/wallet"
	"github.com/tos-network/paperwallet/pkg/crypto"
	"github.com/tos-network/paperwallet/pkg/types"
)

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Known-answer vector checked before the service accepts requests.
// Publicly known; never use it for real funds.
const (
	selfTestKey     = "f164f0cd577136547bd0b939050d596ec683d18341fb957a8f462be2c6b1330f"
	selfTestAddress = "tos14gt7l6j52msqruq6thzc4m3agpmst8a20dynvhzzmsczv8edpvwqqxv22lu"
	selfTestH       = "c84af32eda1e827f3aebdf1dd6f9c8c442881d72bbfed91f05ca78a5460bd859"
)

// selfTest checks the derivation pipeline against a fixed vector and
// round-trips one freshly generated wallet through its seed phrase.
func selfTest(gen *wallet.KeyGenerator) error {
	if h := crypto.GeneratorH().Hex(); h != selfTestH {
		return fmt.Errorf("generator mismatch: %s", h)
	}

	known, err := wallet.FromPrivateKey(selfTestKey, types.Mainnet)
	if err != nil {
		return fmt.Errorf("known vector: %w", err)
	}
	defer known.Wipe()
	if got := known.Address.String(); got != selfTestAddress {
		return fmt.Errorf("known vector address mismatch: %s", got)
	}

	fresh, err := gen.NewWallet(types.Mainnet)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	defer fresh.Wipe()
	return fresh.Verify()
}
