// Package types defines the TOS network identifiers and the bech32 address format.
package types

import (
	"fmt"
	"strings"
)

// Address HRP (human-readable part) constants for bech32 encoding.
const (
	MainnetHRP = "tos"
	TestnetHRP = "tst"
)

// Network selects the address HRP.
type Network uint8

const (
	Mainnet Network = iota
	Testnet
)

// String returns the display label ("Mainnet" or "Testnet").
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "Mainnet"
	case Testnet:
		return "Testnet"
	default:
		return fmt.Sprintf("Network(%d)", uint8(n))
	}
}

// HRP returns the bech32 human-readable part for the network.
func (n Network) HRP() string {
	if n == Testnet {
		return TestnetHRP
	}
	return MainnetHRP
}

// IsMainnet reports whether n is Mainnet.
func (n Network) IsMainnet() bool {
	return n == Mainnet
}

// ParseNetwork parses "mainnet" or "testnet" (any case).
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "main":
		return Mainnet, nil
	case "testnet", "test":
		return Testnet, nil
	default:
		return 0, fmt.Errorf("network must be mainnet or testnet, got %q", s)
	}
}

// NetworkFromHRP maps a bech32 HRP to its network.
func NetworkFromHRP(hrp string) (Network, error) {
	switch hrp {
	case MainnetHRP:
		return Mainnet, nil
	case TestnetHRP:
		return Testnet, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNetwork, hrp)
	}
}

// MarshalText encodes the network as its display label.
func (n Network) MarshalText() ([]byte, error) {
	if n != Mainnet && n != Testnet {
		return nil, fmt.Errorf("invalid network %d", uint8(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText accepts "Mainnet"/"Testnet" in any case.
func (n *Network) UnmarshalText(b []byte) error {
	parsed, err := ParseNetwork(string(b))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
