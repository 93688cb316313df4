package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/tos-network/paperwallet/pkg/crypto"
)

// AddressPayloadSize is the decoded address length: compressed point plus type tag.
const AddressPayloadSize = crypto.PublicKeySize + 1

// AddressType tags how the payload after the public key is interpreted.
type AddressType uint8

// AddressTypeNormal is a plain address with no embedded data.
const AddressTypeNormal AddressType = 0

// Address decode errors.
var (
	ErrInvalidBech32          = errors.New("invalid bech32 string")
	ErrUnknownNetwork         = errors.New("unknown address network")
	ErrInvalidPayloadLength   = errors.New("invalid address payload length")
	ErrInvalidPoint           = crypto.ErrInvalidPoint
	ErrUnsupportedAddressType = errors.New("unsupported address type")
)

// Address is a public key bound to a network.
type Address struct {
	PublicKey *crypto.PublicKey
	Network   Network
	Type      AddressType
}

// NewAddress returns a normal address for pub on network.
func NewAddress(pub *crypto.PublicKey, network Network) Address {
	return Address{PublicKey: pub, Network: network, Type: AddressTypeNormal}
}

// Payload returns the 33 bytes that are bech32-encoded: point ‖ type tag.
func (a Address) Payload() []byte {
	pub := a.PublicKey.Bytes()
	out := make([]byte, 0, AddressPayloadSize)
	out = append(out, pub[:]...)
	return append(out, byte(a.Type))
}

// Encode returns the bech32 form, e.g. "tos1...".
func (a Address) Encode() (string, error) {
	conv, err := bech32.ConvertBits(a.Payload(), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("bech32: convert bits: %w", err)
	}
	s, err := bech32.Encode(a.Network.HRP(), conv)
	if err != nil {
		return "", fmt.Errorf("bech32: encode: %w", err)
	}
	return s, nil
}

// String returns the bech32-encoded address.
func (a Address) String() string {
	s, err := a.Encode()
	if err != nil {
		// Fallback to hex if encoding fails (should never happen).
		return a.Network.HRP() + ":" + a.PublicKey.Hex()
	}
	return s
}

// MarshalJSON encodes the address as a bech32 string.
func (a Address) MarshalJSON() ([]byte, error) {
	s, err := a.Encode()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes a bech32 address string.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress decodes a bech32 address. Only the original bech32 checksum
// is accepted, the HRP must be "tos" or "tst", and the payload must be a
// valid point followed by a normal type tag.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("%w: empty address", ErrInvalidBech32)
	}

	hrp, data5, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidBech32, err)
	}
	if version != bech32.Version0 {
		return Address{}, fmt.Errorf("%w: bech32m checksum", ErrInvalidBech32)
	}

	network, err := NetworkFromHRP(hrp)
	if err != nil {
		return Address{}, err
	}

	payload, err := bech32.ConvertBits(data5, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("%w: convert bits: %v", ErrInvalidBech32, err)
	}
	if len(payload) != AddressPayloadSize {
		return Address{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPayloadLength, len(payload), AddressPayloadSize)
	}

	pub, err := crypto.PublicKeyFromBytes(payload[:crypto.PublicKeySize])
	if err != nil {
		return Address{}, err
	}

	typ := AddressType(payload[crypto.PublicKeySize])
	if typ != AddressTypeNormal {
		return Address{}, fmt.Errorf("%w: %d", ErrUnsupportedAddressType, typ)
	}

	return Address{PublicKey: pub, Network: network, Type: typ}, nil
}

// IsValidAddress reports whether s parses as an address.
func IsValidAddress(s string) bool {
	_, err := ParseAddress(s)
	return err == nil
}
