package rpc

import (
	"errors"
	"fmt"

	"github.com/tos-network/paperwallet/config"
	"github.com/tos-network/paperwallet/internal/wallet"
	"github.com/tos-network/paperwallet/pkg/mnemonic"
	"github.com/tos-network/paperwallet/pkg/types"
)

// MaxGenerateCount caps wallet_generate batches.
const MaxGenerateCount = 100

// ── Wallet endpoints ────────────────────────────────────────────────────

func (s *Server) handleWalletGenerate(req *Request) (interface{}, *Error) {
	var params GenerateParam
	if req.Params != nil {
		if err := parseParams(req, &params); err != nil {
			return nil, err
		}
	}

	network, rpcErr := s.resolveNetwork(params.Network)
	if rpcErr != nil {
		return nil, rpcErr
	}

	count := params.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > MaxGenerateCount {
		return nil, &Error{Code: CodeInvalidParams, Message: fmt.Sprintf("count must be in range [1, %d]", MaxGenerateCount)}
	}

	result := &GenerateResult{Wallets: make([]WalletResult, 0, count)}
	for i := 0; i < count; i++ {
		w, err := s.keygen.NewWallet(network)
		if err != nil {
			s.logger.Error().Err(err).Msg("Wallet generation failed")
			return nil, &Error{Code: CodeInternalError, Message: fmt.Sprintf("generate wallet: %v", err)}
		}
		if err := w.Verify(); err != nil {
			return nil, &Error{Code: CodeInternalError, Message: err.Error()}
		}
		result.Wallets = append(result.Wallets, w.Info())
		w.Wipe()
	}
	return result, nil
}

func (s *Server) handleWalletRestore(req *Request) (interface{}, *Error) {
	var params RestoreParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	if params.SeedPhrase == "" {
		return nil, &Error{Code: CodeInvalidParams, Message: "seed_phrase is required"}
	}

	network, rpcErr := s.resolveNetwork(params.Network)
	if rpcErr != nil {
		return nil, rpcErr
	}

	w, err := wallet.Restore(mnemonic.Split(params.SeedPhrase), network)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	defer w.Wipe()
	info := w.Info()
	return &info, nil
}

func (s *Server) handleWalletFromPrivateKey(req *Request) (interface{}, *Error) {
	var params PrivateKeyParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	if params.PrivateKey == "" {
		return nil, &Error{Code: CodeInvalidParams, Message: "private_key is required"}
	}

	network, rpcErr := s.resolveNetwork(params.Network)
	if rpcErr != nil {
		return nil, rpcErr
	}

	w, err := wallet.FromPrivateKey(params.PrivateKey, network)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	defer w.Wipe()
	info := w.Info()
	return &info, nil
}

// ── Validation endpoints ────────────────────────────────────────────────

func (s *Server) handleAddressValidate(req *Request) (interface{}, *Error) {
	var params AddressParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}

	return DescribeAddress(params.Address), nil
}

// DescribeAddress decodes s into an address_validate result. Decoding
// failures are reported in the result rather than as an error.
func DescribeAddress(s string) *AddressResult {
	addr, err := types.ParseAddress(s)
	if err != nil {
		return &AddressResult{Valid: false, Error: err.Error()}
	}
	return &AddressResult{
		Valid:     true,
		Network:   addr.Network.String(),
		Type:      uint8(addr.Type),
		PublicKey: addr.PublicKey.Hex(),
	}
}

func (s *Server) handleMnemonicValidate(req *Request) (interface{}, *Error) {
	var params MnemonicParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}

	return DescribeMnemonic(params.SeedPhrase), nil
}

// DescribeMnemonic checks a seed phrase without revealing the key.
func DescribeMnemonic(phrase string) *MnemonicResult {
	words := mnemonic.Split(phrase)
	result := &MnemonicResult{WordCount: len(words)}

	key, err := mnemonic.WordsToScalar(words)
	if err != nil {
		result.Error = describeMnemonicError(err)
		return result
	}
	key.Zero()
	result.Valid = true
	return result
}

// describeMnemonicError keeps the failing word out of the response for
// everything except unknown words, where the position is what the user
// needs to fix.
func describeMnemonicError(err error) string {
	var unknown *mnemonic.UnknownWordError
	if errors.As(err, &unknown) {
		return fmt.Sprintf("unknown word at position %d", unknown.Position+1)
	}
	return err.Error()
}

// ── Service endpoints ───────────────────────────────────────────────────

func (s *Server) handleServiceGetInfo(_ *Request) (interface{}, *Error) {
	return &InfoResult{
		Version:      config.Version,
		Network:      s.network.String(),
		AddressHRP:   s.network.HRP(),
		WordlistSize: mnemonic.WordlistSize,
		PhraseLength: mnemonic.PhraseLength,
		Methods:      append([]string(nil), methods...),
	}, nil
}
