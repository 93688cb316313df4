package rpc

import "github.com/tos-network/paperwallet/internal/wallet"

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── Param types ─────────────────────────────────────────────────────────

// GenerateParam is used by wallet_generate. All fields are optional.
type GenerateParam struct {
	Network string `json:"network,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// RestoreParam is used by wallet_restore.
type RestoreParam struct {
	SeedPhrase string `json:"seed_phrase"`
	Network    string `json:"network,omitempty"`
}

// PrivateKeyParam is used by wallet_fromPrivateKey.
type PrivateKeyParam struct {
	PrivateKey string `json:"private_key"`
	Network    string `json:"network,omitempty"`
}

// AddressParam is used by address_validate.
type AddressParam struct {
	Address string `json:"address"`
}

// MnemonicParam is used by mnemonic_validate.
type MnemonicParam struct {
	SeedPhrase string `json:"seed_phrase"`
}

// ── Result types ────────────────────────────────────────────────────────

// WalletResult is a generated or restored wallet.
type WalletResult = wallet.Info

// GenerateResult is returned by wallet_generate.
type GenerateResult struct {
	Wallets []WalletResult `json:"wallets"`
}

// AddressResult is returned by address_validate.
type AddressResult struct {
	Valid     bool   `json:"valid"`
	Network   string `json:"network,omitempty"`
	Type      uint8  `json:"type"`
	PublicKey string `json:"public_key,omitempty"`
	Error     string `json:"error,omitempty"`
}

// MnemonicResult is returned by mnemonic_validate.
type MnemonicResult struct {
	Valid     bool   `json:"valid"`
	WordCount int    `json:"word_count"`
	Error     string `json:"error,omitempty"`
}

// InfoResult is returned by service_getInfo.
type InfoResult struct {
	Version      string   `json:"version"`
	Network      string   `json:"network"`
	AddressHRP   string   `json:"address_hrp"`
	WordlistSize int      `json:"wordlist_size"`
	PhraseLength int      `json:"phrase_length"`
	Methods      []string `json:"methods"`
}
