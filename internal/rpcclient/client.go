// Package rpcclient provides a JSON-RPC 2.0 client for the paper wallet service.
package rpcclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tos-network/paperwallet/internal/rpc"
)

// Client is a JSON-RPC 2.0 HTTP client.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a new RPC client targeting the given endpoint URL.
func New(endpoint string) *Client {
	return NewWithTimeout(endpoint, 10*time.Second)
}

// NewWithTimeout creates a new RPC client with a custom HTTP timeout.
func NewWithTimeout(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// request is a JSON-RPC 2.0 request.
type request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
	ID      int         `json:"id"`
}

// response is a JSON-RPC 2.0 response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      int             `json:"id"`
}

// rpcError is a JSON-RPC 2.0 error.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RPCError is returned when the server responds with an error.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Call invokes a JSON-RPC method and unmarshals the result into the provided pointer.
// If result is nil, the response result is discarded.
func (c *Client) Call(method string, params, result interface{}) error {
	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.http.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var rpcResp response
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return &RPCError{
			Code:    rpcResp.Error.Code,
			Message: rpcResp.Error.Message,
		}
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}

	return nil
}

// Generate asks the service for count fresh wallets. An empty network uses
// the service default.
func (c *Client) Generate(network string, count int) ([]rpc.WalletResult, error) {
	var result rpc.GenerateResult
	if err := c.Call("wallet_generate", rpc.GenerateParam{Network: network, Count: count}, &result); err != nil {
		return nil, err
	}
	return result.Wallets, nil
}

// Restore rebuilds a wallet from a seed phrase.
func (c *Client) Restore(phrase, network string) (*rpc.WalletResult, error) {
	var result rpc.WalletResult
	if err := c.Call("wallet_restore", rpc.RestoreParam{SeedPhrase: phrase, Network: network}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FromPrivateKey rebuilds a wallet from a hex private key.
func (c *Client) FromPrivateKey(key, network string) (*rpc.WalletResult, error) {
	var result rpc.WalletResult
	if err := c.Call("wallet_fromPrivateKey", rpc.PrivateKeyParam{PrivateKey: key, Network: network}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidateAddress decodes an address on the service.
func (c *Client) ValidateAddress(addr string) (*rpc.AddressResult, error) {
	var result rpc.AddressResult
	if err := c.Call("address_validate", rpc.AddressParam{Address: addr}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidateMnemonic checks a seed phrase on the service.
func (c *Client) ValidateMnemonic(phrase string) (*rpc.MnemonicResult, error) {
	var result rpc.MnemonicResult
	if err := c.Call("mnemonic_validate", rpc.MnemonicParam{SeedPhrase: phrase}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Info returns the service description.
func (c *Client) Info() (*rpc.InfoResult, error) {
	var result rpc.InfoResult
	if err := c.Call("service_getInfo", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
