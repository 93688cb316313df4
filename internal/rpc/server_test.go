package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tos-network/paperwallet/config"
	klog "github.com/tos-network/paperwallet/internal/log"
	"github.com/tos-network/paperwallet/internal/wallet"
	"github.com/tos-network/paperwallet/pkg/types"
)

// Publicly known test wallet. Never use it for real funds.
const (
	testPrivateKey = "f164f0cd577136547bd0b939050d596ec683d18341fb957a8f462be2c6b1330f"
	testPhrase     = "semifinal nugget hounded went gossip present jive school woozy double jittery tubes irritate unusual input blip academy leisure soil zero tufts upstairs hiker jaws unusual"
	testMainnet    = "tos14gt7l6j52msqruq6thzc4m3agpmst8a20dynvhzzmsczv8edpvwqqxv22lu"
	testTestnet    = "tst14gt7l6j52msqruq6thzc4m3agpmst8a20dynvhzzmsczv8edpvwqqaurths"
	testPublicKey  = "aa17efea5456e001f01a5dc58aee3d4077059faa7b49365c42dc30261f2d0b1c"
)

// testEnv holds a running RPC server.
type testEnv struct {
	server *Server
	url    string
}

func setupTestEnv(t *testing.T) *testEnv {
	return setupTestEnvWithConfig(t, config.RPCConfig{})
}

func setupTestEnvWithConfig(t *testing.T, rpcCfg config.RPCConfig) *testEnv {
	t.Helper()
	klog.Init("error", false, "")

	srv := New("127.0.0.1:0", types.Mainnet, rpcCfg)
	if err := srv.Start(); err != nil {
		t.Fatalf("start rpc: %v", err)
	}
	t.Cleanup(func() { srv.Stop() })

	return &testEnv{
		server: srv,
		url:    fmt.Sprintf("http://%s/", srv.Addr()),
	}
}

func rpcCall(t *testing.T, url, method string, params interface{}) Response {
	t.Helper()
	req := Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", method, err)
	}
	defer resp.Body.Close()

	var rpcResp Response
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rpcResp
}

// decodeResult re-marshals the generic result into target.
func decodeResult(t *testing.T, resp Response, target interface{}) {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("unexpected error: %d %s", resp.Error.Code, resp.Error.Message)
	}
	data, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
}

// ── Wallet endpoints ────────────────────────────────────────────────────

func TestRPC_WalletGenerate_Default(t *testing.T) {
	env := setupTestEnv(t)

	var result GenerateResult
	decodeResult(t, rpcCall(t, env.url, "wallet_generate", nil), &result)

	if len(result.Wallets) != 1 {
		t.Fatalf("wallets = %d, want 1", len(result.Wallets))
	}
	w := result.Wallets[0]
	if w.Network != "Mainnet" || !strings.HasPrefix(w.Address, "tos1") {
		t.Errorf("wallet = %+v", w)
	}
	if len(strings.Fields(w.SeedPhrase)) != 25 {
		t.Errorf("seed phrase has %d words", len(strings.Fields(w.SeedPhrase)))
	}

	// The returned material must restore to the same address.
	restored, err := wallet.Restore(strings.Fields(w.SeedPhrase), types.Mainnet)
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if restored.Address.String() != w.Address || restored.PrivateKeyHex() != w.PrivateKey {
		t.Error("generated wallet does not restore to itself")
	}
}

func TestRPC_WalletGenerate_Batch(t *testing.T) {
	env := setupTestEnv(t)

	var result GenerateResult
	decodeResult(t, rpcCall(t, env.url, "wallet_generate", GenerateParam{Network: "testnet", Count: 5}), &result)

	if len(result.Wallets) != 5 {
		t.Fatalf("wallets = %d, want 5", len(result.Wallets))
	}
	seen := make(map[string]bool)
	for _, w := range result.Wallets {
		if !strings.HasPrefix(w.Address, "tst1") {
			t.Errorf("address %s is not a testnet address", w.Address)
		}
		if seen[w.Address] {
			t.Errorf("duplicate address %s", w.Address)
		}
		seen[w.Address] = true
	}
}

func TestRPC_WalletGenerate_BadParams(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name   string
		params GenerateParam
	}{
		{"count too large", GenerateParam{Count: MaxGenerateCount + 1}},
		{"negative count", GenerateParam{Count: -1}},
		{"unknown network", GenerateParam{Network: "devnet"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := rpcCall(t, env.url, "wallet_generate", tt.params)
			if resp.Error == nil {
				t.Fatal("expected error")
			}
			if resp.Error.Code != CodeInvalidParams {
				t.Errorf("error code = %d, want %d", resp.Error.Code, CodeInvalidParams)
			}
		})
	}
}

func TestRPC_WalletGenerate_RandomFailure(t *testing.T) {
	env := setupTestEnv(t)
	env.server.SetKeyGenerator(wallet.NewKeyGenerator(
		wallet.WithRandom(bytes.NewReader(nil)),
		wallet.WithLogger(zerolog.Nop()),
	))

	resp := rpcCall(t, env.url, "wallet_generate", nil)
	if resp.Error == nil {
		t.Fatal("expected error when the random source fails")
	}
	if resp.Error.Code != CodeInternalError {
		t.Errorf("error code = %d, want %d", resp.Error.Code, CodeInternalError)
	}
}

func TestRPC_WalletRestore(t *testing.T) {
	env := setupTestEnv(t)

	var result WalletResult
	decodeResult(t, rpcCall(t, env.url, "wallet_restore", RestoreParam{SeedPhrase: testPhrase}), &result)

	if result.PrivateKey != testPrivateKey {
		t.Errorf("private key = %s, want %s", result.PrivateKey, testPrivateKey)
	}
	if result.Address != testMainnet {
		t.Errorf("address = %s, want %s", result.Address, testMainnet)
	}
	if result.PublicKey != testPublicKey {
		t.Errorf("public key = %s, want %s", result.PublicKey, testPublicKey)
	}
}

func TestRPC_WalletRestore_Errors(t *testing.T) {
	env := setupTestEnv(t)
	words := strings.Fields(testPhrase)
	words[24] = "abbey"

	tests := []struct {
		name   string
		params interface{}
	}{
		{"missing params", nil},
		{"empty phrase", RestoreParam{}},
		{"checksum mismatch", RestoreParam{SeedPhrase: strings.Join(words, " ")}},
		{"too few words", RestoreParam{SeedPhrase: "abbey abbey abbey"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := rpcCall(t, env.url, "wallet_restore", tt.params)
			if resp.Error == nil {
				t.Fatal("expected error")
			}
			if resp.Error.Code != CodeInvalidParams {
				t.Errorf("error code = %d, want %d", resp.Error.Code, CodeInvalidParams)
			}
		})
	}
}

func TestRPC_WalletFromPrivateKey(t *testing.T) {
	env := setupTestEnv(t)

	var result WalletResult
	params := PrivateKeyParam{PrivateKey: testPrivateKey, Network: "testnet"}
	decodeResult(t, rpcCall(t, env.url, "wallet_fromPrivateKey", params), &result)

	if result.Address != testTestnet {
		t.Errorf("address = %s, want %s", result.Address, testTestnet)
	}
	if result.SeedPhrase != testPhrase {
		t.Errorf("seed phrase = %q, want %q", result.SeedPhrase, testPhrase)
	}
	if result.Network != "Testnet" {
		t.Errorf("network = %s, want Testnet", result.Network)
	}
}

func TestRPC_WalletFromPrivateKey_Zero(t *testing.T) {
	env := setupTestEnv(t)

	resp := rpcCall(t, env.url, "wallet_fromPrivateKey", PrivateKeyParam{PrivateKey: strings.Repeat("00", 32)})
	if resp.Error == nil || resp.Error.Code != CodeInvalidParams {
		t.Fatalf("expected invalid params error, got %+v", resp.Error)
	}
}

// ── Validation endpoints ────────────────────────────────────────────────

func TestRPC_AddressValidate(t *testing.T) {
	env := setupTestEnv(t)

	var valid AddressResult
	decodeResult(t, rpcCall(t, env.url, "address_validate", AddressParam{Address: testTestnet}), &valid)
	if !valid.Valid || valid.Network != "Testnet" || valid.PublicKey != testPublicKey {
		t.Errorf("result = %+v", valid)
	}

	var invalid AddressResult
	decodeResult(t, rpcCall(t, env.url, "address_validate", AddressParam{Address: "xyz1abc"}), &invalid)
	if invalid.Valid || invalid.Error == "" {
		t.Errorf("result = %+v, want invalid with error", invalid)
	}
}

func TestRPC_MnemonicValidate(t *testing.T) {
	env := setupTestEnv(t)

	var valid MnemonicResult
	decodeResult(t, rpcCall(t, env.url, "mnemonic_validate", MnemonicParam{SeedPhrase: testPhrase}), &valid)
	if !valid.Valid || valid.WordCount != 25 {
		t.Errorf("result = %+v", valid)
	}

	words := strings.Fields(testPhrase)[:24]
	words[2] = "notaword"
	var unknown MnemonicResult
	decodeResult(t, rpcCall(t, env.url, "mnemonic_validate", MnemonicParam{SeedPhrase: strings.Join(words, " ")}), &unknown)
	if unknown.Valid {
		t.Error("phrase with unknown word should be invalid")
	}
	if unknown.Error != "unknown word at position 3" {
		t.Errorf("error = %q", unknown.Error)
	}
	if strings.Contains(unknown.Error, "notaword") {
		t.Error("error should not echo the word")
	}

	full := strings.Fields(testPhrase)
	full[2] = "notaword"
	var shifted MnemonicResult
	decodeResult(t, rpcCall(t, env.url, "mnemonic_validate", MnemonicParam{SeedPhrase: strings.Join(full, " ")}), &shifted)
	if shifted.Valid || shifted.Error != "mnemonic checksum word mismatch" {
		t.Errorf("result = %+v, want checksum mismatch", shifted)
	}
}

// ── Service endpoints ───────────────────────────────────────────────────

func TestRPC_ServiceGetInfo(t *testing.T) {
	env := setupTestEnv(t)

	var info InfoResult
	decodeResult(t, rpcCall(t, env.url, "service_getInfo", nil), &info)

	if info.Version != config.Version {
		t.Errorf("version = %s, want %s", info.Version, config.Version)
	}
	if info.Network != "Mainnet" || info.AddressHRP != "tos" {
		t.Errorf("info = %+v", info)
	}
	if info.WordlistSize != 1626 || info.PhraseLength != 25 {
		t.Errorf("info = %+v", info)
	}
	if len(info.Methods) != len(methods) {
		t.Errorf("methods = %v", info.Methods)
	}
}

// ── Protocol ────────────────────────────────────────────────────────────

func TestRPC_MethodNotFound(t *testing.T) {
	env := setupTestEnv(t)

	resp := rpcCall(t, env.url, "nonexistent_method", nil)
	if resp.Error == nil {
		t.Fatal("expected error for unknown method")
	}
	if resp.Error.Code != CodeMethodNotFound {
		t.Errorf("error code = %d, want %d", resp.Error.Code, CodeMethodNotFound)
	}
}

func TestRPC_InvalidParams(t *testing.T) {
	env := setupTestEnv(t)

	// address_validate requires params.
	resp := rpcCall(t, env.url, "address_validate", nil)
	if resp.Error == nil {
		t.Fatal("expected error for missing params")
	}
	if resp.Error.Code != CodeInvalidParams {
		t.Errorf("error code = %d, want %d", resp.Error.Code, CodeInvalidParams)
	}
}

func TestRPC_InvalidJSON(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Post(env.url, "application/json", bytes.NewReader([]byte("not json")))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp Response
	json.NewDecoder(resp.Body).Decode(&rpcResp)

	if rpcResp.Error == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if rpcResp.Error.Code != CodeParseError {
		t.Errorf("error code = %d, want %d", rpcResp.Error.Code, CodeParseError)
	}
}

func TestRPC_WrongVersion(t *testing.T) {
	env := setupTestEnv(t)

	body := []byte(`{"jsonrpc":"1.0","method":"service_getInfo","id":7}`)
	resp, err := http.Post(env.url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp Response
	json.NewDecoder(resp.Body).Decode(&rpcResp)
	if rpcResp.Error == nil || rpcResp.Error.Code != CodeInvalidRequest {
		t.Fatalf("expected invalid request error, got %+v", rpcResp.Error)
	}
}

func TestRPC_GetMethodNotAllowed(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Get(env.url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp Response
	json.NewDecoder(resp.Body).Decode(&rpcResp)

	if rpcResp.Error == nil {
		t.Fatal("expected error for GET request")
	}
	if rpcResp.Error.Code != CodeInvalidRequest {
		t.Errorf("error code = %d, want %d", rpcResp.Error.Code, CodeInvalidRequest)
	}
}

func TestRPC_NoStoreHeader(t *testing.T) {
	env := setupTestEnv(t)

	body, _ := json.Marshal(Request{JSONRPC: "2.0", Method: "wallet_generate", ID: 1})
	resp, err := http.Post(env.url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if got := resp.Header.Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestRPC_BodySizeLimit(t *testing.T) {
	env := setupTestEnv(t)

	// Build a request body that exceeds 1 MB (maxBodySize = 1 << 20).
	bigPayload := bytes.Repeat([]byte{'A'}, (1<<20)+1024)

	resp, err := http.Post(env.url, "application/json", bytes.NewReader(bigPayload))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp Response
	json.NewDecoder(resp.Body).Decode(&rpcResp)

	if rpcResp.Error == nil {
		t.Fatal("expected error for oversized request body")
	}
	if rpcResp.Error.Code != CodeInvalidRequest {
		t.Errorf("error code = %d, want %d", rpcResp.Error.Code, CodeInvalidRequest)
	}
}

// --- IP filter ---

func TestRPC_IPFilter_Allowed(t *testing.T) {
	env := setupTestEnvWithConfig(t, config.RPCConfig{
		AllowedIPs: []string{"127.0.0.1"},
	})

	resp := rpcCall(t, env.url, "service_getInfo", nil)
	if resp.Error != nil {
		t.Errorf("expected success for 127.0.0.1, got error: %s", resp.Error.Message)
	}
}

func TestRPC_IPFilter_Blocked(t *testing.T) {
	env := setupTestEnvWithConfig(t, config.RPCConfig{
		AllowedIPs: []string{"10.0.0.0/8"}, // Only allow 10.x.x.x.
	})

	// Request comes from 127.0.0.1 → should be blocked.
	req := Request{JSONRPC: "2.0", Method: "service_getInfo", ID: 1}
	body, _ := json.Marshal(req)
	resp, err := http.Post(env.url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
}

func TestRPC_IPFilter_Empty_AllowsAll(t *testing.T) {
	env := setupTestEnvWithConfig(t, config.RPCConfig{
		AllowedIPs: nil, // Empty = allow all.
	})

	resp := rpcCall(t, env.url, "service_getInfo", nil)
	if resp.Error != nil {
		t.Errorf("empty AllowedIPs should allow all: %s", resp.Error.Message)
	}
}

// --- CORS ---

func corsRequest(t *testing.T, url, method, origin string) *http.Response {
	t.Helper()
	var body io.Reader
	if method == http.MethodPost {
		data, _ := json.Marshal(Request{JSONRPC: "2.0", Method: "service_getInfo", ID: 1})
		body = bytes.NewReader(data)
	}
	httpReq, _ := http.NewRequest(method, url, body)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Origin", origin)

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		t.Fatalf("%s: %v", method, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRPC_CORS_WildcardOrigin(t *testing.T) {
	env := setupTestEnvWithConfig(t, config.RPCConfig{
		CORSOrigins: []string{"*"},
	})

	resp := corsRequest(t, env.url, http.MethodPost, "http://example.com")
	if origin := resp.Header.Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("CORS origin = %q, want %q", origin, "*")
	}
}

func TestRPC_CORS_SpecificOrigin(t *testing.T) {
	env := setupTestEnvWithConfig(t, config.RPCConfig{
		CORSOrigins: []string{"http://localhost:3000"},
	})

	resp := corsRequest(t, env.url, http.MethodPost, "http://localhost:3000")
	if origin := resp.Header.Get("Access-Control-Allow-Origin"); origin != "http://localhost:3000" {
		t.Errorf("CORS origin = %q, want %q", origin, "http://localhost:3000")
	}

	resp2 := corsRequest(t, env.url, http.MethodPost, "http://evil.com")
	if origin := resp2.Header.Get("Access-Control-Allow-Origin"); origin != "" {
		t.Errorf("non-matching origin should have no CORS header, got %q", origin)
	}
}

func TestRPC_CORS_Preflight(t *testing.T) {
	env := setupTestEnvWithConfig(t, config.RPCConfig{
		CORSOrigins: []string{"*"},
	})

	resp := corsRequest(t, env.url, http.MethodOptions, "http://example.com")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Methods") == "" {
		t.Error("preflight should have Allow-Methods header")
	}
}

func TestRPC_CORS_Disabled(t *testing.T) {
	env := setupTestEnv(t)

	resp := corsRequest(t, env.url, http.MethodPost, "http://example.com")
	if origin := resp.Header.Get("Access-Control-Allow-Origin"); origin != "" {
		t.Errorf("disabled CORS should have no origin header, got %q", origin)
	}
}
