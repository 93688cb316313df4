package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tos-network/paperwallet/pkg/types"
)

func TestDefault(t *testing.T) {
	mainCfg := Default(Mainnet)
	test := Default(Testnet)

	if mainCfg.Network != Mainnet || test.Network != Testnet {
		t.Fatal("wrong network in defaults")
	}
	if mainCfg.RPC.Port == test.RPC.Port {
		t.Error("mainnet and testnet should use different RPC ports")
	}
	if mainCfg.RPC.Addr != "127.0.0.1" {
		t.Errorf("default rpc.addr = %s, want 127.0.0.1", mainCfg.RPC.Addr)
	}
	if err := Validate(mainCfg); err != nil {
		t.Errorf("Validate(mainnet defaults) error: %v", err)
	}
	if err := Validate(test); err != nil {
		t.Errorf("Validate(testnet defaults) error: %v", err)
	}
}

func TestNetworkType_AddressNetwork(t *testing.T) {
	tests := []struct {
		in   NetworkType
		want types.Network
	}{
		{Mainnet, types.Mainnet},
		{Testnet, types.Testnet},
		{"TESTNET", types.Testnet},
		{"", types.Mainnet},
	}
	for _, tt := range tests {
		if got := tt.in.AddressNetwork(); got != tt.want {
			t.Errorf("%q.AddressNetwork() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.conf")
	content := `# comment
network = testnet
rpc.port = 9000
rpc.allowed = 127.0.0.1, 10.0.0.0/8
rpc.cors = "http://localhost:3000"
paper.qrsize = 512
paper.qrdir = '/tmp/qr'
paper.kdf.memory = 1024
paper.kdf.iterations = 2
log.json = yes
unknown.key = ignored
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	cfg := DefaultMainnet()
	if err := ApplyFileConfig(cfg, values); err != nil {
		t.Fatalf("ApplyFileConfig() error: %v", err)
	}

	if cfg.Network != Testnet {
		t.Errorf("network = %s, want testnet", cfg.Network)
	}
	if cfg.RPC.Port != 9000 {
		t.Errorf("rpc.port = %d, want 9000", cfg.RPC.Port)
	}
	if len(cfg.RPC.AllowedIPs) != 2 || cfg.RPC.AllowedIPs[1] != "10.0.0.0/8" {
		t.Errorf("rpc.allowed = %v", cfg.RPC.AllowedIPs)
	}
	if len(cfg.RPC.CORSOrigins) != 1 || cfg.RPC.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("rpc.cors = %v", cfg.RPC.CORSOrigins)
	}
	if cfg.Paper.QRSize != 512 {
		t.Errorf("paper.qrsize = %d, want 512", cfg.Paper.QRSize)
	}
	if cfg.Paper.KDFMemory != 1024 || cfg.Paper.KDFIterations != 2 {
		t.Errorf("paper.kdf = %d/%d, want 1024/2", cfg.Paper.KDFMemory, cfg.Paper.KDFIterations)
	}
	if cfg.QRDir() != "/tmp/qr" {
		t.Errorf("QRDir() = %s, want /tmp/qr", cfg.QRDir())
	}
	if !cfg.Log.JSON {
		t.Error("log.json should be true")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "nope.conf"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("values = %v, want empty", values)
	}
}

func TestLoadFile_BadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.conf")
	os.WriteFile(path, []byte("network testnet\n"), 0644)

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() should fail on a line without '='")
	}
}

func TestApplyFileConfig_BadPort(t *testing.T) {
	cfg := DefaultMainnet()
	err := ApplyFileConfig(cfg, map[string]string{"rpc.port": "abc"})
	if err == nil || !strings.Contains(err.Error(), "rpc.port") {
		t.Errorf("ApplyFileConfig() error = %v, want rpc.port error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"uppercase network", func(c *Config) { c.Network = "Testnet" }, false},
		{"bad network", func(c *Config) { c.Network = "devnet" }, true},
		{"bad port", func(c *Config) { c.RPC.Port = 70000 }, true},
		{"cidr allowed", func(c *Config) { c.RPC.AllowedIPs = []string{"192.168.0.0/16"} }, false},
		{"bad allowed", func(c *Config) { c.RPC.AllowedIPs = []string{"localhost"} }, true},
		{"small qr", func(c *Config) { c.Paper.QRSize = 16 }, true},
		{"kdf memory too small", func(c *Config) { c.Paper.KDFMemory = 8 }, true},
		{"kdf zero iterations", func(c *Config) { c.Paper.KDFIterations = 0 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMainnet()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) should fail")
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags([]string{
		"--testnet",
		"--datadir", "/data",
		"--rpc-port", "9100",
		"--rpc-cors", "http://a, http://b",
		"--log-json",
	})
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	if f.Network != "testnet" {
		t.Errorf("network = %q, want testnet", f.Network)
	}
	if !f.SetLogJSON || !f.LogJSON {
		t.Error("log-json should be set")
	}
	if f.SetRPC {
		t.Error("rpc was not passed explicitly")
	}

	cfg := DefaultMainnet()
	ApplyFlags(cfg, f)
	if cfg.Network != Testnet || cfg.DataDir != "/data" || cfg.RPC.Port != 9100 {
		t.Errorf("ApplyFlags() = %+v", cfg)
	}
	if len(cfg.RPC.CORSOrigins) != 2 {
		t.Errorf("rpc.cors = %v", cfg.RPC.CORSOrigins)
	}
	if !cfg.RPC.Enabled {
		t.Error("rpc should stay enabled when --rpc is not passed")
	}
}

func TestParseFlags_DisableRPC(t *testing.T) {
	f, err := ParseFlags([]string{"--rpc=false"})
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	cfg := DefaultMainnet()
	ApplyFlags(cfg, f)
	if cfg.RPC.Enabled {
		t.Error("--rpc=false should disable the server")
	}
}

func TestParseFlags_Errors(t *testing.T) {
	if _, err := ParseFlags([]string{"--no-such-flag"}); err == nil {
		t.Error("unknown flag should fail")
	}
	if _, err := ParseFlags([]string{"stray", "--testnet"}); err == nil {
		t.Error("flag after positional argument should fail")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, flags, err := Load([]string{"--datadir", dir, "--network", "testnet"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if flags == nil || cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.Network != Testnet || cfg.RPC.Port != 8580 {
		t.Errorf("cfg = %+v", cfg)
	}

	// Default config file and logs dir are created on first start.
	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Errorf("config file not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("logs dir not created: %v", err)
	}

	// The written default file round-trips through the loader.
	values, err := LoadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if values["network"] != "testnet" || values["rpc.port"] != "8580" {
		t.Errorf("default config values = %v", values)
	}
}

func TestLoad_HelpAndVersion(t *testing.T) {
	cfg, flags, err := Load([]string{"--version"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != nil || !flags.Version {
		t.Error("--version should return flags only")
	}
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := LoadFromFile("", Testnet)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("network = %s, want testnet", cfg.Network)
	}

	path := filepath.Join(t.TempDir(), "cli.conf")
	os.WriteFile(path, []byte("paper.qrsize = 300\n"), 0644)
	cfg, err = LoadFromFile(path, Mainnet)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Paper.QRSize != 300 {
		t.Errorf("paper.qrsize = %d, want 300", cfg.Paper.QRSize)
	}
}
