// Package config handles paper wallet tool configuration.
//
// Settings come from built-in per-network defaults, an optional
// key = value config file, and command-line flags, in that order.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tos-network/paperwallet/pkg/types"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// AddressNetwork maps the config value to the address network.
func (n NetworkType) AddressNetwork() types.Network {
	if NetworkType(strings.ToLower(string(n))) == Testnet {
		return types.Testnet
	}
	return types.Mainnet
}

// ConfigFileName is the config file name inside the data directory.
const ConfigFileName = "tos-paperwallet.conf"

// Config holds runtime configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Local JSON-RPC service
	RPC RPCConfig

	// Paper sheet output
	Paper PaperConfig

	// Logging
	Log LogConfig
}

// RPCConfig holds RPC server settings.
type RPCConfig struct {
	Enabled     bool     `conf:"rpc.enabled"`
	Addr        string   `conf:"rpc.addr"`
	Port        int      `conf:"rpc.port"`
	AllowedIPs  []string `conf:"rpc.allowed"`
	CORSOrigins []string `conf:"rpc.cors"` // Allowed CORS origins ("*" = all).
}

// PaperConfig holds paper sheet and QR settings.
type PaperConfig struct {
	QRSize int    `conf:"paper.qrsize"` // PNG edge length in pixels
	QRDir  string `conf:"paper.qrdir"`  // Empty means <datadir>/qr

	// Argon2id cost for --encrypt.
	KDFMemory     uint32 `conf:"paper.kdf.memory"` // KiB
	KDFIterations uint32 `conf:"paper.kdf.iterations"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.tos-paperwallet
//	macOS:   ~/Library/Application Support/TOSPaperWallet
//	Windows: %APPDATA%\TOSPaperWallet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tos-paperwallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "TOSPaperWallet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "TOSPaperWallet")
		}
		return filepath.Join(home, "AppData", "Roaming", "TOSPaperWallet")
	default:
		return filepath.Join(home, ".tos-paperwallet")
	}
}

// QRDir returns the directory PNG QR codes are written to.
func (c *Config) QRDir() string {
	if c.Paper.QRDir != "" {
		return c.Paper.QRDir
	}
	return filepath.Join(c.DataDir, "qr")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, ConfigFileName)
}
