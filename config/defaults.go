package config

import (
	"github.com/tos-network/paperwallet/internal/paper"
	"github.com/tos-network/paperwallet/internal/wallet"
)

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		RPC: RPCConfig{
			Enabled:    true,
			Addr:       "127.0.0.1",
			Port:       8480,
			AllowedIPs: []string{"127.0.0.1"},
		},
		Paper: PaperConfig{
			QRSize:        paper.DefaultQRSize,
			KDFMemory:     wallet.DefaultParams().Memory,
			KDFIterations: wallet.DefaultParams().Iterations,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.RPC.Port = 8580
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
