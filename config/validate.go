package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/tos-network/paperwallet/internal/log"
	"github.com/tos-network/paperwallet/internal/paper"
	"github.com/tos-network/paperwallet/internal/wallet"
)

// Validate checks config for obvious operator mistakes. The network name
// is normalized to lower case.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	cfg.Network = NetworkType(strings.ToLower(string(cfg.Network)))
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.RPC.Port < 0 || cfg.RPC.Port > 65535 {
		return fmt.Errorf("rpc.port must be in range [0, 65535]")
	}
	for i, entry := range cfg.RPC.AllowedIPs {
		if _, _, err := net.ParseCIDR(entry); err == nil {
			continue
		}
		if net.ParseIP(entry) == nil {
			return fmt.Errorf("rpc.allowed[%d] %q is not an IP or CIDR", i, entry)
		}
	}
	if cfg.Paper.QRSize < paper.MinQRSize {
		return fmt.Errorf("paper.qrsize must be at least %d", paper.MinQRSize)
	}
	kdf := wallet.DefaultParams()
	kdf.Memory, kdf.Iterations = cfg.Paper.KDFMemory, cfg.Paper.KDFIterations
	if err := kdf.Validate(); err != nil {
		return fmt.Errorf("paper.kdf: %w", err)
	}
	if cfg.Log.Level != "" && !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}
