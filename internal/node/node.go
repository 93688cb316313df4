// Package node runs the paper wallet service: logging, the startup self
// test, and the JSON-RPC server. It can be embedded in any binary.
package node

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tos-network/paperwallet/config"
	klog "github.com/tos-network/paperwallet/internal/log"
	"github.com/tos-network/paperwallet/internal/rpc"
	"github.com/tos-network/paperwallet/internal/wallet"
)

// Node is a fully-initialized wallet service.
type Node struct {
	cfg    *config.Config
	logger zerolog.Logger
	keygen *wallet.KeyGenerator

	// RPC
	rpcServer *rpc.Server

	// Lifecycle
	mu      sync.Mutex
	started time.Time
	stopped bool
}

// Option configures a Node.
type Option func(*Node)

// WithKeyGenerator replaces the key generator used by the self test and
// the RPC server.
func WithKeyGenerator(g *wallet.KeyGenerator) Option {
	return func(n *Node) {
		n.keygen = g
	}
}

// New creates and initializes a new Node. It sets up logging, runs the
// self test and binds the RPC listener. Call Start() to mark the service
// ready.
func New(cfg *config.Config, opts ...Option) (*Node, error) {
	// ── 1. Init logger ──────────────────────────────────────────────
	logFile := expandHome(cfg.Log.File)
	if logFile == "" {
		logsDir := expandHome(cfg.LogsDir())
		if err := os.MkdirAll(logsDir, 0700); err != nil {
			return nil, fmt.Errorf("creating logs dir: %w", err)
		}
		logFile = filepath.Join(logsDir, "tos-paperwalletd.log")
	}
	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, logFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger := klog.WithComponent("node")

	n := &Node{
		cfg:    cfg,
		logger: logger,
		keygen: wallet.NewKeyGenerator(),
	}
	for _, opt := range opts {
		opt(n)
	}

	network := cfg.Network.AddressNetwork()
	logger.Info().
		Str("network", network.String()).
		Str("hrp", network.HRP()).
		Str("version", config.Version).
		Msg("Starting TOS paper wallet service")

	// ── 2. Self test ────────────────────────────────────────────────
	if err := selfTest(n.keygen); err != nil {
		return nil, fmt.Errorf("self test: %w", err)
	}
	logger.Info().Msg("Self test passed")

	// ── 3. RPC server ───────────────────────────────────────────────
	if cfg.RPC.Enabled {
		rpcAddr := fmt.Sprintf("%s:%d", cfg.RPC.Addr, cfg.RPC.Port)
		n.rpcServer = rpc.New(rpcAddr, network, cfg.RPC)
		n.rpcServer.SetKeyGenerator(n.keygen)
		if err := n.rpcServer.Start(); err != nil {
			return nil, fmt.Errorf("start RPC at %s: %w", rpcAddr, err)
		}
		logger.Info().
			Str("addr", n.rpcServer.Addr()).
			Strs("allowed", cfg.RPC.AllowedIPs).
			Strs("cors", cfg.RPC.CORSOrigins).
			Msg("RPC server listening")
	} else {
		logger.Warn().Msg("RPC disabled by config")
	}

	return n, nil
}

// Start marks the service as running.
func (n *Node) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return fmt.Errorf("node already stopped")
	}
	n.started = time.Now()
	n.logger.Info().
		Bool("rpc", n.rpcServer != nil).
		Msg("Service started")
	return nil
}

// Stop shuts the service down. Safe to call more than once.
func (n *Node) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return
	}
	n.stopped = true

	if n.rpcServer != nil {
		if err := n.rpcServer.Stop(); err != nil {
			n.logger.Error().Err(err).Msg("RPC shutdown failed")
		}
	}

	n.logger.Info().Msg("Goodbye!")
}

// RPCAddr returns the address the RPC server is listening on.
func (n *Node) RPCAddr() string {
	if n.rpcServer == nil {
		return ""
	}
	return n.rpcServer.Addr()
}

// Uptime returns the time since Start, or zero before Start.
func (n *Node) Uptime() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.started.IsZero() {
		return 0
	}
	return time.Since(n.started)
}
