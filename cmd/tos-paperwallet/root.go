package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tos-network/paperwallet/config"
	klog "github.com/tos-network/paperwallet/internal/log"
	"github.com/tos-network/paperwallet/internal/rpcclient"
	"github.com/tos-network/paperwallet/internal/wallet"
	"github.com/tos-network/paperwallet/pkg/types"
)

// cliLogLevel keeps routine info records off the terminal unless asked for.
const cliLogLevel = "warn"

type globalOptions struct {
	network    string
	configFile string
	logLevel   string
	logJSON    bool
	rpcURL     string
}

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	opts   globalOptions
	cfg    *config.Config
	client *rpcclient.Client // nil = derive locally
	stdin  *bufio.Reader
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tos-paperwallet",
		Short: "Create and restore TOS paper wallets",
		Long: `tos-paperwallet - TOS paper wallet generator

Generates wallets from secure randomness and prints the address, private
key and 25-word seed phrase, optionally as a printable sheet with QR codes.
Wallets are never written to disk.

With --rpc the work is delegated to a running tos-paperwalletd, and every
wallet it returns is re-derived and checked locally before it is shown.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.opts.network, "network", "n", "", "network: mainnet or testnet (default from config, else mainnet)")
	pf.StringVar(&a.opts.configFile, "config", "", "config file (key = value format)")
	pf.StringVar(&a.opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default warn)")
	pf.BoolVar(&a.opts.logJSON, "log-json", false, "write logs as JSON")
	pf.StringVar(&a.opts.rpcURL, "rpc", "", "use the tos-paperwalletd service at this URL")

	root.AddCommand(
		a.newGenerateCmd(),
		a.newRestoreCmd(),
		a.newFromKeyCmd(),
		a.newAddressCmd(),
		a.newVerifyCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads config, applies the global flags and initializes logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	network := config.Mainnet
	if a.opts.network != "" {
		n, err := types.ParseNetwork(a.opts.network)
		if err != nil {
			return err
		}
		if n == types.Testnet {
			network = config.Testnet
		}
	}

	cfg, err := config.LoadFromFile(a.opts.configFile, network)
	if err != nil {
		return err
	}
	if a.opts.network != "" {
		cfg.Network = network
	}

	cfg.Log.Level = cliLogLevel
	if a.opts.logLevel != "" {
		cfg.Log.Level = a.opts.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = a.opts.logJSON
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	a.cfg = cfg
	if a.opts.rpcURL != "" {
		a.client = rpcclient.New(a.opts.rpcURL)
		klog.CLI.Debug().Str("rpc", a.opts.rpcURL).Msg("Using remote service")
	}
	return nil
}

// network returns the address network selected by flags and config.
func (a *app) network() types.Network {
	return a.cfg.Network.AddressNetwork()
}

// kdfParams returns the Argon2id parameters for --encrypt.
func (a *app) kdfParams() wallet.EncryptionParams {
	params := wallet.DefaultParams()
	params.Memory = a.cfg.Paper.KDFMemory
	params.Iterations = a.cfg.Paper.KDFIterations
	return params
}

// networkName is the name sent to the remote service.
func (a *app) networkName() string {
	return string(a.cfg.Network)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tos-paperwallet version %s\n", config.Version)
			return nil
		},
	}
}
