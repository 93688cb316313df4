package main

import (
	"fmt"

	"github.com/spf13/cobra"

	klog "github.com/tos-network/paperwallet/internal/log"
	"github.com/tos-network/paperwallet/internal/rpc"
	"github.com/tos-network/paperwallet/internal/wallet"
)

func (a *app) newGenerateCmd() *cobra.Command {
	var (
		count int
		out   outputOptions
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate new paper wallets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 || count > rpc.MaxGenerateCount {
				return fmt.Errorf("--count must be in range [1, %d]", rpc.MaxGenerateCount)
			}
			wallets, err := a.generate(count)
			defer wipeAll(wallets)
			if err != nil {
				return err
			}
			return a.emit(cmd, wallets, out, true)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "c", 1, "number of wallets to generate")
	out.register(cmd)
	return cmd
}

func (a *app) generate(count int) ([]*wallet.Wallet, error) {
	network := a.network()
	wallets := make([]*wallet.Wallet, 0, count)

	if a.client != nil {
		infos, err := a.client.Generate(a.networkName(), count)
		if err != nil {
			return nil, fmt.Errorf("wallet_generate: %w", err)
		}
		if len(infos) != count {
			return nil, fmt.Errorf("%w: got %d wallets, want %d", errRemoteMismatch, len(infos), count)
		}
		for _, info := range infos {
			w, err := checkRemote(info, network, nil)
			if err != nil {
				return wallets, err
			}
			wallets = append(wallets, w)
		}
		return wallets, nil
	}

	gen := wallet.NewKeyGenerator()
	for i := 0; i < count; i++ {
		w, err := gen.NewWallet(network)
		if err != nil {
			return wallets, err
		}
		wallets = append(wallets, w)
	}
	klog.CLI.Debug().Int("count", count).Str("network", network.String()).Msg("Wallets generated")
	return wallets, nil
}
