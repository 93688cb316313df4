package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tos-network/paperwallet/internal/rpc"
	"github.com/tos-network/paperwallet/pkg/types"
)

var (
	errInvalidPhrase   = errors.New("invalid seed phrase")
	errAddressMismatch = errors.New("seed phrase does not belong to address")
)

func (a *app) newVerifyCmd() *cobra.Command {
	var words, address string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a seed phrase, optionally against an address",
		Long: `Check that a seed phrase is well formed and that its checksum word
matches. With --address the phrase is also restored and its address is
compared, which confirms a paper sheet was copied correctly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phrase, err := a.secretArg(cmd, words, "Enter seed phrase: ")
			if err != nil {
				return err
			}

			result, err := a.describeMnemonic(phrase)
			if err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("%w: %s", errInvalidPhrase, result.Error)
			}

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Seed phrase OK (%d words)\n", result.WordCount)
			if address == "" {
				return nil
			}

			want, err := types.ParseAddress(address)
			if err != nil {
				return fmt.Errorf("%w: %v", errInvalidAddress, err)
			}
			w, err := a.restore(phrase)
			if err != nil {
				return err
			}
			defer w.Wipe()
			if !w.PublicKey().Equal(want.PublicKey) {
				return fmt.Errorf("%w: derived %s", errAddressMismatch, w.Address)
			}
			fmt.Fprintf(stdout, "Address OK: %s (%s)\n", want, want.Network)
			return nil
		},
	}
	cmd.Flags().StringVarP(&words, "words", "w", "", "seed phrase (prompted for when omitted)")
	cmd.Flags().StringVarP(&address, "address", "a", "", "address the phrase should restore to")
	return cmd
}

func (a *app) describeMnemonic(phrase string) (*rpc.MnemonicResult, error) {
	if a.client != nil {
		result, err := a.client.ValidateMnemonic(phrase)
		if err != nil {
			return nil, fmt.Errorf("mnemonic_validate: %w", err)
		}
		return result, nil
	}
	return rpc.DescribeMnemonic(phrase), nil
}
