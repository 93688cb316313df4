package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tos-network/paperwallet/internal/rpc"
)

var errInvalidAddress = errors.New("invalid address")

func (a *app) newAddressCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "address <address>",
		Short: "Decode and check an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.describeAddress(args[0])
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(stdout, result); err != nil {
					return err
				}
			} else if result.Valid {
				fmt.Fprintf(stdout, "Valid:      yes\n")
				fmt.Fprintf(stdout, "Network:    %s\n", result.Network)
				fmt.Fprintf(stdout, "Type:       %d\n", result.Type)
				fmt.Fprintf(stdout, "Public key: %s\n", result.PublicKey)
			}
			if !result.Valid {
				return fmt.Errorf("%w: %s", errInvalidAddress, result.Error)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func (a *app) describeAddress(addr string) (*rpc.AddressResult, error) {
	if a.client != nil {
		result, err := a.client.ValidateAddress(addr)
		if err != nil {
			return nil, fmt.Errorf("address_validate: %w", err)
		}
		return result, nil
	}
	return rpc.DescribeAddress(addr), nil
}
