package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tos-network/paperwallet/internal/wallet"
	"github.com/tos-network/paperwallet/pkg/crypto"
	"github.com/tos-network/paperwallet/pkg/mnemonic"
)

func (a *app) newRestoreCmd() *cobra.Command {
	var (
		words string
		out   outputOptions
	)
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore a wallet from its seed phrase",
		Long: `Restore a wallet from its 25-word seed phrase (24 words are accepted
and the checksum word is recomputed). Without --words the phrase is read
from the terminal with echo disabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phrase, err := a.secretArg(cmd, words, "Enter seed phrase: ")
			if err != nil {
				return err
			}
			w, err := a.restore(phrase)
			if err != nil {
				return err
			}
			defer w.Wipe()
			return a.emit(cmd, []*wallet.Wallet{w}, out, false)
		},
	}
	cmd.Flags().StringVarP(&words, "words", "w", "", "seed phrase (prompted for when omitted)")
	out.register(cmd)
	return cmd
}

func (a *app) restore(phrase string) (*wallet.Wallet, error) {
	if a.client != nil {
		want, err := mnemonic.WordsToScalar(mnemonic.Split(phrase))
		if err != nil {
			return nil, fmt.Errorf("restore wallet: %w", err)
		}
		defer want.Zero()
		info, err := a.client.Restore(phrase, a.networkName())
		if err != nil {
			return nil, fmt.Errorf("wallet_restore: %w", err)
		}
		return checkRemote(*info, a.network(), want)
	}
	return wallet.Restore(mnemonic.Split(phrase), a.network())
}

func (a *app) newFromKeyCmd() *cobra.Command {
	var (
		key       string
		encrypted bool
		out       outputOptions
	)
	cmd := &cobra.Command{
		Use:   "from-key",
		Short: "Restore a wallet from its hex private key",
		Long: `Restore a wallet from its hex private key. With --encrypted the key is
one sealed by --encrypt and the passphrase is prompted for; it is always
opened locally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hexKey, err := a.secretArg(cmd, key, "Enter private key (hex): ")
			if err != nil {
				return err
			}
			if encrypted {
				if hexKey, err = a.openSealed(cmd, hexKey); err != nil {
					return err
				}
			}
			w, err := a.fromKey(hexKey)
			if err != nil {
				return err
			}
			defer w.Wipe()
			return a.emit(cmd, []*wallet.Wallet{w}, out, false)
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "64 hex character private key (prompted for when omitted)")
	cmd.Flags().BoolVar(&encrypted, "encrypted", false, "the key was sealed with a passphrase by --encrypt")
	out.register(cmd)
	return cmd
}

func (a *app) fromKey(hexKey string) (*wallet.Wallet, error) {
	if a.client != nil {
		want, err := crypto.PrivateKeyFromHex(strings.TrimSpace(hexKey))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		defer want.Zero()
		info, err := a.client.FromPrivateKey(hexKey, a.networkName())
		if err != nil {
			return nil, fmt.Errorf("wallet_fromPrivateKey: %w", err)
		}
		return checkRemote(*info, a.network(), want)
	}
	return wallet.FromPrivateKey(hexKey, a.network())
}

// openSealed decrypts a sealed key and returns the plain hex key.
func (a *app) openSealed(cmd *cobra.Command, sealed string) (string, error) {
	pass, err := a.readSecret(cmd, "Enter passphrase: ")
	if err != nil {
		return "", err
	}
	key, err := wallet.OpenKey(sealed, []byte(pass))
	if err != nil {
		return "", err
	}
	defer key.Zero()
	return key.Hex(), nil
}
