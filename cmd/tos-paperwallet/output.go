package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tos-network/paperwallet/internal/paper"
	"github.com/tos-network/paperwallet/internal/wallet"
	"github.com/tos-network/paperwallet/pkg/crypto"
	"github.com/tos-network/paperwallet/pkg/types"
)

// errRemoteMismatch is returned when a wallet from the service does not
// re-derive to the same address and seed phrase locally.
var errRemoteMismatch = errors.New("service returned an inconsistent wallet")

// outputOptions selects how wallets are shown.
type outputOptions struct {
	json    bool
	paper   bool
	qr      bool
	png     bool
	qrDir   string
	encrypt bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&o.json, "json", false, "print JSON instead of text")
	f.BoolVar(&o.paper, "paper", false, "print a printable paper sheet")
	f.BoolVar(&o.qr, "qr", false, "include terminal QR codes")
	f.BoolVar(&o.png, "png", false, "write PNG QR codes to --qr-dir")
	f.StringVar(&o.qrDir, "qr-dir", "", "directory for PNG QR codes (default paper.qrdir)")
	f.BoolVar(&o.encrypt, "encrypt", false, "show the private key only encrypted with a passphrase")
}

// walletOutput is the JSON form of one wallet.
type walletOutput struct {
	wallet.Info
	EncryptedKey string         `json:"encrypted_key,omitempty"`
	QR           *paper.QRFiles `json:"qr,omitempty"`
}

// checkRemote re-derives a service wallet from its private key and makes
// sure every field the service sent matches. When want is non-nil the
// wallet must also hold that key.
func checkRemote(info wallet.Info, network types.Network, want *crypto.PrivateKey) (*wallet.Wallet, error) {
	w, err := wallet.FromPrivateKey(info.PrivateKey, network)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errRemoteMismatch, err)
	}
	local := w.Info()
	switch {
	case want != nil && !w.PrivateKey.Equal(want):
		err = fmt.Errorf("%w: wallet %s is not the requested key", errRemoteMismatch, info.Address)
	case local.Address != info.Address:
		err = fmt.Errorf("%w: address %s, derived %s", errRemoteMismatch, info.Address, local.Address)
	case local.SeedPhrase != info.SeedPhrase:
		err = fmt.Errorf("%w: seed phrase differs", errRemoteMismatch)
	case local.Network != info.Network:
		err = fmt.Errorf("%w: network %s, want %s", errRemoteMismatch, info.Network, local.Network)
	}
	if err != nil {
		w.Wipe()
		return nil, err
	}
	return w, nil
}

// emit verifies and prints wallets. asList forces a JSON array even for a
// single wallet.
func (a *app) emit(cmd *cobra.Command, wallets []*wallet.Wallet, o outputOptions, asList bool) error {
	for _, w := range wallets {
		if err := w.Verify(); err != nil {
			return err
		}
	}

	var passphrase []byte
	if o.encrypt {
		var err error
		if passphrase, err = a.readNewPassphrase(cmd); err != nil {
			return err
		}
		defer clear(passphrase)
	}

	qrDir := o.qrDir
	if qrDir == "" {
		qrDir = a.cfg.QRDir()
	}

	outputs := make([]walletOutput, 0, len(wallets))
	for _, w := range wallets {
		out := walletOutput{Info: w.Info()}
		if o.encrypt {
			sealed, err := w.Seal(passphrase, a.kdfParams())
			if err != nil {
				return err
			}
			out.EncryptedKey = sealed
			out.PrivateKey, out.SeedPhrase = "", ""
		}
		if o.png {
			files, err := paper.WriteQRFiles(w, qrDir, a.cfg.Paper.QRSize, out.EncryptedKey)
			if err != nil {
				return err
			}
			out.QR = &files
		}
		outputs = append(outputs, out)
	}

	stdout := cmd.OutOrStdout()
	if o.json {
		if asList || len(outputs) != 1 {
			return writeJSON(stdout, outputs)
		}
		return writeJSON(stdout, outputs[0])
	}

	for i, w := range wallets {
		if len(wallets) > 1 {
			fmt.Fprintf(stdout, "Wallet %d of %d\n", i+1, len(wallets))
		}
		if o.paper {
			sheet, err := paper.Render(w, paper.Options{QR: o.qr, EncryptedKey: outputs[i].EncryptedKey})
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, sheet)
		} else if err := writeText(stdout, outputs[i], o.qr); err != nil {
			return err
		}
		if files := outputs[i].QR; files != nil {
			fmt.Fprintf(stdout, "QR codes:    %s\n             %s%s\n", files.Address, files.PrivateKey, files.EncryptedKey)
		}
		if i < len(wallets)-1 {
			fmt.Fprintln(stdout)
		}
	}
	return nil
}

func writeText(w io.Writer, out walletOutput, qr bool) error {
	fmt.Fprintf(w, "Network:     %s\n", out.Network)
	fmt.Fprintf(w, "Address:     %s\n", out.Address)
	fmt.Fprintf(w, "Public key:  %s\n", out.PublicKey)
	secretLabel, secret := "Private key", out.PrivateKey
	if out.EncryptedKey != "" {
		secretLabel, secret = "Encrypted key", out.EncryptedKey
		fmt.Fprintf(w, "Encrypted:   %s\n", out.EncryptedKey)
	} else {
		fmt.Fprintf(w, "Private key: %s\n", out.PrivateKey)
		fmt.Fprintf(w, "Seed phrase: %s\n", out.SeedPhrase)
	}
	fmt.Fprintf(w, "Fingerprint: %s\n", out.Fingerprint)
	if !qr {
		return nil
	}
	for _, item := range []struct{ label, data string }{
		{"Address", out.Address},
		{secretLabel, secret},
	} {
		code, err := paper.TerminalQR(item.data)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s:\n%s", item.label, code)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func wipeAll(wallets []*wallet.Wallet) {
	for _, w := range wallets {
		w.Wipe()
	}
}
