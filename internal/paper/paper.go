// Package paper renders wallets as printable sheets and QR codes.
package paper

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/tos-network/paperwallet/internal/log"
	"github.com/tos-network/paperwallet/internal/wallet"
)

// MinQRSize is the smallest PNG edge length accepted by WriteQRFiles.
const MinQRSize = 64

// DefaultQRSize is the PNG edge length used when none is configured.
const DefaultQRSize = 256

// ErrQRSize is returned for PNG sizes below MinQRSize.
var ErrQRSize = errors.New("qr size too small")

const (
	innerWidth  = 68
	wordColumns = 4
	wordRows    = 7

	sealedLineWidth = 64
)

// Options controls sheet rendering.
type Options struct {
	// QR appends terminal QR codes for the address and the private key.
	QR bool
	// Created is printed on the sheet. Zero means now.
	Created time.Time
	// EncryptedKey, when set, replaces the private key and the seed
	// phrase on the sheet.
	EncryptedKey string
}

// Render returns the printable sheet for w.
func Render(w *wallet.Wallet, opts Options) (string, error) {
	created := opts.Created
	if created.IsZero() {
		created = time.Now()
	}

	var sb strings.Builder
	border := "+" + strings.Repeat("=", innerWidth+4) + "+\n"

	sb.WriteString("\n")
	sb.WriteString(border)
	line(&sb, center("TOS PAPER WALLET"))
	line(&sb, "")
	line(&sb, fmt.Sprintf("Network:     %s", w.Network))
	line(&sb, fmt.Sprintf("Fingerprint: %s", w.Fingerprint()))
	line(&sb, fmt.Sprintf("Created:     %s", created.Format("2006-01-02")))
	line(&sb, "")
	line(&sb, "Address (share to receive funds):")
	line(&sb, "  "+w.Address.String())
	line(&sb, "")
	if opts.EncryptedKey != "" {
		writeSealed(&sb, opts.EncryptedKey)
	} else {
		writeSecrets(&sb, w)
	}
	sb.WriteString(border)

	if opts.QR {
		secretLabel, secret := "Private key QR (keep secret)", w.PrivateKeyHex()
		if opts.EncryptedKey != "" {
			secretLabel, secret = "Encrypted key QR", opts.EncryptedKey
		}
		addrQR, err := TerminalQR(w.Address.String())
		if err != nil {
			return "", fmt.Errorf("address qr: %w", err)
		}
		keyQR, err := TerminalQR(secret)
		if err != nil {
			return "", fmt.Errorf("private key qr: %w", err)
		}
		sb.WriteString("\nAddress QR:\n")
		sb.WriteString(addrQR)
		sb.WriteString("\n" + secretLabel + ":\n")
		sb.WriteString(keyQR)
	}

	sb.WriteString("\nPrint this page and store it securely.\n")
	return sb.String(), nil
}

func writeSecrets(sb *strings.Builder, w *wallet.Wallet) {
	line(sb, "Private key (keep secret):")
	line(sb, "  "+w.PrivateKeyHex())
	line(sb, "")
	line(sb, fmt.Sprintf("Seed phrase (%d words, keep secret):", len(w.SeedPhrase)))
	line(sb, "")

	// Column-major so the numbering reads top to bottom.
	for row := 0; row < wordRows; row++ {
		var rb strings.Builder
		for col := 0; col < wordColumns; col++ {
			idx := row + col*wordRows
			if idx < len(w.SeedPhrase) {
				rb.WriteString(fmt.Sprintf("%2d. %-12s", idx+1, w.SeedPhrase[idx]))
			}
		}
		line(sb, strings.TrimRight(rb.String(), " "))
	}

	line(sb, "")
	line(sb, "WARNING: Anyone holding the private key or the seed phrase")
	line(sb, "controls the funds. Store this sheet offline.")
}

func writeSealed(sb *strings.Builder, sealed string) {
	line(sb, "Encrypted private key (passphrase required):")
	for i := 0; i < len(sealed); i += sealedLineWidth {
		end := min(i+sealedLineWidth, len(sealed))
		line(sb, "  "+sealed[i:end])
	}
	line(sb, "")
	line(sb, "The passphrase is not on this sheet. Without it the funds")
	line(sb, "cannot be recovered.")
}

func line(sb *strings.Builder, s string) {
	sb.WriteString(fmt.Sprintf("|  %-*s  |\n", innerWidth, s))
}

func center(s string) string {
	pad := (innerWidth - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// TerminalQR renders data as a QR code made of half-block characters,
// with medium error correction.
func TerminalQR(data string) (string, error) {
	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return "", err
	}
	return qr.ToSmallString(false), nil
}

// QRFiles lists the PNG files written by WriteQRFiles.
type QRFiles struct {
	Address      string `json:"address"`
	PrivateKey   string `json:"private_key,omitempty"`
	EncryptedKey string `json:"encrypted_key,omitempty"`
}

// WriteQRFiles writes PNG QR codes for the address and the private key into
// dir, creating it if needed. When encryptedKey is set it is written in
// place of the private key. Files are named after the wallet fingerprint
// and are readable by the owner only.
func WriteQRFiles(w *wallet.Wallet, dir string, size int, encryptedKey string) (QRFiles, error) {
	if size < MinQRSize {
		return QRFiles{}, fmt.Errorf("%w: %d < %d", ErrQRSize, size, MinQRSize)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return QRFiles{}, fmt.Errorf("create qr dir: %w", err)
	}

	prefix := filepath.Join(dir, w.Network.HRP()+"-"+w.Fingerprint())
	files := QRFiles{Address: prefix + "-address.png"}
	if err := writePNG(files.Address, w.Address.String(), size); err != nil {
		return QRFiles{}, err
	}

	if encryptedKey != "" {
		files.EncryptedKey = prefix + "-encrypted-key.png"
		if err := writePNG(files.EncryptedKey, encryptedKey, size); err != nil {
			return QRFiles{}, err
		}
	} else {
		files.PrivateKey = prefix + "-private-key.png"
		if err := writePNG(files.PrivateKey, w.PrivateKeyHex(), size); err != nil {
			return QRFiles{}, err
		}
	}

	log.Paper.Info().
		Str("dir", dir).
		Str("fingerprint", w.Fingerprint()).
		Msg("QR codes written")
	return files, nil
}

func writePNG(path, data string, size int) error {
	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}
	png, err := qr.PNG(size)
	if err != nil {
		return fmt.Errorf("render qr: %w", err)
	}
	if err := os.WriteFile(path, png, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
