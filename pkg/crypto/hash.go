package crypto

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// FingerprintSize is the number of hash bytes shown in a fingerprint.
const FingerprintSize = 4

// Fingerprint returns a short BLAKE3-256 digest of the compressed public
// key, formatted as "xxxx-xxxx". It identifies a printed sheet; it is not
// part of the address.
func Fingerprint(pub *PublicKey) string {
	b := pub.Bytes()
	sum := blake3.Sum256(b[:])
	h := hex.EncodeToString(sum[:FingerprintSize])
	return h[:4] + "-" + h[4:]
}
